package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dsmirnovs/authbox/internal/dbx"
	"github.com/dsmirnovs/authbox/internal/shared"
)

// PostgresRepository implements Repository over any DBTX, so the same code
// runs against *sql.DB and inside a transaction started by the service.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query :=
		`SELECT id, email, password_hash, password_reset_token, password_reset_expires, created_at
		 FROM users
		 WHERE email = $1
		 `

	user := &User{}
	var token sql.NullString
	var expires sql.NullTime

	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &token, &expires, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if token.Valid {
		user.ResetToken = &token.String
	}
	if expires.Valid {
		user.ResetExpiresAt = &expires.Time
	}

	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, email, passwordHash string) (string, error) {
	query :=
		`INSERT INTO users (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), email, passwordHash).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

// UpsertByEmail inserts the account or, when the email already exists,
// replaces its password hash. Matches the reference signup semantics.
func (r *PostgresRepository) UpsertByEmail(ctx context.Context, email, passwordHash string) (string, error) {
	query :=
		`INSERT INTO users (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		 RETURNING id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), email, passwordHash).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) SetResetFields(ctx context.Context, id, code string, expiresAt time.Time) error {
	query :=
		`UPDATE users
		 SET password_reset_token = $1, password_reset_expires = $2
		 WHERE id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, code, expiresAt, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRowAffected(res)
}

// SetPasswordAndClearReset stores the new hash and clears the pending reset
// in a single statement, so a consumed code can never survive the update.
func (r *PostgresRepository) SetPasswordAndClearReset(ctx context.Context, id, passwordHash string) error {
	query :=
		`UPDATE users
		 SET password_hash = $1, password_reset_token = NULL, password_reset_expires = NULL
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return requireRowAffected(res)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Account, error) {
	query := `SELECT id, email FROM users ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Email); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return accounts, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return shared.ErrorNotFound
	}
	return nil
}
