package users

import (
	"context"
	"time"
)

// Repository is the credential store contract. Implementations hold no
// policy: normalization, code expiry and error shaping happen in the
// service layer.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, email, passwordHash string) (string, error)
	UpsertByEmail(ctx context.Context, email, passwordHash string) (string, error)
	SetResetFields(ctx context.Context, id, code string, expiresAt time.Time) error
	SetPasswordAndClearReset(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context) ([]Account, error)
}
