// Package auth enforces the credential lifecycle rules: signup, login and
// the password-reset state machine. The store and notifier are pure data/IO
// collaborators; every policy decision lives here.
package auth

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dsmirnovs/authbox/internal/dbx"
	"github.com/dsmirnovs/authbox/internal/hashing"
	"github.com/dsmirnovs/authbox/internal/logging"
	"github.com/dsmirnovs/authbox/internal/resetcode"
	"github.com/dsmirnovs/authbox/internal/server/config"
	"github.com/dsmirnovs/authbox/internal/server/mail"
	"github.com/dsmirnovs/authbox/internal/server/shared/db"
	"github.com/dsmirnovs/authbox/internal/server/users"
	"github.com/dsmirnovs/authbox/internal/shared"
)

// maxConcurrentHashes bounds in-flight bcrypt work so a burst of requests
// cannot saturate the process.
const maxConcurrentHashes = 8

const resetSubject = "Password Reset Code"

type Service struct {
	db           *sql.DB
	manager      db.RepositoryManager
	notifier     mail.Notifier
	logger       logging.Logger
	codeValidity time.Duration
	hashSem      chan struct{}
	decoyHash    string
}

func NewService(m db.RepositoryManager, n mail.Notifier, l logging.Logger, cfg *config.Config) (*Service, error) {

	// hash of a throwaway random secret, verified against when a login
	// names an unknown email so both failure paths cost one bcrypt run
	secret, err := shared.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("generating decoy secret: %w", err)
	}
	decoy, err := hashing.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("hashing decoy secret: %w", err)
	}

	return &Service{
		db:           m.Conn(),
		manager:      m,
		notifier:     n,
		logger:       l.With("module", "auth"),
		codeValidity: cfg.ResetCodeValidity,
		hashSem:      make(chan struct{}, maxConcurrentHashes),
		decoyHash:    decoy,
	}, nil
}

// Signup creates the account or, when the email is already registered,
// replaces its password hash (upsert parity with the reference behavior).
// It returns the account id.
func (s *Service) Signup(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", shared.ErrorValidation
	}

	hash, err := s.hashPassword(ctx, password)
	if err != nil {
		s.logger.Warn(ctx, "signup: hashing rejected input", "error", err)
		return "", shared.ErrorValidation
	}

	id, err := s.users(s.db).UpsertByEmail(ctx, email, hash)
	if err != nil {
		s.logger.Error(ctx, "signup: persisting credentials", "email", email, "error", err)
		return "", shared.ErrorStore
	}

	s.logger.Info(ctx, "user signed up", "email", email, "id", id)
	return id, nil
}

// Login verifies the credentials. Unknown email and wrong password return
// the same ErrorInvalidCredentials; only the private log records which it was.
func (s *Service) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)

	user, err := s.users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			s.verifyPassword(ctx, password, s.decoyHash)
			s.logger.Info(ctx, "login failed: unknown email", "email", email)
			return shared.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "login: lookup failed", "error", err)
		return shared.ErrorStore
	}

	if !s.verifyPassword(ctx, password, user.PasswordHash) {
		s.logger.Info(ctx, "login failed: wrong password", "email", email)
		return shared.ErrorInvalidCredentials
	}

	return nil
}

// RequestReset generates a one-time code for the account and emails it.
// When the email is not registered it does nothing and still reports
// success, so responses do not disclose whether the address exists.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	var (
		user *users.User
		code resetcode.Code
	)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.users(tx)

		var err error
		user, err = repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}

		code, err = resetcode.Generate(s.codeValidity)
		if err != nil {
			return err
		}

		// a repeated request overwrites the previous code, implicitly
		// invalidating it
		return repo.SetResetFields(ctx, user.ID, code.Value, code.ExpiresAt)
	})

	if errors.Is(err, shared.ErrorNotFound) {
		s.logger.Info(ctx, "reset requested for unknown email", "email", email)
		return nil
	}
	if err != nil {
		s.logger.Error(ctx, "reset request: store update failed", "email", email, "error", err)
		return shared.ErrorStore
	}

	body := fmt.Sprintf("Your reset code is: %s", code.Value)
	if err := s.notifier.Send(ctx, user.Email, resetSubject, body); err != nil {
		// the code is already persisted; the account stays pending and
		// the user can simply request again
		s.logger.Error(ctx, "reset request: delivery failed", "email", email, "error", err)
		return shared.ErrorNotification
	}

	s.logger.Info(ctx, "reset code sent", "email", email, "expires_at", code.ExpiresAt)
	return nil
}

// ConfirmReset checks the pending code and, on success, stores the new
// password hash and clears the reset state in one transactional update.
// No-such-user, wrong code and elapsed window all collapse into
// ErrorInvalidOrExpiredCode.
func (s *Service) ConfirmReset(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(email)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.users(tx)

		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, shared.ErrorNotFound) {
				return shared.ErrorInvalidOrExpiredCode
			}
			return err
		}

		if !codeMatches(user, code, time.Now()) {
			return shared.ErrorInvalidOrExpiredCode
		}

		hash, err := s.hashPassword(ctx, newPassword)
		if err != nil {
			return err
		}

		return repo.SetPasswordAndClearReset(ctx, user.ID, hash)
	})

	switch {
	case err == nil:
		s.logger.Info(ctx, "password reset", "email", email)
		return nil
	case errors.Is(err, shared.ErrorInvalidOrExpiredCode):
		s.logger.Info(ctx, "reset rejected", "email", email)
		return shared.ErrorInvalidOrExpiredCode
	default:
		s.logger.Error(ctx, "reset confirmation failed", "email", email, "error", err)
		return shared.ErrorStore
	}
}

// Accounts lists registered ids and emails for the development-only
// listing endpoint.
func (s *Service) Accounts(ctx context.Context) ([]users.Account, error) {
	accounts, err := s.users(s.db).List(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing accounts", "error", err)
		return nil, shared.ErrorStore
	}
	return accounts, nil
}

func (s *Service) users(db dbx.DBTX) users.Repository {
	return s.manager.Users(db)
}

// codeMatches validates a pending reset in order: a code is present, it
// equals the candidate, the window has not elapsed. The string comparison is
// constant-time and the three checks collapse into one boolean so callers
// cannot tell which failed.
func codeMatches(u *users.User, candidate string, now time.Time) bool {
	if u.ResetToken == nil || u.ResetExpiresAt == nil {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(*u.ResetToken), []byte(candidate)) != 1 {
		return false
	}
	return !now.After(*u.ResetExpiresAt)
}

func (s *Service) hashPassword(ctx context.Context, password string) (string, error) {
	if err := s.acquireHashSlot(ctx); err != nil {
		return "", err
	}
	defer s.releaseHashSlot()
	return hashing.Hash(password)
}

func (s *Service) verifyPassword(ctx context.Context, password, hash string) bool {
	if err := s.acquireHashSlot(ctx); err != nil {
		return false
	}
	defer s.releaseHashSlot()
	return hashing.Verify(password, hash)
}

func (s *Service) acquireHashSlot(ctx context.Context) error {
	select {
	case s.hashSem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) releaseHashSlot() {
	<-s.hashSem
}
