// Package httpapi is the thin request/response boundary over the auth
// service. Handlers translate the service's sentinel errors to statuses and
// never put internal causes into response bodies.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dsmirnovs/authbox/internal/logging"
	"github.com/dsmirnovs/authbox/internal/server/users"
)

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 30 * time.Second
)

// AuthService is the boundary contract the handlers call into.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) error
	RequestReset(ctx context.Context, email string) error
	ConfirmReset(ctx context.Context, email, code, newPassword string) error
	Accounts(ctx context.Context) ([]users.Account, error)
}

type Server struct {
	addr      string
	logger    logging.Logger
	auth      AuthService
	devRoutes bool
}

func NewServer(addr string, l logging.Logger, svc AuthService, devRoutes bool) *Server {
	return &Server{
		addr:      addr,
		logger:    l.With("module", "httpapi"),
		auth:      svc,
		devRoutes: devRoutes,
	}
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Post("/send-reset-code", s.handleSendResetCode)
	r.Post("/reset-password-with-code", s.handleResetPasswordWithCode)
	r.Get("/healthz", s.handleHealthz)

	if s.devRoutes {
		r.Get("/users", s.handleListAccounts)
	}

	return r
}

// Run starts the listener and blocks until ctx is cancelled, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "graceful shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
