package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dsmirnovs/authbox/internal/shared"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sendResetCodeRequest struct {
	Email string `json:"email"`
}

type resetWithCodeRequest struct {
	Email       string `json:"email"`
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type signupResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type accountResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	id, err := s.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, signupResponse{ID: id, Message: "user signed up"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.auth.Login(r.Context(), req.Email, req.Password); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{Message: "login successful"})
}

func (s *Server) handleSendResetCode(w http.ResponseWriter, r *http.Request) {
	var req sendResetCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.auth.RequestReset(r.Context(), req.Email); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	// the body is the same whether or not the account exists
	s.writeJSON(w, http.StatusOK, messageResponse{Message: "reset code sent"})
}

func (s *Server) handleResetPasswordWithCode(w http.ResponseWriter, r *http.Request) {
	var req resetWithCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.auth.ConfirmReset(r.Context(), req.Email, req.ResetCode, req.NewPassword); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{Message: "password has been reset"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.auth.Accounts(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountResponse{ID: a.ID, Email: a.Email})
	}

	s.writeJSON(w, http.StatusOK, out)
}

// writeServiceError maps the service's sentinel errors onto the HTTP status
// convention: 400 validation and reset failures, 401 login failures, 500 for
// server-side faults. Anything unrecognized is treated as a server fault and
// its cause stays in the log.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrorValidation):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: shared.ErrorValidation.Error()})
	case errors.Is(err, shared.ErrorInvalidCredentials):
		s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: shared.ErrorInvalidCredentials.Error()})
	case errors.Is(err, shared.ErrorInvalidOrExpiredCode):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: shared.ErrorInvalidOrExpiredCode.Error()})
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "server error"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(context.Background(), "encoding response", "error", err)
	}
}
