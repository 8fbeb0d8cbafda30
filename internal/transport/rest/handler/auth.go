package handler

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"aiacademy/internal/model"
	"aiacademy/internal/service"
)

// Authenticator signs students in and creates accounts
type Authenticator interface {
	Login(ctx context.Context, in *model.LoginRequest) (*model.LoginResponse, error)
	Register(ctx context.Context, in *model.SignUpRequest) (*model.SignUpResponse, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc Authenticator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc Authenticator) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, err)
		return
	}

	resp, err := h.authSvc.Login(r.Context(), &req)
	if err != nil {
		writeIdentityError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.SignUpRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, err)
		return
	}

	resp, err := h.authSvc.Register(r.Context(), &req)
	if err != nil {
		writeIdentityError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeIdentityError reports provider rejections by their code, e.g. EMAIL_EXISTS
func writeIdentityError(w http.ResponseWriter, err error) {
	var idErr *service.IdentityError
	switch {
	case errors.As(err, &idErr):
		status := idErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadRequest
		}
		writeFail(w, status, idErr.Code)
	case errors.Is(err, service.ErrAuthDisabled):
		writeFail(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeFail(w, http.StatusInternalServerError, err.Error())
	}
}
