package handler

import (
	"net/http"

	"github.com/kycflow/kycflow-backend/internal/auth/service"
	"github.com/kycflow/kycflow-backend/pkg/httputil"
	"github.com/kycflow/kycflow-backend/pkg/logger"
)

// Handler handles authentication HTTP requests
type Handler struct {
	service *service.Service
	log     *logger.Logger
}

// NewHandler creates a new auth handler
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, log: log}
}

// LoginRequest is the login request body
type LoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	Password    string `json:"password" validate:"required"`
}

// LogoutRequest is the logout request body
type LogoutRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	pair, err := h.service.Login(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Raw(w, http.StatusOK, map[string]string{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	})
}

// Logout handles POST /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.service.Logout(r.Context(), req.Refresh); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Raw(w, http.StatusOK, map[string]string{
		"status": "logout success",
	})
}
