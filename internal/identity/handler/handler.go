package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kycflow/kycflow-backend/internal/identity/service"
	"github.com/kycflow/kycflow-backend/pkg/httputil"
	"github.com/kycflow/kycflow-backend/pkg/logger"
)

// Handler handles identity HTTP requests
type Handler struct {
	service        *service.Service
	maxUploadBytes int64
	log            *logger.Logger
}

// NewHandler creates a new identity handler
func NewHandler(svc *service.Service, maxUploadBytes int64, log *logger.Logger) *Handler {
	return &Handler{
		service:        svc,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// SignupRequest is the signup request body
type SignupRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	FullName    string `json:"full_name" validate:"required,min=2,max=200"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"required,min=8"`
}

// RejectKYCRequest is the admin rejection request body
type RejectKYCRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// Signup handles POST /signup
// Accepts either a JSON body or a multipart form. The multipart form
// may carry the identity document in a "document" file field.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	var document []byte

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			httputil.Raw(w, http.StatusBadRequest, map[string]string{
				"error": "File too large or invalid multipart form",
			})
			return
		}
		req = SignupRequest{
			PhoneNumber: r.FormValue("phone_number"),
			FullName:    r.FormValue("full_name"),
			Email:       r.FormValue("email"),
			Password:    r.FormValue("password"),
		}
		if file, _, err := r.FormFile("document"); err == nil {
			defer file.Close()
			data, err := io.ReadAll(file)
			if err != nil {
				httputil.Raw(w, http.StatusInternalServerError, map[string]string{
					"error": "Failed to read uploaded file",
				})
				return
			}
			document = data
		}
	} else {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}
	}

	if err := httputil.Validate(req); err != nil {
		httputil.Error(w, err)
		return
	}

	input := service.RegisterInput{
		PhoneNumber: req.PhoneNumber,
		FullName:    req.FullName,
		Password:    req.Password,
		Document:    document,
	}
	if req.Email != "" {
		input.Email = &req.Email
	}

	if _, err := h.service.Register(r.Context(), input); err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Raw(w, http.StatusCreated, map[string]string{
		"status": "success",
	})
}

// Profile handles GET /user-profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Profile(r.Context(), httputil.GetUserID(r.Context()))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Raw(w, http.StatusOK, profile)
}

// KYCStatus handles GET /kyc-status
func (h *Handler) KYCStatus(w http.ResponseWriter, r *http.Request) {
	verified, err := h.service.KYCStatus(r.Context(), httputil.GetUserID(r.Context()))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	status := "Not Verified"
	if verified {
		status = "Verified"
	}
	httputil.Raw(w, http.StatusOK, map[string]string{
		"status": status,
	})
}

// ListUsers handles GET /admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListUsers(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Raw(w, http.StatusOK, profiles)
}

// ApproveKYC handles POST /admin/approve-kyc/{userID}
func (h *Handler) ApproveKYC(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := h.service.ApproveKYC(r.Context(), userID); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Raw(w, http.StatusOK, map[string]string{
		"status": "KYC approved",
	})
}

// RejectKYC handles POST /admin/reject-kyc/{userID}
func (h *Handler) RejectKYC(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req RejectKYCRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := h.service.RejectKYC(r.Context(), userID, req.Reason); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Raw(w, http.StatusOK, map[string]string{
		"status": "KYC rejected",
	})
}
