package handler

import (
	"io"
	"net/http"

	"github.com/kycflow/kycflow-backend/internal/verification/service"
	"github.com/kycflow/kycflow-backend/pkg/httputil"
	"github.com/kycflow/kycflow-backend/pkg/logger"
)

// Handler handles HTTP requests for identity verification
type Handler struct {
	service        *service.Service
	maxUploadBytes int64
	log            *logger.Logger
}

// NewHandler creates a new verification handler
func NewHandler(svc *service.Service, maxUploadBytes int64, log *logger.Logger) *Handler {
	return &Handler{
		service:        svc,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// UploadDocument handles POST /upload-document
// Accepts a multipart form with a "document" file field holding the
// identity document (JPEG, PNG or PDF) and runs the verification flow
// for the authenticated user.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		httputil.Raw(w, http.StatusBadRequest, map[string]string{
			"error": "File too large or invalid multipart form",
		})
		return
	}

	file, _, err := r.FormFile("document")
	if err != nil {
		httputil.Raw(w, http.StatusBadRequest, map[string]string{
			"error": "Missing document in request",
		})
		return
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		httputil.Raw(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to read uploaded file",
		})
		return
	}

	userID := httputil.GetUserID(r.Context())

	result, err := h.service.VerifyIdentity(r.Context(), userID, document)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("verification failed")
		httputil.Error(w, err)
		return
	}

	if !result.Verified {
		httputil.Raw(w, http.StatusBadRequest, map[string]string{
			"error": "Full name does not match ID.",
		})
		return
	}

	httputil.Raw(w, http.StatusOK, map[string]string{
		"status": "Verification successful!",
	})
}
