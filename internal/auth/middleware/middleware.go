package middleware

import (
	"net/http"
	"strings"

	"github.com/kycflow/kycflow-backend/internal/auth/jwt"
	"github.com/kycflow/kycflow-backend/pkg/errors"
	"github.com/kycflow/kycflow-backend/pkg/httputil"
)

// Authenticate validates the Bearer access token and attaches the
// authenticated user to the request context.
func Authenticate(manager *jwt.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httputil.Error(w, errors.Unauthorized("missing authorization token"))
				return
			}

			claims, err := manager.ValidateAccessToken(token)
			if err != nil {
				httputil.Error(w, err)
				return
			}

			ctx := httputil.WithUserContext(r.Context(), claims.UserID, claims.PhoneNumber, claims.IsAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests from non-admin users. Must run after
// Authenticate.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !httputil.IsAdmin(r.Context()) {
				httputil.Error(w, errors.Forbidden("administrator access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
