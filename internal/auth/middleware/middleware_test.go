package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kycflow/kycflow-backend/internal/auth/jwt"
	"github.com/kycflow/kycflow-backend/internal/auth/middleware"
	"github.com/kycflow/kycflow-backend/internal/identity/domain"
	"github.com/kycflow/kycflow-backend/pkg/config"
	"github.com/kycflow/kycflow-backend/pkg/httputil"
)

func testManager() *jwt.Manager {
	return jwt.NewManager(&config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "kycflow-test",
	})
}

func accessToken(t *testing.T, m *jwt.Manager, isAdmin bool) string {
	t.Helper()
	pair, err := m.GenerateTokenPair(&domain.User{
		ID:          "u1",
		PhoneNumber: "+15550001111",
		FullName:    "Jane Doe",
		IsAdmin:     isAdmin,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestAuthenticate(t *testing.T) {
	m := testManager()

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = httputil.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := middleware.Authenticate(m)(next)

	req := httptest.NewRequest(http.MethodGet, "/kyc-status", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, m, false))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", gotUserID)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	h := middleware.Authenticate(testManager())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kyc-status", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	m := testManager()
	h := middleware.Authenticate(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run with a malformed header")
	}))

	for _, header := range []string{"Basic abc", "Bearer", accessToken(t, m, false)} {
		req := httptest.NewRequest(http.MethodGet, "/kyc-status", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAdmin(t *testing.T) {
	m := testManager()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := middleware.Authenticate(m)(middleware.RequireAdmin()(next))

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, m, true))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, m, false))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
