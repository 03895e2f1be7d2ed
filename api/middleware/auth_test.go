package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamalsite/backend/pkg/auth"
	"github.com/kamalsite/backend/pkg/logger"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, subject string, groups []string) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:  "shopper@example.com",
		Groups: groups,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func identityCapture(captured **auth.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthAttachesIdentity(t *testing.T) {
	verifier := auth.NewVerifier(testSecret, "")
	logg := logger.New(logger.Options{ServiceName: "test"})
	userID := uuid.New()

	var captured *auth.Identity
	handler := Auth(verifier, logg)(identityCapture(&captured))

	r := httptest.NewRequest("GET", "/api/v1/catalog", nil)
	r.Header.Set("Authorization", "Bearer "+signTestToken(t, userID.String(), nil))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.UserID)
}

func TestAuthDegradesToAnonymous(t *testing.T) {
	verifier := auth.NewVerifier(testSecret, "")
	logg := logger.New(logger.Options{ServiceName: "test"})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"malformed header", "Token abc"},
		{"broken token", "Bearer not-a-token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var captured *auth.Identity
			handler := Auth(verifier, logg)(identityCapture(&captured))

			r := httptest.NewRequest("GET", "/api/v1/catalog", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, r)

			assert.Equal(t, http.StatusOK, rec.Code, "anonymous shoppers still browse")
			assert.Nil(t, captured)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	handler := RequireAuth(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	identity := &auth.Identity{UserID: uuid.New()}
	r := httptest.NewRequest("GET", "/api/v1/orders", nil)
	r = r.WithContext(WithIdentity(r.Context(), identity))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	handler := RequireAdmin(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// Anonymous.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/admin/v1/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated but not admin.
	r := httptest.NewRequest("GET", "/api/admin/v1/products", nil)
	r = r.WithContext(WithIdentity(r.Context(), &auth.Identity{UserID: uuid.New()}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin group member.
	r = httptest.NewRequest("GET", "/api/admin/v1/products", nil)
	r = r.WithContext(WithIdentity(r.Context(), &auth.Identity{
		UserID: uuid.New(),
		Groups: []string{"admin"},
	}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}
