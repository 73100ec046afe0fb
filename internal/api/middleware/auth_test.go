package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberguard-lab/internal/config"
	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/internal/domain/services"
	"cyberguard-lab/pkg/logger"
)

const testSecret = "middleware-test-secret"

func testAuthService() *services.AuthService {
	return services.NewAuthService(nil, nil, config.JWTConfig{
		Secret:     testSecret,
		Expiration: time.Hour,
		Issuer:     "cyberguard-lab",
	}, logger.NewDefault())
}

func signTestToken(t *testing.T, email string, role models.Role) string {
	t.Helper()

	now := time.Now().UTC()
	claims := services.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    "cyberguard-lab",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestJWTAuth(t *testing.T) {
	auth := testAuthService()

	var seenEmail string
	handler := JWTAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenEmail = ActorEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid bearer token passes with claims in context", func(t *testing.T) {
		seenEmail = ""
		req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "reporter@example.com", models.RoleUser))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "reporter@example.com", seenEmail)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/incidents", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "x@example.com", models.RoleUser)+"x")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("options preflight bypasses auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/incidents", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestStaffOnly(t *testing.T) {
	auth := testAuthService()

	handler := JWTAuth(auth)(StaffOnly()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	t.Run("analyst allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/incidents", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "analyst@example.com", models.RoleAnalyst))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain user forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/incidents", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "user@example.com", models.RoleUser))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no claims rejected", func(t *testing.T) {
		bare := StaffOnly()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/incidents", nil)
		rec := httptest.NewRecorder()

		bare.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
