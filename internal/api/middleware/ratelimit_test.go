package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cyberguard-lab/internal/domain/services"
)

func TestGetClientID(t *testing.T) {
	t.Run("remote address is the fallback key", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/incidents", nil)
		r.RemoteAddr = "203.0.113.7:52110"

		assert.Equal(t, "ip:203.0.113.7:52110", getClientID(r))
	})

	t.Run("forwarded header wins over remote address", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/incidents", nil)
		r.RemoteAddr = "10.0.0.1:40000"
		r.Header.Set("X-Forwarded-For", "198.51.100.9")

		assert.Equal(t, "ip:198.51.100.9", getClientID(r))
	})

	t.Run("real ip header used when no forwarded header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/incidents", nil)
		r.RemoteAddr = "10.0.0.1:40000"
		r.Header.Set("X-Real-IP", "198.51.100.10")

		assert.Equal(t, "ip:198.51.100.10", getClientID(r))
	})

	t.Run("keying ignores authenticated identity", func(t *testing.T) {
		// The limiter runs ahead of authentication, so the key must not
		// depend on claims even when a context carries them.
		r := httptest.NewRequest("GET", "/api/v1/incidents", nil)
		r.RemoteAddr = "203.0.113.7:52110"
		claims := &services.Claims{Email: "user@example.com"}
		r = r.WithContext(context.WithValue(r.Context(), ContextKeyClaims, claims))

		assert.Equal(t, "ip:203.0.113.7:52110", getClientID(r))
	})
}
