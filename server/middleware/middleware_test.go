package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ptalk-server/models"
)

type stubAuthenticator map[string]string

func (s stubAuthenticator) Authenticate(token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", errors.New("bad token")
}

func echoMerchant(w http.ResponseWriter, r *http.Request) {
	id, _ := MerchantID(r.Context())
	w.Write([]byte(id))
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(stubAuthenticator{"good": "m1"})(http.HandlerFunc(echoMerchant))

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "m1"},
		{"lowercase scheme", "bearer good", http.StatusOK, "m1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(http.MethodGet, "/v1/venues", nil)
			if tt.header != "" {
				req.Header.Set(AUTHORIZATION_HEADER, tt.header)
			}
			rr := httptest.NewRecorder()

			// Act
			handler.ServeHTTP(rr, req)

			// Assert
			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, rr.Body.String())
				return
			}
			var resp models.ApiResponse[any]
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, ERROR_CODE_UNAUTHORIZED, *resp.ErrorCode)
		})
	}
}

func TestMerchantID_Missing(t *testing.T) {
	_, ok := MerchantID(context.Background())
	assert.False(t, ok)
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1000"))
}

func TestRateLimiter_RotatingForwardedForIsStillLimited(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	allowed := 0
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code == http.StatusNoContent {
			allowed++
		}
	}

	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, rl.Len())
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	// Arrange
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.lastSweep = now
	require.True(t, rl.Allow("192.0.2.1"))
	require.True(t, rl.Allow("192.0.2.2"))

	// Act
	now = now.Add(LIMITER_IDLE_TTL / 2)
	rl.Allow("192.0.2.2")
	now = now.Add(LIMITER_IDLE_TTL / 2)
	rl.Allow("192.0.2.3")

	// Assert
	assert.Equal(t, 2, rl.Len())
	assert.True(t, rl.Allow("192.0.2.1"), "a swept client starts with a fresh bucket")
}

func TestRateLimiter_ClientIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		fwd     string
		want    string
	}{
		{"peer address", nil, "192.0.2.7:5555", "", "192.0.2.7"},
		{"untrusted peer ignores header", nil, "192.0.2.7:5555", "203.0.113.9", "192.0.2.7"},
		{"trusted proxy uses first hop", []string{"10.0.0.1"}, "10.0.0.1:80", "203.0.113.9, 10.0.0.1", "203.0.113.9"},
		{"trusted proxy without header", []string{"10.0.0.1"}, "10.0.0.1:80", "", "10.0.0.1"},
		{"remote without port", nil, "192.0.2.8", "", "192.0.2.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(1, 1, tt.trusted...)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.fwd != "" {
				req.Header.Set("X-Forwarded-For", tt.fwd)
			}

			assert.Equal(t, tt.want, rl.ClientIP(req))
		})
	}
}
