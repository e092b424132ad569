package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/featurelist/configseal/api/internal/core/services"
)

const testSecret = "super-secret-key-for-testing-purposes-1234567890"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   "ci-pipeline",
		Issuer:    "configseal",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

// ==============================================================================
// 1. Token Guard
// ==============================================================================

func TestTokenGuard(t *testing.T) {
	tokens := services.NewTokenService(testSecret)
	guard := NewTokenGuard(tokens, discardLogger())

	valid, err := tokens.Issue("ci-pipeline", time.Hour)
	require.NoError(t, err)

	var subject string
	h := guard.RequireToken(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = r.Context().Value(SubjectKey).(string)
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other-secret-other-secret-other-secret"), time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), time.Now().Add(-time.Hour)), http.StatusUnauthorized},
		{"alg none", "Bearer " + signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, time.Now().Add(time.Hour)), http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subject = ""
			req := httptest.NewRequest(http.MethodPost, "/api/v1/config/obfuscate", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusOK {
				assert.Equal(t, "ci-pipeline", subject)
			}
		})
	}
}

// ==============================================================================
// 2. Rate Limiting
// ==============================================================================

func TestRateLimiter_PerIP(t *testing.T) {
	limiter := NewRateLimiter(0.0001, 2)
	h := limiter.Limit(okHandler)

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:3333"))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, hit("10.0.0.2:1111"))
}

func TestRateLimiter_Evict(t *testing.T) {
	limiter := NewRateLimiter(10, 30)
	h := limiter.Limit(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:1234"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 0, limiter.evict(time.Now()))
	assert.Equal(t, 1, limiter.evict(time.Now().Add(visitorTTL+time.Second)))
	assert.Equal(t, 0, limiter.evict(time.Now().Add(visitorTTL+time.Second)))
}

// ==============================================================================
// 3. Observability
// ==============================================================================

func TestTraceID(t *testing.T) {
	var seen string
	h := TraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetTraceID(r.Context())
	}))

	// Minted when absent
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(TraceIDHeader))

	// Propagated when valid
	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, id)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, id, seen)

	// Replaced when malformed
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, "../../etc/passwd")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "../../etc/passwd", seen)
}

func TestMaxBytes(t *testing.T) {
	h := MaxBytes(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("much longer than eight")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStructuredLogger_DoesNotLogBody(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := StructuredLogger(logger)(okHandler)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/config/seal", strings.NewReader(`{"secret":"value"}`)))

	out := buf.String()
	assert.Contains(t, out, `"path":"/api/v1/config/seal"`)
	assert.Contains(t, out, `"status":200`)
	assert.NotContains(t, out, "secret")
}
