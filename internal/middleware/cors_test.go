package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/middleware"
)

const devOrigin = "http://localhost:5173"

// okHandler is a minimal http.Handler that always returns 200.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func corsRequest(method, target, origin string, headers map[string]string) *httptest.ResponseRecorder {
	h := middleware.NewCORSHandler([]string{devOrigin})(okHandler)
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Origin", origin)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestCORSHandler_allowedOriginGetsCredentialsAndExposedHeaders verifies that
// the browser may send the session cookie and read the export filename and
// the list total.
func TestCORSHandler_allowedOriginGetsCredentialsAndExposedHeaders(t *testing.T) {
	rec := corsRequest(http.MethodGet, "/api/export.csv", devOrigin, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, devOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	exposed := rec.Header().Get("Access-Control-Expose-Headers")
	assert.Contains(t, exposed, "Content-Disposition")
	assert.Contains(t, exposed, "X-Total-Count")
}

// TestCORSHandler_disallowedOrigin verifies that a foreign origin gets no
// Access-Control-Allow-Origin header. The response itself can still be 200;
// the browser blocks it.
func TestCORSHandler_disallowedOrigin(t *testing.T) {
	rec := corsRequest(http.MethodGet, "/api/trips", "http://evil.example.com", nil)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

// TestCORSHandler_preflight verifies every method the API routes use passes
// an OPTIONS preflight with a JSON body and a bearer token.
func TestCORSHandler_preflight(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			// Browsers send Access-Control-Request-Headers in lowercase.
			rec := corsRequest(http.MethodOptions, "/api/trips/t1", devOrigin, map[string]string{
				"Access-Control-Request-Method":  method,
				"Access-Control-Request-Headers": "content-type,authorization",
			})

			assert.True(t, rec.Code == http.StatusNoContent || rec.Code == http.StatusOK,
				"expected 2xx for OPTIONS preflight, got %d", rec.Code)
			assert.Equal(t, devOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), method)
		})
	}
}
