package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/middleware"
)

// decodingHandler decodes a JSON trip body the way the API handlers do and
// answers 413 when the limit cuts the body short.
var decodingHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	var v map[string]any
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
})

// tripBody returns a JSON trip whose remarks pad it to roughly n bytes.
func tripBody(n int) string {
	const head = `{"orderId":"ORD-1","remarks":"`
	pad := n - len(head) - 2
	if pad < 0 {
		pad = 0
	}
	return head + strings.Repeat("x", pad) + `"}`
}

func TestMaxBodySizeHandler(t *testing.T) {
	const limit = 128
	cases := map[string]struct {
		size          int
		contentLength int64 // -1 streams the body without a length
		want          int
	}{
		"small body passes":            {size: 64, contentLength: 64, want: http.StatusOK},
		"body at the limit passes":     {size: limit, contentLength: limit, want: http.StatusOK},
		"declared length over limit":   {size: 512, contentLength: 512, want: http.StatusRequestEntityTooLarge},
		"streamed body over the limit": {size: 512, contentLength: -1, want: http.StatusRequestEntityTooLarge},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h := middleware.NewMaxBodySizeHandler(limit)(decodingHandler)

			req := httptest.NewRequest(http.MethodPost, "/api/trips", strings.NewReader(tripBody(tc.size)))
			req.ContentLength = tc.contentLength
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

// TestMaxBodySizeHandler_earlyRejectUsesErrorEnvelope verifies that a request
// rejected on its Content-Length never reaches the handler and gets the API's
// JSON error body.
func TestMaxBodySizeHandler_earlyRejectUsesErrorEnvelope(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
	h := middleware.NewMaxBodySizeHandler(16)(next)

	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", strings.NewReader(`{"name":"KA01AB1234"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.False(t, called)
	assert.JSONEq(t, `{"error":{"code":"payload_too_large","message":"request body too large"}}`, rec.Body.String())
}
