package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var testOrigins = []string{"http://localhost:3000", "https://fxtcher.com"}

func corsRequest(t *testing.T, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	handler := CORS(testOrigins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/api/health", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestCORS_AllowedOrigin(t *testing.T) {
	w := corsRequest(t, http.MethodGet, "https://fxtcher.com")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://fxtcher.com" {
		t.Errorf("expected origin echoed back, got %q", got)
	}
	if got := w.Header().Get("Vary"); got != "Origin" {
		t.Errorf("expected Vary: Origin, got %q", got)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	w := corsRequest(t, http.MethodGet, "https://evil.example.com")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS headers for unknown origin, got %q", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("request itself must still be served, got %d", w.Code)
	}
}

func TestCORS_NoOrigin(t *testing.T) {
	w := corsRequest(t, http.MethodGet, "")

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS headers without an Origin, got %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	w := corsRequest(t, http.MethodOptions, "http://localhost:3000")

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("expected allowed methods on preflight response")
	}
}
