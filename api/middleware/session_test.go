package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCartSessionMintsKeyWhenMissing(t *testing.T) {
	t.Parallel()

	var seen string
	h := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionKeyFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/cart", nil))

	if seen == "" {
		t.Fatalf("expected a minted session key in context")
	}
	if got := w.Header().Get("X-Cart-Session"); got != seen {
		t.Fatalf("expected header echo %q, got %q", seen, got)
	}
}

func TestCartSessionKeepsClientKey(t *testing.T) {
	t.Parallel()

	var seen string
	h := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionKeyFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	req.Header.Set("X-Cart-Session", "buyer-123")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if seen != "buyer-123" {
		t.Fatalf("expected client key preserved, got %q", seen)
	}
}
