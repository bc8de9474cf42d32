package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

const knownSession = "3c9a1f20-7d4b-4e8a-b6c1-5f2d8e0a9b47"

func TestCartSessionEchoesProvidedHeader(t *testing.T) {
	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set(CartSessionHeader, knownSession)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != knownSession {
		t.Fatalf("expected session %s, got %q", knownSession, seen)
	}
	if got := rec.Header().Get(CartSessionHeader); got != knownSession {
		t.Fatalf("expected echoed header, got %q", got)
	}
}

func TestCartSessionMintsWhenMissing(t *testing.T) {
	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected generated uuid, got %q", seen)
	}
	if rec.Header().Get(CartSessionHeader) != seen {
		t.Fatalf("expected generated session to be echoed")
	}
}

func TestCartSessionRejectsInvalidHeader(t *testing.T) {
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not run")
	}))

	for _, session := range []string{
		strings.Repeat("x", 10) + ":evil",
		"alice",
		strings.ToUpper(knownSession),
		"{" + knownSession + "}",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set(CartSessionHeader, session)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", session, rec.Code)
		}
	}
}
