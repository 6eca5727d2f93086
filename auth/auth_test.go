package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	uid, ok := ParseSession(req)
	if !ok || uid != 42 {
		t.Fatalf("expected owner 42, got %d (%v)", uid, ok)
	}
}

func TestSessionRejectsTampering(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 42)
	cookie := w.Result().Cookies()[0]

	// swap the owner id but keep the original signature
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "43." + cookie.Value[len("42."):]})
	if _, ok := ParseSession(req); ok {
		t.Fatalf("tampered session must not verify")
	}
}

func TestSessionMissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := ParseSession(req); ok {
		t.Fatalf("expected no session")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("wrong password accepted")
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	token := CreateResetToken("owner@test", 30*time.Minute)
	email, ok := VerifyResetToken(token)
	if !ok || email != "owner@test" {
		t.Fatalf("expected owner@test, got %q (%v)", email, ok)
	}
}

func TestResetTokenExpiry(t *testing.T) {
	token := CreateResetToken("owner@test", -time.Second)
	if _, ok := VerifyResetToken(token); ok {
		t.Fatalf("expired token must not verify")
	}
}

func TestResetTokenTampering(t *testing.T) {
	token := CreateResetToken("owner@test", 30*time.Minute)
	if _, ok := VerifyResetToken(token + "x"); ok {
		t.Fatalf("tampered token must not verify")
	}
	if _, ok := VerifyResetToken("notatoken"); ok {
		t.Fatalf("malformed token must not verify")
	}
}
