package api

import (
	"testing"
	"time"
)

func newTokenTestHandler(ttl time.Duration) *Handler {
	return &Handler{secretKey: []byte(testSecretKey), tokenTTL: ttl}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	handler := newTokenTestHandler(30 * time.Minute)

	token, err := handler.buildAccessToken(42, time.Now())
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	userID, err := handler.parseAccessToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestExpiredAccessTokenIsRejected(t *testing.T) {
	handler := newTokenTestHandler(time.Minute)

	token, err := handler.buildAccessToken(42, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	if _, err := handler.parseAccessToken(token); err == nil {
		t.Fatal("expected an expired token to be rejected")
	}
}

func TestTokenSignedWithOtherKeyIsRejected(t *testing.T) {
	issuer := &Handler{secretKey: []byte("other-secret"), tokenTTL: time.Minute}
	verifier := newTokenTestHandler(time.Minute)

	token, err := issuer.buildAccessToken(42, time.Now())
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	if _, err := verifier.parseAccessToken(token); err == nil {
		t.Fatal("expected a foreign-key token to be rejected")
	}
}

func TestGarbageTokenIsRejected(t *testing.T) {
	handler := newTokenTestHandler(time.Minute)

	if _, err := handler.parseAccessToken("not.a.token"); err == nil {
		t.Fatal("expected garbage input to be rejected")
	}
}
