package services

import (
	"testing"
	"time"

	"vidtube_server/models"
)

func testUser() *models.User {
	return &models.User{
		UserID:   "u1",
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret")

	access, refresh, err := svc.GenerateTokens(testUser())
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty token in pair")
	}
	if access == refresh {
		t.Fatal("access and refresh tokens are identical")
	}

	userID, err := svc.ValidateAccessToken(access)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("access subject = %q, want u1", userID)
	}

	userID, err = svc.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}
	if userID != "u1" {
		t.Fatalf("refresh subject = %q, want u1", userID)
	}
}

func TestTokenSecretsAreSeparate(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret")

	access, refresh, err := svc.GenerateTokens(testUser())
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}

	// A refresh token must never pass as an access token and vice versa.
	if _, err := svc.ValidateAccessToken(refresh); err == nil {
		t.Fatal("refresh token validated against the access secret")
	}
	if _, err := svc.ValidateRefreshToken(access); err == nil {
		t.Fatal("access token validated against the refresh secret")
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("access-secret", "refresh-secret")
	verifier := NewTokenService("other-secret", "refresh-secret")

	access, _, err := issuer.GenerateTokens(testUser())
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}
	if _, err := verifier.ValidateAccessToken(access); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret")
	svc.AccessExpiry = -time.Minute

	access, _, err := svc.GenerateTokens(testUser())
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}
	if _, err := svc.ValidateAccessToken(access); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	svc := NewTokenService("access-secret", "refresh-secret")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ValidateAccessToken(token); err == nil {
			t.Errorf("token %q validated", token)
		}
	}
}
