package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, 101, "reader", 24*time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if token == "" {
		t.Error("Expected token to be generated")
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("Expected no error parsing token, got %v", err)
	}

	if claims.UserID() != 101 {
		t.Errorf("Expected user ID 101, got %d", claims.UserID())
	}

	if claims.Username != "reader" {
		t.Errorf("Expected username reader, got %s", claims.Username)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	_, err := ParseToken("test-secret", "invalid.token.here")
	if err == nil {
		t.Error("Expected error for invalid token")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", 101, "reader", time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("Expected error for token signed with another secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("test-secret", 101, "reader", -time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := ParseToken("test-secret", token); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestClaims_UserID_Malformed(t *testing.T) {
	c := &Claims{Sub: "not-a-number"}
	if got := c.UserID(); got != 0 {
		t.Errorf("Expected 0 for malformed subject, got %d", got)
	}
}
