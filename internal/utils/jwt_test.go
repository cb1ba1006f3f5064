package utils

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("secret")
	userID := uuid.NewString()

	token, err := GenerateJWT(secret, userID)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(secret, token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Expected user %s, got %s", userID, claims.UserID)
	}

	if _, err := ValidateJWT([]byte("other"), token); err == nil {
		t.Error("Expected a token signed with another secret to be rejected")
	}
}
