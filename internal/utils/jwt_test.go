package utils

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken(testSecret, "user-1", "user", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	claims, err := VerifyToken(testSecret, at.Token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Role != "user" {
		t.Errorf("Role = %q, want %q", claims.Role, "user")
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeAccess)
	}
}

func TestRefreshTokenType(t *testing.T) {
	rt, err := NewRefreshToken(testSecret, "user-1", 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	claims, err := VerifyToken(testSecret, rt.Raw)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenTypeRefresh)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	expired, err := NewAccessToken(testSecret, "user-1", "user", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	wrongKey, err := NewAccessToken("other-secret", "user-1", "user", time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	cases := []struct {
		name string
		raw  string
	}{
		{"expired", expired.Token},
		{"wrong secret", wrongKey.Token},
		{"malformed", "not.a.jwt"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := VerifyToken(testSecret, tc.raw); err == nil {
				t.Errorf("VerifyToken accepted %s token", tc.name)
			}
		})
	}
}

func TestHashRefreshRaw(t *testing.T) {
	a, b := HashRefreshRaw("token-a"), HashRefreshRaw("token-a")
	if a != b {
		t.Errorf("hash is not deterministic: %q vs %q", a, b)
	}
	if HashRefreshRaw("token-b") == a {
		t.Error("different tokens produced the same hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pw1", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "pw1" {
		t.Fatal("password stored in plaintext")
	}
	if !VerifyPassword(hash, "pw1") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "pw2") {
		t.Error("wrong password accepted")
	}
}
