package service

import (
	"testing"
	"time"

	"github.com/billmind/go-bill-reminder/internal/shared/logger"
)

func newTokenService(secret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(secret),
		tokenTTL:  time.Hour,
		log:       logger.NewLogger(),
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTokenService("test-secret")

	token, err := s.issueToken("u-42")
	if err != nil {
		t.Fatalf("issueToken() error = %v", err)
	}

	userID, err := s.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if userID != "u-42" {
		t.Errorf("ParseToken() = %q, want u-42", userID)
	}
}

func TestParseToken_Rejections(t *testing.T) {
	s := newTokenService("test-secret")
	good, err := s.issueToken("u-42")
	if err != nil {
		t.Fatalf("issueToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "empty", token: ""},
		{name: "tampered payload", token: good[:len(good)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.ParseToken(tt.token); err == nil {
				t.Errorf("ParseToken(%q) succeeded, want error", tt.token)
			}
		})
	}
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := newTokenService("key-a").issueToken("u-42")
	if err != nil {
		t.Fatalf("issueToken() error = %v", err)
	}
	if _, err := newTokenService("key-b").ParseToken(token); err == nil {
		t.Error("token signed with another key must be rejected")
	}
}
