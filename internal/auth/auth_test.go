package auth

import (
	"errors"
	"testing"
	"time"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("pw1", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("pw2", hash) {
		t.Error("wrong password accepted")
	}
}

func TestSignupValidate(t *testing.T) {
	cases := []struct {
		req  SignupRequest
		want error
	}{
		{SignupRequest{Name: "Ana", Email: "ana@x.io", Password: "pw1"}, nil},
		{SignupRequest{Name: " ", Email: "ana@x.io", Password: "pw1"}, ErrMissingName},
		{SignupRequest{Name: "Ana", Email: "not-an-email", Password: "pw1"}, ErrInvalidEmail},
		{SignupRequest{Name: "Ana", Email: "ana@x.io"}, ErrMissingPassword},
	}
	for _, tc := range cases {
		if err := tc.req.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%+v: err = %v, want %v", tc.req, err, tc.want)
		}
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if tok, err := ExtractTokenFromHeader("bearer abc.def"); err != nil || tok != "abc.def" {
		t.Errorf("got %q, %v", tok, err)
	}
	for _, h := range []string{"", "Bearer", "Bearer   ", "Basic abc"} {
		if _, err := ExtractTokenFromHeader(h); !errors.Is(err, ErrMissingToken) {
			t.Errorf("%q: err = %v", h, err)
		}
	}
}

func TestTokensRoundTrip(t *testing.T) {
	tokens, err := NewTokens([]byte("secret"), time.Hour)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	signed, issued, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.Id != issued.Id {
		t.Errorf("claims = %+v", claims)
	}
	if !claims.Expiry().After(time.Now()) {
		t.Error("expiry in the past")
	}
}

func TestTokensRejects(t *testing.T) {
	tokens, _ := NewTokens([]byte("secret"), time.Hour)
	other, _ := NewTokens([]byte("other"), time.Hour)
	signed, _, _ := other.Issue("user-1")
	if _, err := tokens.Parse(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign token: err = %v", err)
	}

	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, _ := tokens.Issue("user-1")
	if _, err := tokens.Parse(expired); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: err = %v", err)
	}

	if _, err := tokens.Parse("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage: err = %v", err)
	}
	if _, err := NewTokens(nil, time.Hour); !errors.Is(err, ErrNoSecret) {
		t.Errorf("empty secret: err = %v", err)
	}
}
