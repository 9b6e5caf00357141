package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrNoSecret     = errors.New("token secret must not be empty")
)

// Claims represents the claims in the JWT. Subject is the user id and Id
// is the token id used for revocation.
type Claims struct {
	jwt.StandardClaims
}

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret []byte, ttl time.Duration) (*Tokens, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Tokens{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for userID.
func (t *Tokens) Issue(userID string) (string, *Claims, error) {
	now := t.now()
	claims := &Claims{jwt.StandardClaims{
		Subject:   userID,
		Id:        uuid.NewString(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(t.ttl).Unix(),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse verifies the signature and expiry of a token.
func (t *Tokens) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.Subject == "" || claims.Id == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expiry is when the token stops being accepted.
func (c *Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}
