package auth

import (
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingName     = errors.New("name is required")
	ErrInvalidEmail    = errors.New("a valid email is required")
	ErrMissingPassword = errors.New("password is required")
)

// SignupRequest is the body of a signup call.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r SignupRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		return ErrInvalidEmail
	}
	if r.Password == "" {
		return ErrMissingPassword
	}
	return nil
}

// HashPassword hashes the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash checks if the password matches the hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
