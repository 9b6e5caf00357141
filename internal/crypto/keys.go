package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the AES-256 key length used for everything sealed on disk.
const KeySize = 32

// DeriveSessionKey derives the key protecting the stored session token from
// secret (the master key, or nil) and the device fingerprint using
// HKDF-SHA256. At least one of the two inputs must be non-empty.
func DeriveSessionKey(secret []byte, deviceFP string) ([]byte, error) {
	if len(secret) == 0 && deviceFP == "" {
		return nil, errors.New("session key needs a master key or a device fingerprint")
	}
	ikm := make([]byte, 0, len(secret)+len(deviceFP))
	ikm = append(ikm, secret...)
	ikm = append(ikm, deviceFP...)
	h := hkdf.New(sha256.New, ikm, []byte("flavorfind"), []byte("session-token"))
	out := make([]byte, KeySize)
	if _, err := io.ReadFull(h, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MustRandom returns n random bytes or panics.
func MustRandom(n int) []byte {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err)
	}
	return b
}
