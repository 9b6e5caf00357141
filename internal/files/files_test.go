package files

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrylevesque/flavorfind/internal/crypto"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		key  []byte
	}{
		{"plain", nil},
		{"encrypted", crypto.MustRandom(crypto.KeySize)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewTokenStore(t.TempDir(), tc.key)

			token, err := s.Load()
			if err != nil || token != "" {
				t.Fatalf("Load() on empty store = %q, %v", token, err)
			}

			if err := s.Save("header.payload.sig"); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			token, err = s.Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			if token != "header.payload.sig" {
				t.Errorf("Load() = %q", token)
			}

			raw, err := os.ReadFile(s.Path())
			if err != nil {
				t.Fatalf("read session file: %v", err)
			}
			if s.Encrypted() == strings.Contains(string(raw), "header.payload.sig") {
				t.Errorf("encrypted=%v but file contents were %q", s.Encrypted(), raw)
			}

			if err := s.Clear(); err != nil {
				t.Fatalf("Clear() failed: %v", err)
			}
			if err := s.Clear(); err != nil {
				t.Fatalf("second Clear() failed: %v", err)
			}
			if token, _ := s.Load(); token != "" {
				t.Errorf("Load() after Clear() = %q", token)
			}
		})
	}
}

func TestTokenStoreWrongKey(t *testing.T) {
	dir := t.TempDir()
	if err := NewTokenStore(dir, crypto.MustRandom(crypto.KeySize)).Save("tok"); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := NewTokenStore(dir, crypto.MustRandom(crypto.KeySize)).Load(); err == nil {
		t.Fatalf("Load() with another key should fail")
	}
}

func TestReadMasterKey(t *testing.T) {
	t.Setenv(MasterKeyEnv, "")
	dir := t.TempDir()

	if _, err := ReadMasterKey(dir); !errors.Is(err, ErrNoMasterKey) {
		t.Fatalf("ReadMasterKey() on empty dir = %v, want ErrNoMasterKey", err)
	}

	key := bytes.Repeat([]byte{0xab}, crypto.KeySize)
	if err := os.WriteFile(filepath.Join(dir, MasterKeyFile), []byte(hex.EncodeToString(key)+"\n"), 0600); err != nil {
		t.Fatalf("write master key: %v", err)
	}
	got, err := ReadMasterKey(dir)
	if err != nil {
		t.Fatalf("ReadMasterKey() failed: %v", err)
	}
	if !bytes.Equal(got, key) {
		t.Errorf("ReadMasterKey() = %x", got)
	}

	t.Setenv(MasterKeyEnv, "abcd")
	if _, err := ReadMasterKey(dir); err == nil {
		t.Errorf("ReadMasterKey() should reject a short env key")
	}
}

func TestSessionKey(t *testing.T) {
	t.Setenv(MasterKeyEnv, "")
	dir := t.TempDir()
	noDevice := func() (string, error) { return "", errors.New("no device") }

	key, err := SessionKey(dir, noDevice)
	if err != nil || key != nil {
		t.Fatalf("SessionKey() without inputs = %x, %v; want nil, nil", key, err)
	}

	key, err = SessionKey(dir, func() (string, error) { return "machine-42", nil })
	if err != nil || len(key) != crypto.KeySize {
		t.Fatalf("SessionKey() from fingerprint = %x, %v", key, err)
	}
}
