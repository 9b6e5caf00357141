package files

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/harrylevesque/flavorfind/internal/crypto"
)

// TokenStore persists the backend session token between runs so a restart
// can pick the session up again. With a key the file is sealed with AES-GCM
// (session.json.enc), without one it is plain JSON (session.json).
type TokenStore struct {
	mu   sync.Mutex
	path string
	key  []byte
}

type storedSession struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

func NewTokenStore(dir string, key []byte) *TokenStore {
	name := "session.json"
	if key != nil {
		name += ".enc"
	}
	return &TokenStore{path: filepath.Join(dir, name), key: key}
}

func (s *TokenStore) Path() string { return s.path }

// Encrypted reports whether the token is sealed on disk.
func (s *TokenStore) Encrypted() bool { return s.key != nil }

// Load returns the stored token, or "" when none was saved.
func (s *TokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if s.key != nil {
		blob, err = crypto.DecryptAESGCM(s.key, blob)
		if err != nil {
			return "", fmt.Errorf("decrypt %s: %w", s.path, err)
		}
	}
	var sess storedSession
	if err := json.Unmarshal(blob, &sess); err != nil {
		return "", fmt.Errorf("decode %s: %w", s.path, err)
	}
	return sess.Token, nil
}

func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.MarshalIndent(storedSession{Token: token, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return err
	}
	if s.key != nil {
		if blob, err = crypto.EncryptAESGCM(s.key, blob); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
