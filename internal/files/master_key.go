package files

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrylevesque/flavorfind/internal/crypto"
)

const (
	MasterKeyEnv  = "FLAVORFIND_MASTER_KEY_HEX"
	MasterKeyFile = "master.key"
)

// ErrNoMasterKey is returned when neither the environment nor the data
// directory provides a master key.
var ErrNoMasterKey = errors.New("no master key configured")

// ReadMasterKey reads a 32 byte hex key from FLAVORFIND_MASTER_KEY_HEX or,
// failing that, from <dir>/master.key.
func ReadMasterKey(dir string) ([]byte, error) {
	h := os.Getenv(MasterKeyEnv)
	if h == "" {
		data, err := os.ReadFile(filepath.Join(dir, MasterKeyFile))
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoMasterKey
		}
		if err != nil {
			return nil, err
		}
		h = string(data)
	}
	b, err := hex.DecodeString(strings.TrimSpace(h))
	if err != nil {
		return nil, fmt.Errorf("master key hex decode error: %w", err)
	}
	if len(b) != crypto.KeySize {
		return nil, fmt.Errorf("master key length must be %d bytes (hex %d chars)", crypto.KeySize, crypto.KeySize*2)
	}
	return b, nil
}

// SessionKey picks the key for the stored session: master key mixed with
// the device fingerprint when a master key exists, the fingerprint alone
// otherwise. It returns a nil key when neither is available, which means
// the session is stored in plain text.
func SessionKey(dir string, fingerprint func() (string, error)) ([]byte, error) {
	master, err := ReadMasterKey(dir)
	if err != nil && !errors.Is(err, ErrNoMasterKey) {
		return nil, err
	}
	fp := ""
	if fingerprint != nil {
		if id, err := fingerprint(); err == nil {
			fp = id
		}
	}
	if len(master) == 0 && fp == "" {
		return nil, nil
	}
	return crypto.DeriveSessionKey(master, fp)
}
