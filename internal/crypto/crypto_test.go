package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncryptDecryptAESGCM(t *testing.T) {
	key := MustRandom(KeySize)
	original := []byte(`{"token":"abc.def.ghi"}`)

	sealed, err := EncryptAESGCM(key, original)
	if err != nil {
		t.Fatalf("EncryptAESGCM() failed: %v", err)
	}
	if bytes.Contains(sealed, original) {
		t.Fatalf("ciphertext contains the plaintext")
	}

	opened, err := DecryptAESGCM(key, sealed)
	if err != nil {
		t.Fatalf("DecryptAESGCM() failed: %v", err)
	}
	if !bytes.Equal(opened, original) {
		t.Fatalf("decrypted data does not match original data")
	}
}

func TestDecryptWithWrongKey(t *testing.T) {
	sealed, err := EncryptAESGCM(MustRandom(KeySize), []byte("secret"))
	if err != nil {
		t.Fatalf("EncryptAESGCM() failed: %v", err)
	}
	if _, err := DecryptAESGCM(MustRandom(KeySize), sealed); err == nil {
		t.Fatalf("DecryptAESGCM() with the wrong key should fail")
	}
}

func TestInvalidInputs(t *testing.T) {
	if _, err := EncryptAESGCM([]byte("short"), []byte("x")); !errors.Is(err, ErrInvalidKeyLength) {
		t.Errorf("EncryptAESGCM() short key = %v, want ErrInvalidKeyLength", err)
	}
	if _, err := DecryptAESGCM(MustRandom(KeySize), []byte{1, 2}); !errors.Is(err, ErrCiphertextTooShort) {
		t.Errorf("DecryptAESGCM() short blob = %v, want ErrCiphertextTooShort", err)
	}
}

func TestDeriveSessionKey(t *testing.T) {
	master := bytes.Repeat([]byte{7}, KeySize)

	a, err := DeriveSessionKey(master, "device-1")
	if err != nil {
		t.Fatalf("DeriveSessionKey() failed: %v", err)
	}
	b, _ := DeriveSessionKey(master, "device-1")
	c, _ := DeriveSessionKey(master, "device-2")

	if len(a) != KeySize {
		t.Fatalf("key length = %d, want %d", len(a), KeySize)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("derivation is not deterministic")
	}
	if bytes.Equal(a, c) {
		t.Errorf("different fingerprints produced the same key")
	}

	if _, err := DeriveSessionKey(nil, "device-only"); err != nil {
		t.Errorf("fingerprint-only derivation failed: %v", err)
	}
	if _, err := DeriveSessionKey(nil, ""); err == nil {
		t.Errorf("derivation without any input should fail")
	}
}
