package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets the FLAVORFIND_* variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"FLAVORFIND_APP_ID", "FLAVORFIND_BACKEND_URL", "FLAVORFIND_DATA_DIR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.AppID != DefaultAppID {
		t.Errorf("AppID = %q, want default", cfg.AppID)
	}
	if cfg.ProbeAttempts != 3 {
		t.Errorf("ProbeAttempts = %d, want 3", cfg.ProbeAttempts)
	}
	if !cfg.SessionEncryption {
		t.Errorf("SessionEncryption should default to true")
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "flavorfind.json")
	body := `{"backendUrl": "http://localhost:8080/", "probeAttempts": 5}`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.BackendURL != "http://localhost:8080" {
		t.Errorf("BackendURL = %q, want trailing slash trimmed", cfg.BackendURL)
	}
	if cfg.ProbeAttempts != 5 {
		t.Errorf("ProbeAttempts = %d, want 5", cfg.ProbeAttempts)
	}
	if cfg.AppID != DefaultAppID {
		t.Errorf("AppID = %q, fields absent from the file should keep defaults", cfg.AppID)
	}
	if got := cfg.AdminURL(); got != "http://localhost:8080/admin" {
		t.Errorf("AdminURL() = %q", got)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flavorfind.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load() should fail on malformed json")
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "flavorfind.json")
	if err := os.WriteFile(path, []byte(`{"appId": "from-file"}`), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FLAVORFIND_APP_ID", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.AppID != "from-env" {
		t.Errorf("AppID = %q, want from-env", cfg.AppID)
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	cfg.BackendURL = "localhost:8080"
	if err := cfg.Validate(); err == nil {
		t.Errorf("Validate() should reject a url without scheme")
	}

	cfg = Defaults()
	cfg.AppID = ""
	if err := cfg.Validate(); err == nil {
		t.Errorf("Validate() should reject an empty app id")
	}
}
