package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	env "github.com/jhunt/go-envirotron"

	"github.com/harrylevesque/flavorfind/internal/utils"
)

const (
	DefaultAppID      = "488d1ad1-47a1-4e10-89b3-7bbcc0a27c81"
	DefaultBackendURL = "https://no-code-app-488d1ad1-47a1-4e10-89b3-7bbcc0a27c81.vercel.app"
	DefaultFile       = "flavorfind.json"
)

// Config is the static client configuration. It is read once at startup.
type Config struct {
	AppID             string `json:"appId" env:"FLAVORFIND_APP_ID"`
	BackendURL        string `json:"backendUrl" env:"FLAVORFIND_BACKEND_URL"`
	DataDir           string `json:"dataDir" env:"FLAVORFIND_DATA_DIR"`
	ProbeAttempts     int    `json:"probeAttempts"`
	ProbeDelayMS      int    `json:"probeDelayMs"`
	ProbeTimeoutMS    int    `json:"probeTimeoutMs"`
	SessionEncryption bool   `json:"sessionEncryption"`
}

func Defaults() Config {
	return Config{
		AppID:             DefaultAppID,
		BackendURL:        DefaultBackendURL,
		DataDir:           utils.GetDataDir(),
		ProbeAttempts:     3,
		ProbeDelayMS:      1000,
		ProbeTimeoutMS:    5000,
		SessionEncryption: true,
	}
}

// Load starts from Defaults, overlays the JSON file at path and then the
// FLAVORFIND_* environment. A missing file is not an error; fields absent
// from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	env.Override(&cfg)
	cfg.normalize()
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.AppID = strings.TrimSpace(c.AppID)
	c.BackendURL = strings.TrimRight(strings.TrimSpace(c.BackendURL), "/")
	if c.ProbeAttempts < 1 {
		c.ProbeAttempts = 1
	}
	if c.ProbeDelayMS < 0 {
		c.ProbeDelayMS = 0
	}
	if c.DataDir == "" {
		c.DataDir = utils.GetDataDir()
	}
}

// Validate checks the values the client cannot work without.
func (c Config) Validate() error {
	if c.AppID == "" {
		return errors.New("config: app id is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: backend url %q must be an absolute http(s) url", c.BackendURL)
	}
	return nil
}

func (c Config) ProbeDelay() time.Duration {
	return time.Duration(c.ProbeDelayMS) * time.Millisecond
}

func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMS) * time.Millisecond
}

// AdminURL is the static link to the backend's admin panel.
func (c Config) AdminURL() string {
	return c.BackendURL + "/admin"
}
