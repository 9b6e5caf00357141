// Package manifest is the client for the backend-as-a-service the app runs
// on. It speaks the backend's REST dialect: token auth per entity and a
// generic collection API, with entities addressed by name.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/harrylevesque/flavorfind/internal/utils"
)

// AppIDHeader carries the application identifier on every request.
const AppIDHeader = "X-App-Id"

var (
	// ErrInvalidConfig is returned by New for an unusable app id or base URL.
	ErrInvalidConfig = errors.New("manifest: invalid client configuration")
	// ErrNotAuthenticated is returned by calls that need a session when the
	// client holds no token.
	ErrNotAuthenticated = errors.New("manifest: not authenticated")
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

type Client struct {
	appID   string
	baseURL string
	http    *http.Client
	tokens  TokenStore
	log     *utils.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithTokenStore(s TokenStore) Option { return func(c *Client) { c.tokens = s } }

func WithLogger(l *utils.Logger) Option { return func(c *Client) { c.log = l } }

// New creates a client for the application appID hosted at baseURL. When a
// token store is configured, a previously saved session is picked up.
func New(appID, baseURL string, opts ...Option) (*Client, error) {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return nil, fmt.Errorf("%w: empty app id", ErrInvalidConfig)
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: bad base url %q", ErrInvalidConfig, baseURL)
	}

	c := &Client{
		appID:   appID,
		baseURL: u.String(),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     utils.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.tokens != nil {
		token, err := c.tokens.Load()
		if err != nil {
			c.log.Warnf("manifest: ignoring stored session: %v", err)
		}
		c.token = token
	}
	return c, nil
}

// Authenticated reports whether the client holds a session token.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Login exchanges credentials of the default auth entity (User) for a
// session token.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.From(DefaultAuthEntity).Login(ctx, email, password)
}

// Logout drops the session. The local token is always discarded; the
// returned error only reports a failed remote revocation.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.token = ""
	c.mu.Unlock()

	if c.tokens != nil {
		if err := c.tokens.Clear(); err != nil {
			c.log.Warnf("manifest: clearing stored session: %v", err)
		}
	}
	if token == "" {
		return nil
	}
	path := "/auth/" + Slug(DefaultAuthEntity) + "/logout"
	return c.send(ctx, http.MethodPost, path, nil, nil, token)
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	if c.tokens != nil {
		if err := c.tokens.Save(token); err != nil {
			c.log.Warnf("manifest: saving session: %v", err)
		}
	}
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.send(ctx, method, path, body, out, c.currentToken())
}

func (c *Client) send(ctx context.Context, method, path string, body, out interface{}, token string) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(AppIDHeader, c.appID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("manifest: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Infof("manifest: %s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("manifest: %s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("manifest: %s %s: decode response: %w", method, path, err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	apiErr := &utils.APIError{}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	apiErr.Code = status
	return apiErr
}
