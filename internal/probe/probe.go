// Package probe checks whether the backend origin is reachable.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/harrylevesque/flavorfind/internal/utils"
)

// HealthPath is requested on the backend origin by every attempt.
const HealthPath = "/api/health"

// Result is the verdict of Test.
type Result struct {
	Success  bool
	Attempts int
	// Error describes the last failure when Success is false.
	Error string
}

type Probe struct {
	origin  string
	http    *http.Client
	timeout time.Duration
	delay   time.Duration
	log     *utils.Logger
}

type Option func(*Probe)

// WithDelay sets the fixed pause between failed attempts.
func WithDelay(d time.Duration) Option { return func(p *Probe) { p.delay = d } }

// WithTimeout bounds each attempt.
func WithTimeout(d time.Duration) Option { return func(p *Probe) { p.timeout = d } }

func WithHTTPClient(h *http.Client) Option { return func(p *Probe) { p.http = h } }

func WithLogger(l *utils.Logger) Option { return func(p *Probe) { p.log = l } }

func New(origin string, opts ...Option) *Probe {
	p := &Probe{
		origin:  strings.TrimRight(origin, "/"),
		http:    http.DefaultClient,
		timeout: 5 * time.Second,
		delay:   time.Second,
		log:     utils.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Test makes up to maxAttempts reachability checks, pausing a fixed delay
// between failures. Any response below 500 counts as reachable. A value of
// maxAttempts below 1 means a single attempt.
func (p *Probe) Test(ctx context.Context, maxAttempts int) Result {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var res Result
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res.Attempts = attempt
		err := p.attempt(ctx)
		if err == nil {
			p.log.Infof("probe: %s reachable (attempt %d/%d)", p.origin, attempt, maxAttempts)
			res.Success = true
			res.Error = ""
			return res
		}
		res.Error = err.Error()
		p.log.Warnf("probe: attempt %d/%d failed: %v", attempt, maxAttempts, err)

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			res.Error = ctx.Err().Error()
			return res
		case <-time.After(p.delay):
		}
	}
	return res
}

func (p *Probe) attempt(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.origin+HealthPath, nil)
	if err != nil {
		return err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend answered %s", resp.Status)
	}
	return nil
}
