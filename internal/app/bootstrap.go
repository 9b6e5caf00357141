package app

import (
	"context"
	"sync"

	"github.com/harrylevesque/flavorfind/internal/models"
)

// Start runs the startup sequence: the session lookup and the connectivity
// probe run side by side and Start returns when both are done.
func (a *App) Start(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.Bootstrap(ctx)
	}()
	go func() {
		defer wg.Done()
		a.TestConnection(ctx)
	}()
	wg.Wait()
}

// Bootstrap asks the backend once for the current session.
func (a *App) Bootstrap(ctx context.Context) {
	defer func() {
		a.mu.Lock()
		a.loading = false
		a.mu.Unlock()
	}()

	u, err := a.sessions.Me(ctx)
	switch {
	case err != nil:
		a.log.Infof("app: no active session: %v", err)
		a.signOut()
	case u != nil:
		a.log.Infof("app: resumed session for %s", u.Email)
		a.signIn(u)
	}
}

// TestConnection probes the backend and then checks that a client can be
// set up, updating the connection indicator along the way. Failures are
// logged only.
func (a *App) TestConnection(ctx context.Context) {
	if a.prober == nil {
		return
	}
	a.log.Info("app: testing backend connection")
	a.setConnection(false, models.StatusTesting)

	res := a.prober.Test(ctx, a.attempts)
	if !res.Success {
		a.log.Errorf("app: backend connection failed after %d attempts: %s", res.Attempts, res.Error)
		a.setConnection(false, models.StatusFailed)
		return
	}

	a.log.Info("app: backend connection successful")
	a.setConnection(true, models.StatusConnected)
	if a.sdkCheck != nil {
		if err := a.sdkCheck(); err != nil {
			a.log.Errorf("app: client initialization failed: %v", err)
			a.setConnection(true, models.StatusSDKError)
		}
	}
}
