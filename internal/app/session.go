package app

import (
	"context"
	"errors"
)

// Login signs in and loads the session user. On failure the user is
// alerted and the state is left as it was.
func (a *App) Login(ctx context.Context, email, password string) error {
	err := a.sessions.Login(ctx, email, password)
	if err == nil {
		u, meErr := a.sessions.Me(ctx)
		switch {
		case meErr != nil:
			err = meErr
		case u == nil:
			err = errors.New("backend returned no user for the new session")
		default:
			a.signIn(u)
			a.log.Infof("app: logged in as %s", u.Email)
			return nil
		}
		// The new token is already stored; drop it so a later run does
		// not resume a session this one reported as failed.
		if lerr := a.sessions.Logout(ctx); lerr != nil {
			a.log.Warnf("app: discarding half-open session: %v", lerr)
		}
	}
	a.log.Errorf("app: login failed: %v", err)
	a.Alert(AlertLoginFailed)
	return err
}

// Signup creates the account and logs straight in with the same
// credentials. A failing login alerts on its own.
func (a *App) Signup(ctx context.Context, name, email, password string) error {
	if err := a.sessions.Signup(ctx, name, email, password); err != nil {
		a.log.Errorf("app: signup failed: %v", err)
		a.Alert(AlertSignupFailed)
		return err
	}
	return a.Login(ctx, email, password)
}

// Logout is best-effort: a failed remote logout is logged, and the local
// session is cleared regardless.
func (a *App) Logout(ctx context.Context) {
	if err := a.sessions.Logout(ctx); err != nil {
		a.log.Warnf("app: remote logout failed: %v", err)
	}
	a.signOut()
}
