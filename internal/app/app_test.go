package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/harrylevesque/flavorfind/internal/models"
	"github.com/harrylevesque/flavorfind/internal/probe"
)

type fakeSessions struct {
	mu        sync.Mutex
	users     map[string]*models.User
	passwords map[string]string
	current   *models.User
	logoutErr error
	loginErr  error
	meErr     error
	calls     []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{users: map[string]*models.User{}, passwords: map[string]string{}}
}

func (f *fakeSessions) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeSessions) Me(context.Context) (*models.User, error) {
	f.record("me")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.meErr != nil {
		return nil, f.meErr
	}
	if f.current == nil {
		return nil, errors.New("unauthorized")
	}
	u := *f.current
	return &u, nil
}

func (f *fakeSessions) Login(_ context.Context, email, password string) error {
	f.record("login")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return f.loginErr
	}
	u, ok := f.users[email]
	if !ok || f.passwords[email] != password {
		return errors.New("invalid credentials")
	}
	f.current = u
	return nil
}

func (f *fakeSessions) Signup(_ context.Context, name, email, password string) error {
	f.record("signup")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.users[email]; taken {
		return errors.New("email taken")
	}
	f.users[email] = &models.User{ID: "u-" + email, Name: name, Email: email}
	f.passwords[email] = password
	return nil
}

func (f *fakeSessions) Logout(context.Context) error {
	f.record("logout")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = nil
	return f.logoutErr
}

type fakeProber struct {
	result probe.Result
	gotMax int
}

func (p *fakeProber) Test(_ context.Context, maxAttempts int) probe.Result {
	p.gotMax = maxAttempts
	return p.result
}

type alerts struct {
	mu   sync.Mutex
	msgs []string
}

func (a *alerts) Alert(msg string) {
	a.mu.Lock()
	a.msgs = append(a.msgs, msg)
	a.mu.Unlock()
}

func (a *alerts) all() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.msgs...)
}

func TestInitialState(t *testing.T) {
	a := New(newFakeSessions())
	if !a.Loading() {
		t.Error("expected loading before bootstrap")
	}
	if a.User() != nil || a.State() != Anonymous {
		t.Error("expected anonymous start")
	}
	if a.Screen() != ScreenLanding {
		t.Errorf("screen = %s", a.Screen())
	}
	if ok, status := a.Connection(); ok || status != models.StatusInitial {
		t.Errorf("connection = %v %q", ok, status)
	}
}

func TestBootstrapResumesSession(t *testing.T) {
	s := newFakeSessions()
	s.current = &models.User{ID: "1", Name: "Ana", Email: "ana@x.io"}
	a := New(s)
	a.Bootstrap(context.Background())

	if a.Loading() {
		t.Error("loading flag not cleared")
	}
	if a.State() != Authenticated || a.Screen() != ScreenDashboard {
		t.Errorf("state = %s, screen = %s", a.State(), a.Screen())
	}
	if u := a.User(); u == nil || u.Name != "Ana" {
		t.Errorf("user = %+v", u)
	}
}

func TestBootstrapWithoutSession(t *testing.T) {
	a := New(newFakeSessions())
	a.Bootstrap(context.Background())

	if a.Loading() {
		t.Error("loading flag not cleared")
	}
	if a.User() != nil || a.Screen() != ScreenLanding {
		t.Errorf("expected landing with no user, got %+v on %s", a.User(), a.Screen())
	}
}

func TestTestConnectionStatuses(t *testing.T) {
	cases := []struct {
		name      string
		result    probe.Result
		sdkErr    error
		connected bool
		status    models.ConnectionStatus
	}{
		{"connected", probe.Result{Success: true, Attempts: 1}, nil, true, models.StatusConnected},
		{"failed", probe.Result{Success: false, Attempts: 3, Error: "refused"}, nil, false, models.StatusFailed},
		{"sdk error", probe.Result{Success: true, Attempts: 2}, errors.New("bad app id"), true, models.StatusSDKError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakeProber{result: tc.result}
			sdkErr := tc.sdkErr
			a := New(newFakeSessions(), WithProbe(p, 5), WithSDKCheck(func() error { return sdkErr }))
			a.TestConnection(context.Background())

			ok, status := a.Connection()
			if ok != tc.connected || status != tc.status {
				t.Errorf("got %v %q, want %v %q", ok, status, tc.connected, tc.status)
			}
			if p.gotMax != 5 {
				t.Errorf("probe called with %d attempts", p.gotMax)
			}
		})
	}
}

func TestStartRunsBothTasks(t *testing.T) {
	s := newFakeSessions()
	a := New(s, WithProbe(&fakeProber{result: probe.Result{Success: true, Attempts: 1}}, 3))
	a.Start(context.Background())

	if a.Loading() {
		t.Error("bootstrap did not finish")
	}
	if ok, status := a.Connection(); !ok || status != models.StatusConnected {
		t.Errorf("connection = %v %q", ok, status)
	}
}

func TestLoginFailureAlertsAndKeepsState(t *testing.T) {
	al := &alerts{}
	a := New(newFakeSessions(), WithAlerter(al))
	a.Bootstrap(context.Background())

	if err := a.Login(context.Background(), "nobody@x.io", "pw"); err == nil {
		t.Fatal("expected error")
	}
	if got := al.all(); len(got) != 1 || got[0] != AlertLoginFailed {
		t.Errorf("alerts = %q", got)
	}
	if a.User() != nil || a.Screen() != ScreenLanding {
		t.Error("state changed after failed login")
	}
}

func TestSignupThenLogin(t *testing.T) {
	s := newFakeSessions()
	al := &alerts{}
	a := New(s, WithAlerter(al))
	a.Bootstrap(context.Background())

	if err := a.Signup(context.Background(), "Ana", "ana@x.io", "pw1"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	u := a.User()
	if u == nil || u.Name != "Ana" || u.Email != "ana@x.io" {
		t.Fatalf("user = %+v", u)
	}
	if a.Screen() != ScreenDashboard {
		t.Errorf("screen = %s", a.Screen())
	}
	if len(al.all()) != 0 {
		t.Errorf("unexpected alerts %q", al.all())
	}

	want := []string{"me", "signup", "login", "me"}
	if len(s.calls) != len(want) {
		t.Fatalf("calls = %v", s.calls)
	}
	for i := range want {
		if s.calls[i] != want[i] {
			t.Fatalf("calls = %v", s.calls)
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	s := newFakeSessions()
	s.users["ana@x.io"] = &models.User{ID: "1", Name: "Ana", Email: "ana@x.io"}
	s.passwords["ana@x.io"] = "pw1"
	al := &alerts{}
	a := New(s, WithAlerter(al))

	if err := a.Signup(context.Background(), "Ana2", "ana@x.io", "pw2"); err == nil {
		t.Fatal("expected error")
	}
	if got := al.all(); len(got) != 1 || got[0] != AlertSignupFailed {
		t.Errorf("alerts = %q", got)
	}
	if a.User() != nil {
		t.Error("user set after failed signup")
	}
}

func TestLogoutIsBestEffort(t *testing.T) {
	s := newFakeSessions()
	s.users["ana@x.io"] = &models.User{ID: "1", Name: "Ana", Email: "ana@x.io"}
	s.passwords["ana@x.io"] = "pw1"
	a := New(s)
	if err := a.Login(context.Background(), "ana@x.io", "pw1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	s.logoutErr = errors.New("network down")
	a.Logout(context.Background())

	if a.User() != nil || a.State() != Anonymous || a.Screen() != ScreenLanding {
		t.Error("logout did not clear the session")
	}
}

func TestUserReturnsCopy(t *testing.T) {
	s := newFakeSessions()
	s.current = &models.User{ID: "1", Name: "Ana", Email: "ana@x.io"}
	a := New(s)
	a.Bootstrap(context.Background())

	u := a.User()
	u.Name = "changed"
	if a.User().Name != "Ana" {
		t.Error("User exposed internal state")
	}
}

func TestSignupLoginFailureAlertsOnce(t *testing.T) {
	s := newFakeSessions()
	s.loginErr = errors.New("503 service unavailable")
	al := &alerts{}
	a := New(s, WithAlerter(al))
	a.Bootstrap(context.Background())

	if err := a.Signup(context.Background(), "Ana", "ana@x.io", "pw1"); err == nil {
		t.Fatal("expected error")
	}
	if got := al.all(); len(got) != 1 || got[0] != AlertLoginFailed {
		t.Errorf("alerts = %q, want only the login alert", got)
	}
	if a.User() != nil || a.Screen() != ScreenLanding {
		t.Errorf("user = %+v, screen = %s", a.User(), a.Screen())
	}
}

func TestLoginDropsTokenWhenUserLookupFails(t *testing.T) {
	s := newFakeSessions()
	s.users["ana@x.io"] = &models.User{ID: "1", Name: "Ana", Email: "ana@x.io"}
	s.passwords["ana@x.io"] = "pw1"
	s.meErr = errors.New("500 internal error")
	al := &alerts{}
	a := New(s, WithAlerter(al))

	if err := a.Login(context.Background(), "ana@x.io", "pw1"); err == nil {
		t.Fatal("expected error")
	}
	if got := al.all(); len(got) != 1 || got[0] != AlertLoginFailed {
		t.Errorf("alerts = %q", got)
	}
	if s.current != nil {
		t.Error("session left open after failed login")
	}
	if last := s.calls[len(s.calls)-1]; last != "logout" {
		t.Errorf("calls = %v, want a trailing logout", s.calls)
	}
	if a.User() != nil || a.Screen() != ScreenLanding {
		t.Error("state changed after failed login")
	}
}
