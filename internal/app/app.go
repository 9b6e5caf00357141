// Package app holds the application context: who is signed in, which
// screen is showing, and whether the backend answered the startup probe.
package app

import (
	"context"
	"sync"

	"github.com/harrylevesque/flavorfind/internal/models"
	"github.com/harrylevesque/flavorfind/internal/probe"
	"github.com/harrylevesque/flavorfind/internal/utils"
)

// State is the session state of the bootstrapper.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Screen is what the view router shows.
type Screen string

const (
	ScreenLanding   Screen = "landing"
	ScreenDashboard Screen = "dashboard"
)

// Alert messages shown to the user.
const (
	AlertLoginFailed  = "Login failed. Please check your credentials."
	AlertSignupFailed = "Signup failed. The email might already be in use."
)

// Sessions is the slice of the remote data client the app needs.
type Sessions interface {
	Me(ctx context.Context) (*models.User, error)
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context) error
}

// Prober checks backend reachability.
type Prober interface {
	Test(ctx context.Context, maxAttempts int) probe.Result
}

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(msg string)

func (f AlertFunc) Alert(msg string) { f(msg) }

// App is the application context passed to every view. It is created at
// startup and its session is cleared on logout.
type App struct {
	sessions Sessions
	prober   Prober
	attempts int
	sdkCheck func() error
	alerter  Alerter
	log      *utils.Logger

	mu        sync.Mutex
	user      *models.User
	screen    Screen
	loading   bool
	connected bool
	status    models.ConnectionStatus
}

type Option func(*App)

// WithProbe sets the connectivity prober and its attempt budget.
func WithProbe(p Prober, maxAttempts int) Option {
	return func(a *App) { a.prober, a.attempts = p, maxAttempts }
}

// WithSDKCheck sets the check run after a successful probe; a failure sets
// the "SDK Error" status.
func WithSDKCheck(check func() error) Option { return func(a *App) { a.sdkCheck = check } }

func WithAlerter(al Alerter) Option { return func(a *App) { a.alerter = al } }

func WithLogger(l *utils.Logger) Option { return func(a *App) { a.log = l } }

func New(sessions Sessions, opts ...Option) *App {
	a := &App{
		sessions: sessions,
		attempts: 3,
		alerter:  AlertFunc(func(string) {}),
		log:      utils.Discard(),
		screen:   ScreenLanding,
		loading:  true,
		status:   models.StatusInitial,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Alert forwards msg to the configured alerter.
func (a *App) Alert(msg string) { a.alerter.Alert(msg) }

func (a *App) Logger() *utils.Logger { return a.log }

// User returns a copy of the session user, or nil when anonymous.
func (a *App) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return Anonymous
	}
	return Authenticated
}

// Screen routes: the landing screen shows whenever the current screen is
// landing or nobody is signed in.
func (a *App) Screen() Screen {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.screen == ScreenLanding || a.user == nil {
		return ScreenLanding
	}
	return ScreenDashboard
}

// Loading is true until the startup session lookup has finished.
func (a *App) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Connection returns the reachability flag and status text.
func (a *App) Connection() (bool, models.ConnectionStatus) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connected, a.status
}

func (a *App) signIn(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.screen = ScreenDashboard
	a.mu.Unlock()
}

func (a *App) signOut() {
	a.mu.Lock()
	a.user = nil
	a.screen = ScreenLanding
	a.mu.Unlock()
}

func (a *App) setConnection(connected bool, status models.ConnectionStatus) {
	a.mu.Lock()
	a.connected = connected
	a.status = status
	a.mu.Unlock()
}
