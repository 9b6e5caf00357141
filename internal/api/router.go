package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/harrylevesque/flavorfind/internal/auth"
	"github.com/harrylevesque/flavorfind/internal/store"
	"github.com/harrylevesque/flavorfind/internal/utils"
)

// AppIDHeader names the application a request is for.
const AppIDHeader = "X-App-Id"

// Server is the development backend. It speaks the same REST dialect as
// the hosted backend the client is built for.
type Server struct {
	Store  *store.Store
	Tokens *auth.Tokens
	// AppID, when set, must match the X-App-Id header of every /api call
	// except the health check.
	AppID string
	Log   *utils.Logger
}

func NewRouter(s *Server) *mux.Router {
	if s.Log == nil {
		s.Log = utils.Discard()
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	health := func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "OK"); err != nil {
			s.Log.Warnf("api: writing health response: %v", err)
		}
	}
	r.HandleFunc("/health", health).Methods("GET")
	r.HandleFunc("/api/health", health).Methods("GET")
	r.HandleFunc("/admin", s.AdminHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.requireAppID)
	api.HandleFunc("/auth/{entity}/login", s.LoginHandler).Methods("POST")
	api.HandleFunc("/auth/{entity}/signup", s.SignupHandler).Methods("POST")
	api.HandleFunc("/auth/{entity}/me", s.MeHandler).Methods("GET")
	api.HandleFunc("/auth/{entity}/logout", s.LogoutHandler).Methods("POST")
	api.HandleFunc("/collections/{entity}", s.ListHandler).Methods("GET")
	api.HandleFunc("/collections/{entity}", s.CreateHandler).Methods("POST")
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Log.Infof("api: %s %s -> %d (%s)", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) requireAppID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.AppID != "" && r.Header.Get(AppIDHeader) != s.AppID {
			s.fail(w, utils.Errorf(http.StatusForbidden, "unknown application %q", r.Header.Get(AppIDHeader)))
			return
		}
		next.ServeHTTP(w, r)
	})
}
