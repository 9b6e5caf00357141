package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/harrylevesque/flavorfind/internal/auth"
	"github.com/harrylevesque/flavorfind/internal/store"
	"github.com/harrylevesque/flavorfind/internal/utils"
)

// Only users can authenticate.
const authEntity = "users"

func (s *Server) checkAuthEntity(w http.ResponseWriter, r *http.Request) bool {
	if e := mux.Vars(r)["entity"]; e != authEntity {
		s.fail(w, utils.Errorf(http.StatusNotFound, "entity %q is not authenticable", e))
		return false
	}
	return true
}

// session resolves the bearer token of r to its user.
func (s *Server) session(r *http.Request) (*store.UserRecord, *auth.Claims, error) {
	raw, err := auth.ExtractTokenFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		return nil, nil, err
	}
	claims, err := s.Tokens.Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	revoked, err := s.Store.IsRevoked(claims.Id)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, auth.ErrInvalidToken
	}
	u, err := s.Store.UserByID(claims.Subject)
	if err == store.ErrNotFound {
		return nil, nil, auth.ErrInvalidToken
	}
	if err != nil {
		return nil, nil, err
	}
	return u, claims, nil
}

func (s *Server) issue(w http.ResponseWriter, code int, u *store.UserRecord) {
	token, _, err := s.Tokens.Issue(u.ID)
	if err != nil {
		s.fail(w, err)
		return
	}
	respondWith(w, code, auth.LoginResponse{Token: token})
}

// LoginHandler exchanges an email and password for a token.
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuthEntity(w, r) {
		return
	}
	var in auth.LoginRequest
	if err := decode(r, &in); err != nil {
		s.fail(w, err)
		return
	}
	u, err := s.Store.UserByEmail(in.Email)
	if err == store.ErrNotFound || (err == nil && !auth.CheckPasswordHash(in.Password, u.PasswordHash)) {
		s.fail(w, auth.ErrInvalidCredentials)
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.issue(w, http.StatusOK, u)
}

// SignupHandler creates a user and answers with a token for it.
func (s *Server) SignupHandler(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuthEntity(w, r) {
		return
	}
	var in auth.SignupRequest
	if err := decode(r, &in); err != nil {
		s.fail(w, err)
		return
	}
	if err := in.Validate(); err != nil {
		s.fail(w, err)
		return
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		s.fail(w, err)
		return
	}
	u, err := s.Store.CreateUser(in.Name, in.Email, hash)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.Log.Infof("api: new user %s", u.Email)
	s.issue(w, http.StatusCreated, u)
}

func (s *Server) MeHandler(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuthEntity(w, r) {
		return
	}
	u, _, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	respondWith(w, http.StatusOK, u.Model())
}

// LogoutHandler revokes the presented token.
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuthEntity(w, r) {
		return
	}
	_, claims, err := s.session(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.Store.RevokeToken(claims.Id, claims.Expiry()); err != nil {
		s.fail(w, err)
		return
	}
	respondWith(w, http.StatusOK, struct{}{})
}
