package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harrylevesque/flavorfind/internal/auth"
	"github.com/harrylevesque/flavorfind/internal/models"
	"github.com/harrylevesque/flavorfind/internal/store"
	"github.com/harrylevesque/flavorfind/internal/utils"
)

func respondWith(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrMissingName),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrMissingPassword),
		errors.Is(err, models.ErrNameRequired),
		errors.Is(err, models.ErrUnknownCuisine):
		return http.StatusBadRequest
	}
	return utils.StatusCode(err)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := statusOf(err)
	msg := err.Error()
	var apiErr *utils.APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	if code >= 500 {
		s.Log.Errorf("api: %v", err)
		msg = http.StatusText(code)
	}
	respondWith(w, code, utils.APIError{Code: code, Message: msg})
}

func decode(r *http.Request, into interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return utils.Errorf(http.StatusBadRequest, "malformed request body: %v", err)
	}
	return nil
}
