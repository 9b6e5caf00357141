package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the error body exchanged between the backend and the client.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

func New(code int, message string) error {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

func Errorf(code int, format string, args ...interface{}) error {
	return New(code, fmt.Sprintf(format, args...))
}

// StatusCode returns the HTTP status carried by err, or 500 when err is not
// an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return http.StatusInternalServerError
}

// IsCode reports whether err is an *APIError with the given status.
func IsCode(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
