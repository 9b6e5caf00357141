package utils

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Info("starting")
	l.Warnf("slow response: %dms", 1200)
	l.Error("boom")

	out := buf.String()
	for _, want := range []string{"INFO: ", "starting", "WARN: ", "slow response: 1200ms", "ERROR: ", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestStatusCode(t *testing.T) {
	err := fmt.Errorf("create restaurant: %w", New(http.StatusConflict, "duplicate"))

	if got := StatusCode(err); got != http.StatusConflict {
		t.Fatalf("StatusCode() = %d, want %d", got, http.StatusConflict)
	}
	if !IsCode(err, http.StatusConflict) {
		t.Errorf("IsCode() should match wrapped APIError")
	}
	if got := StatusCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("StatusCode(plain) = %d, want 500", got)
	}
}
