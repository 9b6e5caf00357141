package utils

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoFingerprint is returned when no stable hardware identifier exists.
var ErrNoFingerprint = errors.New("no device fingerprint available")

// DeviceFingerprint returns a stable hardware identifier for this machine.
// It is used as key material for the locally stored session, so it only has
// to be stable, not secret.
func DeviceFingerprint() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return macOSUUID()
	case "linux":
		return linuxUUID()
	case "windows":
		return windowsUUID()
	default:
		return "", errors.New("unsupported platform: " + runtime.GOOS)
	}
}

func macOSUUID() (string, error) {
	out, err := exec.Command("ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "IOPlatformUUID") {
			continue
		}
		parts := strings.Split(line, "\"")
		if len(parts) >= 4 && parts[3] != "" {
			return parts[3], nil
		}
	}
	return "", ErrNoFingerprint
}

func linuxUUID() (string, error) {
	// product_uuid is root-only on most distros; machine-id is world readable.
	for _, path := range []string{"/sys/class/dmi/id/product_uuid", "/etc/machine-id", "/var/lib/dbus/machine-id"} {
		b, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, nil
		}
	}
	return "", ErrNoFingerprint
}

func windowsUUID() (string, error) {
	out, err := exec.Command("wmic", "csproduct", "get", "UUID").Output()
	if err != nil {
		return "", err
	}
	for _, line := range bytes.Split(out, []byte("\n")) {
		s := strings.TrimSpace(string(line))
		if s != "" && !strings.EqualFold(s, "UUID") {
			return s, nil
		}
	}
	return "", ErrNoFingerprint
}
