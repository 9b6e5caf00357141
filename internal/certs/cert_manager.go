package certs

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"
)

var (
	ErrNoCertificate = errors.New("no certificate found in PEM data")
	ErrExpired       = errors.New("certificate has expired")
)

// CertManager loads the TLS key pair the development backend serves with.
type CertManager struct {
	certFile string
	keyFile  string
	now      func() time.Time
}

// NewCertManager creates a new CertManager for the given files.
func NewCertManager(certFile, keyFile string) *CertManager {
	return &CertManager{certFile: certFile, keyFile: keyFile, now: time.Now}
}

// LoadCertificate parses the leaf certificate of the cert file.
func (cm *CertManager) LoadCertificate() (*x509.Certificate, error) {
	data, err := os.ReadFile(cm.certFile)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "CERTIFICATE" {
		return nil, ErrNoCertificate
	}
	return x509.ParseCertificate(block.Bytes)
}

// IsExpired checks if a certificate is expired.
func (cm *CertManager) IsExpired(cert *x509.Certificate) bool {
	return cert.NotAfter.Before(cm.now())
}

// ExpiresWithin reports whether cert stops being valid within d.
func (cm *CertManager) ExpiresWithin(cert *x509.Certificate, d time.Duration) bool {
	return cert.NotAfter.Before(cm.now().Add(d))
}

// TLSConfig loads the key pair, refusing an expired certificate.
func (cm *CertManager) TLSConfig() (*tls.Config, error) {
	leaf, err := cm.LoadCertificate()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cm.certFile, err)
	}
	if cm.IsExpired(leaf) {
		return nil, fmt.Errorf("%s: %w (not after %s)", cm.certFile, ErrExpired, leaf.NotAfter.Format(time.RFC3339))
	}
	pair, err := tls.LoadX509KeyPair(cm.certFile, cm.keyFile)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
