// Package certstore persists a generated certificate/key pair as PEM
// files and answers questions about the pair currently on disk.
package certstore

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	atverrors "atvcert/internal/errors"
	"atvcert/internal/selfsigned"
)

// Store names the two files a pair is written to. Every Save overwrites
// both unconditionally; concurrent writers are last-writer-wins.
type Store struct {
	CertFile string
	KeyFile  string
}

// DefaultDir returns the platform directory the pair lives in when no
// paths are configured: the user's application-support directory on
// macOS, XDG data home elsewhere.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "atvcert")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "atvcert")
	}
	return filepath.Join(home, ".local", "share", "atvcert")
}

// Default returns a store rooted at DefaultDir with the conventional
// cert.pem / key.pem file names.
func Default() Store {
	dir := DefaultDir()
	return Store{
		CertFile: filepath.Join(dir, "cert.pem"),
		KeyFile:  filepath.Join(dir, "key.pem"),
	}
}

// Save writes the pair to the store's paths, creating parent directories
// as needed. The key file is readable by the owner only.
func (s Store) Save(pair *selfsigned.Pair) error {
	for _, f := range []string{s.CertFile, s.KeyFile} {
		if err := os.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", f, err)
		}
	}
	if err := os.WriteFile(s.CertFile, pair.CertificatePEM(), 0o644); err != nil {
		return fmt.Errorf("writing certificate: %w", err)
	}
	if err := os.WriteFile(s.KeyFile, pair.KeyPEM(), 0o600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	return nil
}

// Load reads the pair back from disk and verifies that the key matches
// the certificate's public key.
func (s Store) Load() (*tls.Certificate, *x509.Certificate, error) {
	if !fileExists(s.CertFile) {
		return nil, nil, atverrors.ErrCertificateMissing
	}
	if !fileExists(s.KeyFile) {
		return nil, nil, atverrors.ErrKeyMissing
	}

	pair, err := tls.LoadX509KeyPair(s.CertFile, s.KeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading key pair: %w", err)
	}

	cert, err := x509.ParseCertificate(pair.Certificate[0])
	if err != nil {
		return nil, nil, fmt.Errorf("parsing certificate: %w", err)
	}

	key, ok := pair.PrivateKey.(*rsa.PrivateKey)
	if !ok || !key.PublicKey.Equal(cert.PublicKey) {
		return nil, nil, atverrors.ErrKeyMismatch
	}

	return &pair, cert, nil
}

// NeedsRenewal reports whether the pair should be regenerated: the files
// are missing or unreadable, or the certificate's remaining validity is
// below minValidity.
func (s Store) NeedsRenewal(minValidity time.Duration) bool {
	_, cert, err := s.Load()
	if err != nil {
		return true
	}
	return time.Until(cert.NotAfter) < minValidity
}

// Info summarizes the stored certificate for status reporting.
type Info struct {
	CommonName        string    `json:"common_name"`
	SerialNumber      string    `json:"serial_number"`
	DNSNames          []string  `json:"dns_names"`
	NotBefore         time.Time `json:"not_before"`
	NotAfter          time.Time `json:"not_after"`
	IsCA              bool      `json:"is_ca"`
	FingerprintSHA256 string    `json:"fingerprint_sha256"`
	CertFile          string    `json:"cert_file"`
	KeyFile           string    `json:"key_file"`
}

// Describe loads the stored certificate and returns its summary.
func (s Store) Describe() (*Info, error) {
	_, cert, err := s.Load()
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(cert.Raw)
	return &Info{
		CommonName:        cert.Subject.CommonName,
		SerialNumber:      cert.SerialNumber.String(),
		DNSNames:          cert.DNSNames,
		NotBefore:         cert.NotBefore,
		NotAfter:          cert.NotAfter,
		IsCA:              cert.IsCA,
		FingerprintSHA256: hex.EncodeToString(sum[:]),
		CertFile:          s.CertFile,
		KeyFile:           s.KeyFile,
	}, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
