package selfsigned

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"time"
)

const (
	// DefaultHostname is the identity the pair is generated for when the
	// caller does not provide one.
	DefaultHostname = "atvremote"

	defaultKeyBits  = 2048
	defaultSerial   = 1000
	defaultBackdate = 24 * time.Hour
	defaultValidity = 10 * 365 * 24 * time.Hour
)

// Options controls certificate generation. The zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// Hostname becomes the subject (and issuer) common name and the first
	// SAN entry. It is used as given; validating it is the caller's job.
	Hostname string

	// SerialNumber of the issued certificate. Constant across runs by
	// default, so re-generation produces a certificate browsers treat as
	// a different cert with the same serial.
	SerialNumber int64

	// KeyBits is the RSA modulus size.
	KeyBits int

	// Backdate shifts NotBefore into the past to tolerate clock skew
	// between the generating and the connecting machine.
	Backdate time.Duration

	// Validity is the lifetime measured from NotBefore.
	Validity time.Duration

	// ExtraDNSNames and ExtraIPs extend the SAN extension beyond the
	// hostname itself.
	ExtraDNSNames []string
	ExtraIPs      []net.IP

	// Now is the clock used for the validity window. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns the options for a local development pair:
// RSA-2048, serial 1000, backdated one day, valid for ten years.
func DefaultOptions() Options {
	return Options{
		Hostname:     DefaultHostname,
		SerialNumber: defaultSerial,
		KeyBits:      defaultKeyBits,
		Backdate:     defaultBackdate,
		Validity:     defaultValidity,
	}
}

// Pair holds a freshly generated key and its self-signed certificate.
type Pair struct {
	Key         *rsa.PrivateKey
	Certificate *x509.Certificate
	DER         []byte
}

// Generate builds an RSA key pair and a self-signed certificate for
// opts.Hostname. The certificate is its own issuer, carries a SAN entry
// for the hostname and is marked as a CA with path length zero, so the
// same file can be installed as a trust root and presented as the leaf.
func Generate(opts Options) (*Pair, error) {
	if opts.Hostname == "" {
		opts.Hostname = DefaultHostname
	}
	if opts.KeyBits == 0 {
		opts.KeyBits = defaultKeyBits
	}
	if opts.SerialNumber == 0 {
		opts.SerialNumber = defaultSerial
	}
	if opts.Validity == 0 {
		opts.Validity = defaultValidity
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	key, err := rsa.GenerateKey(rand.Reader, opts.KeyBits)
	if err != nil {
		return nil, fmt.Errorf("generating RSA key: %w", err)
	}

	notBefore := now().Add(-opts.Backdate)
	// Self-signed: CreateCertificate takes the issuer name from the
	// parent, which is the template itself.
	template := x509.Certificate{
		SerialNumber:          big.NewInt(opts.SerialNumber),
		Subject:               pkix.Name{CommonName: opts.Hostname},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(opts.Backdate + opts.Validity),
		DNSNames:              append([]string{opts.Hostname}, opts.ExtraDNSNames...),
		IPAddresses:           opts.ExtraIPs,
		BasicConstraintsValid: true,
		IsCA:                  true,
		MaxPathLen:            0,
		MaxPathLenZero:        true,
		SignatureAlgorithm:    x509.SHA256WithRSA,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("creating certificate: %w", err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("parsing generated certificate: %w", err)
	}

	return &Pair{Key: key, Certificate: cert, DER: der}, nil
}

// CertificatePEM returns the certificate in PEM encoding.
func (p *Pair) CertificatePEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: p.DER})
}

// KeyPEM returns the private key in traditional PKCS#1 PEM encoding,
// unencrypted.
func (p *Pair) KeyPEM() []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(p.Key),
	})
}
