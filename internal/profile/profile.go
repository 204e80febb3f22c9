// Package profile reads certificate requirement files. A profile is a
// small YAML document overriding the built-in defaults, e.g.:
//
//	hostname: atvremote
//	extra_sans:
//	  - localhost
//	ips:
//	  - 127.0.0.1
//	days: 365
//	cert_file: /etc/atvcert/cert.pem
//	key_file: /etc/atvcert/key.pem
package profile

import (
	"fmt"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"atvcert/internal/certstore"
	atverrors "atvcert/internal/errors"
	"atvcert/internal/selfsigned"
)

// Profile describes one certificate requirement.
type Profile struct {
	Hostname  string   `yaml:"hostname"`
	ExtraSANs []string `yaml:"extra_sans,omitempty"`
	IPs       []string `yaml:"ips,omitempty"`
	Days      int      `yaml:"days,omitempty"`
	CertFile  string   `yaml:"cert_file,omitempty"`
	KeyFile   string   `yaml:"key_file,omitempty"`
}

// FromFile loads a profile from a YAML file.
func FromFile(file string) (*Profile, error) {
	cont, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, atverrors.ErrProfileNotFound
		}
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(cont, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", atverrors.ErrInvalidProfile, err)
	}

	return &p, nil
}

// Apply overlays the profile onto generation options, returning the
// merged result. Unset profile fields leave the options untouched.
func (p *Profile) Apply(opts selfsigned.Options) (selfsigned.Options, error) {
	if p.Hostname != "" {
		opts.Hostname = p.Hostname
	}
	opts.ExtraDNSNames = append(opts.ExtraDNSNames, p.ExtraSANs...)
	for _, raw := range p.IPs {
		ip := net.ParseIP(raw)
		if ip == nil {
			return opts, fmt.Errorf("%w: bad IP address %q", atverrors.ErrInvalidProfile, raw)
		}
		opts.ExtraIPs = append(opts.ExtraIPs, ip)
	}
	if p.Days > 0 {
		opts.Validity = time.Duration(p.Days) * 24 * time.Hour
	}
	return opts, nil
}

// Store returns the output store for this profile, falling back to the
// given store for paths the profile leaves unset.
func (p *Profile) Store(fallback certstore.Store) certstore.Store {
	store := fallback
	if p.CertFile != "" {
		store.CertFile = p.CertFile
	}
	if p.KeyFile != "" {
		store.KeyFile = p.KeyFile
	}
	return store
}
