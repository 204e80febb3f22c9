package validation

import (
	"strings"
	"testing"

	atverrors "atvcert/internal/errors"
)

func TestValidateHostname(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		wantErr  error
	}{
		{
			name:     "default hostname",
			hostname: "atvremote",
			wantErr:  nil,
		},
		{
			name:     "multi-label hostname",
			hostname: "dev.example.local",
			wantErr:  nil,
		},
		{
			name:     "hostname with digits and hyphens",
			hostname: "apple-tv-4k",
			wantErr:  nil,
		},
		{
			name:     "empty",
			hostname: "",
			wantErr:  atverrors.ErrHostnameEmpty,
		},
		{
			name:     "whitespace only",
			hostname: "   ",
			wantErr:  atverrors.ErrHostnameEmpty,
		},
		{
			name:     "leading hyphen",
			hostname: "-atvremote",
			wantErr:  atverrors.ErrHostnameInvalid,
		},
		{
			name:     "embedded space",
			hostname: "atv remote",
			wantErr:  atverrors.ErrHostnameInvalid,
		},
		{
			name:     "ip address",
			hostname: "192.168.1.10",
			wantErr:  atverrors.ErrHostnameInvalid,
		},
		{
			name:     "empty label",
			hostname: "atv..remote",
			wantErr:  atverrors.ErrHostnameInvalid,
		},
		{
			name:     "label too long",
			hostname: strings.Repeat("a", 64),
			wantErr:  atverrors.ErrHostnameInvalid,
		},
		{
			name:     "name too long",
			hostname: strings.Repeat("abcd.", 60) + "local",
			wantErr:  atverrors.ErrHostnameInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHostname(tt.hostname)
			if err != tt.wantErr {
				t.Errorf("ValidateHostname(%q) error = %v, wantErr %v", tt.hostname, err, tt.wantErr)
			}
		})
	}
}

func TestValidateValidityDays(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		wantErr error
	}{
		{"one day", 1, nil},
		{"ten years", 3650, nil},
		{"zero", 0, atverrors.ErrInvalidValidity},
		{"negative", -5, atverrors.ErrInvalidValidity},
		{"beyond cap", 4000, atverrors.ErrInvalidValidity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateValidityDays(tt.days); err != tt.wantErr {
				t.Errorf("ValidateValidityDays(%d) error = %v, wantErr %v", tt.days, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("/tmp/cert.pem"); err != nil {
		t.Errorf("unexpected error for valid path: %v", err)
	}
	if err := ValidateOutputPath("  "); err != atverrors.ErrOutputPathEmpty {
		t.Errorf("expected ErrOutputPathEmpty, got %v", err)
	}
}
