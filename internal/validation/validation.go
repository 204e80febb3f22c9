package validation

import (
	"net"
	"strings"

	atverrors "atvcert/internal/errors"
)

// maxDNSNameLength is the RFC 1035 limit for a full domain name.
const maxDNSNameLength = 253

// ValidateHostname checks that the hostname can appear as a SAN DNSName:
// non-empty, within length limits, and made of LDH labels. A bare IP
// address is rejected; it belongs in the IP SAN list instead.
func ValidateHostname(hostname string) error {
	trimmed := strings.TrimSpace(hostname)
	if trimmed == "" {
		return atverrors.ErrHostnameEmpty
	}
	if len(trimmed) > maxDNSNameLength {
		return atverrors.ErrHostnameInvalid
	}
	if net.ParseIP(trimmed) != nil {
		return atverrors.ErrHostnameInvalid
	}
	for _, label := range strings.Split(trimmed, ".") {
		if !validLabel(label) {
			return atverrors.ErrHostnameInvalid
		}
	}
	return nil
}

func validLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}

// ValidateValidityDays bounds the certificate lifetime to something a
// development certificate can reasonably carry.
func ValidateValidityDays(days int) error {
	if days < 1 || days > 3660 {
		return atverrors.ErrInvalidValidity
	}
	return nil
}

// ValidateOutputPath rejects empty or whitespace-only file paths.
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return atverrors.ErrOutputPathEmpty
	}
	return nil
}
