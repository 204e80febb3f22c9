package errors

import "errors"

var (
	ErrHostnameEmpty      = errors.New("hostname is empty")
	ErrHostnameInvalid    = errors.New("hostname is not a valid DNS name")
	ErrInvalidValidity    = errors.New("invalid validity in days")
	ErrOutputPathEmpty    = errors.New("output path is empty")
	ErrCertificateMissing = errors.New("certificate file not found")
	ErrKeyMissing         = errors.New("private key file not found")
	ErrKeyMismatch        = errors.New("private key does not match certificate")
	ErrProfileNotFound    = errors.New("profile file not found")
	ErrInvalidProfile     = errors.New("invalid profile format")
)
