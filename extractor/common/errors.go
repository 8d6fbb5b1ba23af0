package common

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedBackend is returned for an unknown extractor.backend value.
	ErrUnsupportedBackend = errors.New("unsupported pdf backend")
	// ErrLicenseRequired is returned when the unipdf backend has no license key.
	ErrLicenseRequired = errors.New("unipdf backend requires extractor.unipdf_license_key")

	errEmptyAmount = errors.New("empty amount")
)

// ExtractionError means the document as a whole could not be read.
type ExtractionError struct {
	Filename string
	Backend  string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Filename == "" {
		return fmt.Sprintf("%s: could not extract text: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("%s: could not extract text from %s: %v", e.Backend, e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ParseError is returned when an amount token is not a number.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse amount '%s': %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError reports a configuration value that cannot be used.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s='%s': %v", e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
