package vcard

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrTypeNotAllowed indicates a phone or address type outside the configured allow-list.
	ErrTypeNotAllowed = errors.New("type not allowed")

	// ErrInvalidPhoneLength indicates a phone number that is not 7, 10, or 11 digits long.
	ErrInvalidPhoneLength = errors.New("invalid phone length")

	// ErrInvalidEmail indicates a value that is not shaped like an email address.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidURL indicates a value that is not shaped like a URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrLineBreak indicates a single-line value that contains CR or LF.
	ErrLineBreak = errors.New("line break not allowed")

	// ErrUnsupportedItemType indicates an item type that is not configured or has no handler.
	ErrUnsupportedItemType = errors.New("unsupported item type")

	// ErrInvalidItemValue indicates an item value rejected by its item type's validator.
	ErrInvalidItemValue = errors.New("invalid value for item type")

	// ErrInvalidRevision indicates a revision timestamp that could not be parsed.
	ErrInvalidRevision = errors.New("invalid revision timestamp")

	// ErrInvalidOption indicates an unknown option key or a value of the wrong shape.
	ErrInvalidOption = errors.New("invalid option")

	// ErrInvalidTag indicates a vcard struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrMissingFetcher indicates SetImage was called on a builder without a Fetcher.
	ErrMissingFetcher = errors.New("missing image fetcher")

	// ErrFetch indicates the image fetcher failed.
	ErrFetch = errors.New("image fetch failed")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// ValidationError reports a field rejected at the point it was added.
// It wraps a sentinel error with the field and offending value.
type ValidationError struct {
	Err   error  // Underlying sentinel error (ErrTypeNotAllowed, ErrInvalidEmail, etc.)
	Field string // Field that was being added (phone, address, email, url, item, image)
	Value string // Offending value
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s %q", e.Field, e.Err.Error(), e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FormatError reports a value that could not be normalized into vCard form.
type FormatError struct {
	Err   error  // Underlying sentinel error (ErrInvalidPhoneLength, ErrInvalidRevision)
	Field string // Field being formatted
	Value string // Offending value
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Field, e.Err.Error(), e.Value)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Err   error  // Underlying sentinel error (ErrInvalidOption, ErrInvalidTag)
	Key   string // Option key or struct field that triggered the error
	Cause string // Optional detail
}

func (e *ConfigError) Error() string {
	if e.Key != "" && e.Cause != "" {
		return fmt.Sprintf("%s %q: %s", e.Err.Error(), e.Key, e.Cause)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %q", e.Err.Error(), e.Key)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newValidationError creates a ValidationError for a rejected field.
func newValidationError(sentinel error, field, value string) error {
	return &ValidationError{
		Err:   sentinel,
		Field: field,
		Value: value,
	}
}

// newFormatError creates a FormatError for a value that could not be normalized.
func newFormatError(sentinel error, field, value string) error {
	return &FormatError{
		Err:   sentinel,
		Field: field,
		Value: value,
	}
}

// newConfigError creates a ConfigError for a bad option or tag.
func newConfigError(sentinel error, key, cause string) error {
	return &ConfigError{
		Err:   sentinel,
		Key:   key,
		Cause: cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
