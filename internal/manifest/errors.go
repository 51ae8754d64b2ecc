package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the manifest package
var (
	// ErrNotFound indicates the manifest file does not exist
	ErrNotFound = errors.New("manifest file not found")

	// ErrInvalid indicates the manifest is malformed or structurally invalid
	ErrInvalid = errors.New("invalid manifest")
)

// ValidationError names the manifest element that failed validation
type ValidationError struct {
	Element string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalid, e.Element, e.Message)
}

// Unwrap lets errors.Is match ErrInvalid
func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

func invalid(element, format string, args ...any) *ValidationError {
	return &ValidationError{
		Element: element,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsManifestError reports whether err is a manifest load or validation failure
func IsManifestError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalid)
}
