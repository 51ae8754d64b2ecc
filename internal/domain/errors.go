package domain

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrImportIO indicates an asset source file could not be read
	ErrImportIO = errors.New("asset source unreadable")

	// ErrUnsupportedEncoding indicates the source is not in a format the importer accepts
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrNotImplemented marks declared features that have no behavior yet
	// (font import, pak compression)
	ErrNotImplemented = errors.New("not implemented")

	// ErrOutputIO indicates the output tree could not be deleted, created, or written
	ErrOutputIO = errors.New("output write failed")

	// ErrBuildLocked indicates another process holds the build lock for the manifest
	ErrBuildLocked = errors.New("another build is running for this manifest")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")
)

// ImportError represents a failure while converting one source file
type ImportError struct {
	Type string
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s %s: %v", e.Type, e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError
func NewImportError(assetType, path string, err error) *ImportError {
	return &ImportError{
		Type: assetType,
		Path: path,
		Err:  err,
	}
}

// OutputError represents a filesystem failure on the output tree.
// It always matches ErrOutputIO through errors.Is.
type OutputError struct {
	Op   string
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OutputError) Unwrap() []error {
	return []error{ErrOutputIO, e.Err}
}

// NewOutputError creates a new OutputError
func NewOutputError(op, path string, err error) *OutputError {
	return &OutputError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// AssetError identifies which asset aborted a build
type AssetError struct {
	Index int // 1-based position in the manifest
	Name  string
	Err   error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}

// NewAssetError creates a new AssetError
func NewAssetError(index int, name string, err error) *AssetError {
	return &AssetError{
		Index: index,
		Name:  name,
		Err:   err,
	}
}

// Exit codes returned by the CLI
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitManifest    = 2
	ExitImport      = 3
	ExitOutput      = 4
	ExitInterrupted = 130
)

// ExitCode maps an error to the process exit code. Manifest errors are
// classified by the caller through isManifestErr since this package does
// not depend on the manifest package.
func ExitCode(err error, isManifestErr func(error) bool) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case isManifestErr != nil && isManifestErr(err):
		return ExitManifest
	case errors.Is(err, ErrImportIO),
		errors.Is(err, ErrUnsupportedEncoding),
		errors.Is(err, ErrNotImplemented):
		return ExitImport
	case errors.Is(err, ErrOutputIO):
		return ExitOutput
	default:
		return ExitFailure
	}
}

// IsCanceled reports whether err stems from context cancellation
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
