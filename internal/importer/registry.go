// Package importer converts authored source files into the raw byte
// encodings stored in .pak files.
package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/quantmind-br/xnpak/internal/domain"
	"github.com/quantmind-br/xnpak/internal/manifest"
)

// Converter turns a source file into pak bytes for the given asset type
type Converter interface {
	Convert(ctx context.Context, assetType manifest.AssetType, sourcePath string) ([]byte, error)
}

// Registry dispatches conversions to the importer for each asset type.
// It holds no state and is safe for concurrent use.
type Registry struct{}

var _ Converter = (*Registry)(nil)

// NewRegistry creates the importer registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Convert runs the importer for assetType against the source file
func (r *Registry) Convert(ctx context.Context, assetType manifest.AssetType, sourcePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch assetType {
	case manifest.TypeTexture:
		data, err = ImportTexture(sourcePath)
	case manifest.TypeAudio:
		data, err = ImportAudio(sourcePath)
	case manifest.TypeFont:
		err = domain.ErrNotImplemented
	case manifest.TypePlainText:
		data, err = ImportPlainText(sourcePath)
	default:
		err = fmt.Errorf("%w: asset type %d", domain.ErrUnsupportedEncoding, int(assetType))
	}

	if err != nil {
		return nil, domain.NewImportError(assetType.String(), sourcePath, err)
	}
	return data, nil
}

// Describe returns a short description of the bytes produced for assetType
func Describe(assetType manifest.AssetType) string {
	switch assetType {
	case manifest.TypeTexture:
		return "raw RGBA8 pixels"
	case manifest.TypeAudio:
		return "raw float32 PCM"
	case manifest.TypeFont:
		return "not implemented"
	case manifest.TypePlainText:
		return "source bytes"
	default:
		return "unknown"
	}
}

// ImportPlainText returns the source file unchanged
func ImportPlainText(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportIO, err)
	}
	return data, nil
}
