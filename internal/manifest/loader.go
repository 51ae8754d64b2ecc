package manifest

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Loader loads and validates manifest files
type Loader struct {
	strictTypes bool
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithStrictTypes makes unknown asset types a validation error instead of
// falling back to PlainText
func WithStrictTypes(strict bool) LoaderOption {
	return func(l *Loader) {
		l.strictTypes = strict
	}
}

// NewLoader creates a new manifest loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Parse loads the manifest at path with default options
func Parse(path string) (*Manifest, error) {
	return NewLoader().Load(path)
}

// Load reads and parses a manifest file from the given path
func (l *Loader) Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err == nil && info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	m, err := l.LoadFromBytes(data, filepath.Ext(path), filepath.Dir(absPath))
	if err != nil {
		return nil, err
	}
	m.Path = absPath
	return m, nil
}

// LoadFromBytes parses a manifest document. rootDir is the directory that
// relative paths in the document are resolved against.
func (l *Loader) LoadFromBytes(data []byte, ext, rootDir string) (*Manifest, error) {
	doc, err := decoderFor(ext)(data)
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}

	return l.build(doc, root)
}

// build validates a decoded document and converts it into a Manifest.
// Nothing is returned unless every rule holds.
func (l *Loader) build(doc *document, root string) (*Manifest, error) {
	if doc.OutputDir == nil {
		return nil, invalid("OutputDir", "element is missing")
	}
	if doc.Compress == nil {
		return nil, invalid("Compress", "element is missing")
	}
	if doc.Content == nil {
		return nil, invalid("Content", "element is missing")
	}
	if len(*doc.Content) == 0 {
		return nil, invalid("Content", "must contain at least one Asset")
	}

	outputDir, err := cleanOutputDir(*doc.OutputDir)
	if err != nil {
		return nil, err
	}

	m := &Manifest{
		RootDirectory:   root,
		OutputDirectory: outputDir,
		Compress:        strings.EqualFold(strings.TrimSpace(*doc.Compress), "true"),
		Assets:          make([]Asset, 0, len(*doc.Content)),
	}

	seen := make(map[string]string, len(*doc.Content))
	for i, raw := range *doc.Content {
		asset, err := l.buildAsset(i, raw)
		if err != nil {
			return nil, err
		}

		pak := asset.PakPath()
		if other, ok := seen[pak]; ok {
			return nil, invalid(assetElement(i), "assets %q and %q both resolve to %s", other, asset.Name, pak)
		}
		seen[pak] = asset.Name

		m.Assets = append(m.Assets, asset)
	}

	return m, nil
}

func (l *Loader) buildAsset(i int, raw documentAsset) (Asset, error) {
	element := assetElement(i)
	if raw.Name == nil {
		return Asset{}, invalid(element, "name attribute is missing")
	}
	if raw.Type == nil {
		return Asset{}, invalid(element, "Type element is missing")
	}
	if raw.Build == nil {
		return Asset{}, invalid(element, "Build element is missing")
	}

	name, err := cleanAssetName(*raw.Name)
	if err != nil {
		return Asset{}, invalid(element, "%v", err)
	}

	typeName := strings.TrimSpace(*raw.Type)
	assetType, known := ParseAssetType(typeName)
	if !known && l.strictTypes {
		return Asset{}, invalid(element, "unknown Type %q", typeName)
	}

	return Asset{
		Name:     name,
		Type:     assetType,
		TypeName: typeName,
		Build:    strings.TrimSpace(*raw.Build),
	}, nil
}

func assetElement(i int) string {
	return fmt.Sprintf("Content/Asset[%d]", i+1)
}

// cleanAssetName normalizes separators and checks the name is a virtual path
// of at most two non-empty segments
func cleanAssetName(name string) (string, error) {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	if name == "" {
		return "", fmt.Errorf("name is empty")
	}

	segments := strings.Split(name, "/")
	if len(segments) > 2 {
		return "", fmt.Errorf("name %q nests more than one directory", name)
	}
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("name %q has an invalid path segment", name)
		}
	}
	return name, nil
}

// cleanOutputDir rejects output directories that would make a build delete
// the manifest's own directory or anything outside it
func cleanOutputDir(dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", invalid("OutputDir", "value is empty")
	}
	if filepath.IsAbs(dir) || path.IsAbs(filepath.ToSlash(dir)) {
		return "", invalid("OutputDir", "%q must be relative to the manifest", dir)
	}

	cleaned := filepath.Clean(filepath.FromSlash(dir))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", invalid("OutputDir", "%q must name a directory below the manifest", dir)
	}
	return cleaned, nil
}
