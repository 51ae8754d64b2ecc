package manifest

import (
	"path/filepath"
	"strings"
)

// AssetType is the closed set of asset kinds a manifest may declare
type AssetType int

const (
	TypeTexture AssetType = iota
	TypeAudio
	TypeFont
	TypePlainText
)

// PakExtension is appended to every output file stem
const PakExtension = ".pak"

// DefaultFilename is the manifest looked up when no path is given
const DefaultFilename = "Content.manifest"

var typeNames = [...]string{
	TypeTexture:   "Texture",
	TypeAudio:     "Audio",
	TypeFont:      "Font",
	TypePlainText: "PlainText",
}

// AllTypes returns every asset type in declaration order
func AllTypes() []AssetType {
	return []AssetType{TypeTexture, TypeAudio, TypeFont, TypePlainText}
}

func (t AssetType) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return typeNames[t]
}

// Valid reports whether t is one of the declared asset types
func (t AssetType) Valid() bool {
	return t >= TypeTexture && t <= TypePlainText
}

// ParseAssetType resolves a manifest type string. Unknown strings resolve to
// TypePlainText with ok set to false.
func ParseAssetType(s string) (AssetType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range AllTypes() {
		if typeNames[t] == s {
			return t, true
		}
	}
	return TypePlainText, false
}

// Asset is one declared unit of content
type Asset struct {
	// Name is the virtual path of the asset, using '/' as separator
	Name string
	Type AssetType
	// TypeName is the type string exactly as written in the document
	TypeName string
	// Build is the source path relative to the manifest's root directory
	Build string
}

// Coerced reports whether the declared type was unknown and fell back to PlainText
func (a Asset) Coerced() bool {
	_, ok := ParseAssetType(a.TypeName)
	return !ok
}

// Layout returns the output subdirectory and file stem for the asset.
//
// A nested name "ui/button" yields ("ui", "button"). A flat name "icon"
// yields ("icon", "icon"): the asset gets a folder named after itself.
func (a Asset) Layout() (dir, stem string) {
	if prefix, suffix, ok := strings.Cut(a.Name, "/"); ok {
		return prefix, suffix
	}
	return a.Name, a.Name
}

// PakPath returns the output path relative to the content directory
func (a Asset) PakPath() string {
	dir, stem := a.Layout()
	return filepath.Join(dir, stem+PakExtension)
}

// Manifest is a fully validated pak manifest
type Manifest struct {
	// Path is the absolute path of the manifest document
	Path string
	// RootDirectory is the absolute directory containing the manifest
	RootDirectory string
	// OutputDirectory is relative to RootDirectory
	OutputDirectory string
	Compress        bool
	Assets          []Asset
}

// ContentDir returns the absolute root of the generated output tree
func (m *Manifest) ContentDir() string {
	return filepath.Join(m.RootDirectory, m.OutputDirectory)
}

// SourcePath returns the absolute path of an asset's build source
func (m *Manifest) SourcePath(a Asset) string {
	return filepath.Join(m.RootDirectory, filepath.FromSlash(a.Build))
}

// OutputPath returns the absolute path of an asset's .pak file
func (m *Manifest) OutputPath(a Asset) string {
	return filepath.Join(m.ContentDir(), a.PakPath())
}

// CoercedAssets returns the assets whose type fell back to PlainText
func (m *Manifest) CoercedAssets() []Asset {
	var out []Asset
	for _, a := range m.Assets {
		if a.Coerced() {
			out = append(out, a)
		}
	}
	return out
}
