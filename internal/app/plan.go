package app

import (
	"github.com/quantmind-br/xnpak/internal/manifest"
)

// PlannedAsset is an asset with its paths resolved against a manifest
type PlannedAsset struct {
	Index   int // 1-based position in the manifest
	Name    string
	Type    manifest.AssetType
	Coerced bool
	Source  string
	Output  string
	PakPath string
}

// Plan resolves the source and output path of every asset in declaration
// order. It touches neither the filesystem nor the cache.
func Plan(m *manifest.Manifest) []PlannedAsset {
	plan := make([]PlannedAsset, len(m.Assets))
	for i, a := range m.Assets {
		plan[i] = PlannedAsset{
			Index:   i + 1,
			Name:    a.Name,
			Type:    a.Type,
			Coerced: a.Coerced(),
			Source:  m.SourcePath(a),
			Output:  m.OutputPath(a),
			PakPath: a.PakPath(),
		}
	}
	return plan
}
