package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/quantmind-br/xnpak/internal/manifest"
)

// KeyVersion is bumped whenever importer output changes for the same input,
// so stale entries stop matching
const KeyVersion = "v1"

// Key derives the cache key for converting source bytes as assetType.
// The key depends only on content, never on file paths, so renamed or
// duplicated sources share an entry.
func Key(assetType manifest.AssetType, source []byte) string {
	hash := sha256.Sum256(source)
	return KeyVersion + ":" + assetType.String() + ":" + hex.EncodeToString(hash[:])
}
