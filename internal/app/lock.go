package app

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/quantmind-br/xnpak/internal/domain"
	"github.com/quantmind-br/xnpak/internal/manifest"
)

// LockFileName is created next to the manifest while an operation runs
const LockFileName = ".xnpak.lock"

// acquireLock takes the per-manifest build lock without blocking
func acquireLock(m *manifest.Manifest) (func(), error) {
	path := filepath.Join(m.RootDirectory, LockFileName)
	lock := flock.New(path)

	locked, err := lock.TryLock()
	if err != nil {
		return nil, domain.NewOutputError("lock", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", domain.ErrBuildLocked, path)
	}

	return func() { _ = lock.Unlock() }, nil
}
