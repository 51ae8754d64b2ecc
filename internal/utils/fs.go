package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/xnpak/internal/domain"
)

// EnsureDir ensures the parent directory of path exists, creating it if necessary
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.NewOutputError("mkdir", dir, err)
	}
	return nil
}

// ResetDir removes dir and everything under it, then recreates it empty
func ResetDir(dir string) error {
	if err := RemoveDir(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.NewOutputError("mkdir", dir, err)
	}
	return nil
}

// ErrNotDir is returned when a path that should be a directory is something else
var ErrNotDir = errors.New("exists and is not a directory")

// RemoveDir removes dir recursively. A missing directory is not an error;
// a file or symlink at dir is refused and left in place.
func RemoveDir(dir string) error {
	info, err := os.Lstat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return domain.NewOutputError("remove", dir, err)
	}
	if !info.IsDir() {
		return domain.NewOutputError("remove", dir, ErrNotDir)
	}
	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.NewOutputError("remove", dir, err)
	}
	return nil
}

// WriteFile writes data to path, creating parent directories as needed
func WriteFile(path string, data []byte) error {
	if err := EnsureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return domain.NewOutputError("write", path, err)
	}
	return nil
}

// DirExists reports whether path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// DirSize returns the total size in bytes of regular files under dir
func DirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	return total, err
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
