package cache

import (
	"time"

	"github.com/quantmind-br/xnpak/internal/domain"
)

// Ensure BadgerCache implements domain.Cache
var _ domain.Cache = (*BadgerCache)(nil)

// DefaultTTL is how long a converted asset stays cached
const DefaultTTL = 7 * 24 * time.Hour

// Options contains cache configuration options
type Options struct {
	Directory string
	InMemory  bool
	Logger    bool
}

// DefaultOptions returns default cache options
func DefaultOptions() Options {
	return Options{
		Directory: "",
		InMemory:  false,
		Logger:    false,
	}
}

// Stats counts cache lookups made by a CachedConverter
type Stats struct {
	Hits   int64
	Misses int64
}
