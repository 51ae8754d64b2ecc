package domain

import (
	"context"
	"time"
)

// Cache defines the interface for the converted-asset cache
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Clear drops every entry
	Clear(ctx context.Context) error
	// Size returns the number of entries
	Size() int64
	// Close releases cache resources
	Close() error
}
