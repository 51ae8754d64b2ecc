package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/quantmind-br/xnpak/internal/domain"
	"github.com/quantmind-br/xnpak/internal/importer"
	"github.com/quantmind-br/xnpak/internal/manifest"
	"github.com/quantmind-br/xnpak/internal/utils"
)

// CachedConverter serves conversions from a cache keyed by source content,
// falling back to the wrapped converter on a miss. Failed conversions are
// never cached.
type CachedConverter struct {
	next   importer.Converter
	cache  domain.Cache
	ttl    time.Duration
	logger *utils.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

var _ importer.Converter = (*CachedConverter)(nil)

// NewCachedConverter wraps next with cache lookups
func NewCachedConverter(next importer.Converter, cache domain.Cache, ttl time.Duration, logger *utils.Logger) *CachedConverter {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &CachedConverter{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Convert returns cached bytes for an unchanged source or converts and caches it
func (c *CachedConverter) Convert(ctx context.Context, assetType manifest.AssetType, sourcePath string) ([]byte, error) {
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, domain.NewImportError(assetType.String(), sourcePath, fmt.Errorf("%w: %v", domain.ErrImportIO, err))
	}

	key := Key(assetType, source)
	data, err := c.cache.Get(ctx, key)
	if err == nil {
		c.hits.Add(1)
		c.logger.Debug().Str("source", sourcePath).Msg("Import cache hit")
		return data, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		c.logger.Warn().Err(err).Str("source", sourcePath).Msg("Import cache read failed, converting")
	}
	c.misses.Add(1)

	data, err = c.next.Convert(ctx, assetType, sourcePath)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("source", sourcePath).Msg("Import cache write failed")
	}
	return data, nil
}

// Stats returns the hit and miss counts so far
func (c *CachedConverter) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
