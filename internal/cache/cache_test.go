package cache

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/xnpak/internal/domain"
	"github.com/quantmind-br/xnpak/internal/manifest"
)

func newMemoryCache(t *testing.T) *BadgerCache {
	t.Helper()
	c, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestBadgerCache_SetGet(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()
	value := bytes.Repeat([]byte{0x10, 0x20, 0x30, 0xff}, 4096)

	require.NoError(t, c.Set(ctx, "k", value, time.Hour))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, value, got)
	assert.Equal(t, int64(1), c.Size())
}

func TestBadgerCache_EmptyValue(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "empty", []byte{}, 0))

	got, err := c.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBadgerCache_Miss(t *testing.T) {
	c := newMemoryCache(t)

	_, err := c.Get(context.Background(), "absent")

	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestBadgerCache_Clear(t *testing.T) {
	c := newMemoryCache(t)
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, c.Set(ctx, k, []byte(k), 0))
	}
	require.Equal(t, int64(3), c.Size())

	require.NoError(t, c.Clear(ctx))

	assert.Equal(t, int64(0), c.Size())
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestBadgerCache_Persistent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	ctx := context.Background()

	c, err := NewBadgerCache(Options{Directory: dir})
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "k", []byte("survives"), time.Hour))
	require.NoError(t, c.Close())

	reopened, err := NewBadgerCache(Options{Directory: dir})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "survives", string(got))
}

func TestBadgerCache_CloseTwice(t *testing.T) {
	c, err := NewBadgerCache(Options{InMemory: true})
	require.NoError(t, err)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestKey(t *testing.T) {
	png := []byte("png bytes")

	k := Key(manifest.TypeTexture, png)
	assert.Equal(t, k, Key(manifest.TypeTexture, []byte("png bytes")))
	assert.Regexp(t, `^v1:Texture:[0-9a-f]{64}$`, k)

	assert.NotEqual(t, k, Key(manifest.TypePlainText, png), "type is part of the key")
	assert.NotEqual(t, k, Key(manifest.TypeTexture, []byte("png bytez")))
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.InMemory)
	assert.False(t, opts.Logger)
	assert.Empty(t, opts.Directory)
}
