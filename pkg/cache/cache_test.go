package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"scan-qa/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClientGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient(0)

	_, err := c.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrCacheMiss))

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryClientExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryClient(0)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Set(ctx, "forever", []byte("v"), 0))

	now = now.Add(2 * time.Minute)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "forever")
	assert.NoError(t, err)
}

func TestMemoryClientBounded(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient(2)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "c", []byte("3"), time.Hour))

	assert.Len(t, c.entries, 2)
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss, "entry closest to expiry is evicted")

	// overwriting an existing key never evicts
	require.NoError(t, c.Set(ctx, "c", []byte("4"), time.Hour))
	assert.Len(t, c.entries, 2)
}

func TestMemoryClientCopiesValues(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryClient(0)

	v := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", v, 0))
	v[0] = 'x'

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestNew(t *testing.T) {
	c, err := New(config.CacheConfig{Driver: "memory", MaxEntries: 3})
	require.NoError(t, err)
	assert.IsType(t, &MemoryClient{}, c)

	_, err = New(config.CacheConfig{Driver: "memcached"})
	assert.Error(t, err)
}
