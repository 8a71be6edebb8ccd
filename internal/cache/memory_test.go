package cache

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "k", "v", time.Minute))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	m := newMemory(clock)

	require.NoError(t, m.Set(ctx, "k", "v", time.Minute))

	clock.Advance(59 * time.Second)
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	m := newMemory(clock)

	require.NoError(t, m.Set(ctx, "k", "v", 0))
	clock.Advance(1000 * time.Hour)
	_, ok, _ := m.Get(ctx, "k")
	assert.True(t, ok)
}

func TestMemoryOverwriteResetsTTL(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	m := newMemory(clock)

	require.NoError(t, m.Set(ctx, "k", "old", time.Minute))
	clock.Advance(50 * time.Second)
	require.NoError(t, m.Set(ctx, "k", "new", time.Minute))
	clock.Advance(50 * time.Second)

	v, ok, _ := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}
