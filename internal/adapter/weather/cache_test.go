package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchardwatch/leaf-risk-service/internal/domain"
	"github.com/orchardwatch/leaf-risk-service/internal/observability"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) FetchReading(_ context.Context, lat, _ float64) (domain.RawReading, error) {
	p.calls++
	if p.err != nil {
		return domain.RawReading{}, p.err
	}
	return domain.RawReading{Temperature: &lat}, nil
}

func newCachedProvider(inner domain.ClimateProvider, size int, ttl time.Duration, clock clockwork.Clock) *CachedProvider {
	c := NewCachedProvider(inner, size, ttl, observability.NewMetricsForTesting())
	c.clock = clock
	return c
}

func TestCachedProviderServesRepeatLookups(t *testing.T) {
	inner := &countingProvider{}
	provider := newCachedProvider(inner, 10, time.Minute, clockwork.NewFakeClock())

	_, err := provider.FetchReading(context.Background(), 44.1, -121.3)
	require.NoError(t, err)
	_, err = provider.FetchReading(context.Background(), 44.1, -121.3)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedProviderSnapsToGridCell(t *testing.T) {
	inner := &countingProvider{}
	provider := newCachedProvider(inner, 10, time.Minute, clockwork.NewFakeClock())

	// Both coordinates round to cell 44.100,-121.300.
	_, err := provider.FetchReading(context.Background(), 44.1001, -121.3002)
	require.NoError(t, err)
	_, err = provider.FetchReading(context.Background(), 44.0999, -121.2998)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedProviderExpiresEntries(t *testing.T) {
	inner := &countingProvider{}
	clock := clockwork.NewFakeClock()
	provider := newCachedProvider(inner, 10, time.Minute, clock)

	_, err := provider.FetchReading(context.Background(), 44.1, -121.3)
	require.NoError(t, err)

	clock.Advance(time.Minute + time.Second)

	_, err = provider.FetchReading(context.Background(), 44.1, -121.3)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{err: errors.New("gateway timeout")}
	provider := newCachedProvider(inner, 10, time.Minute, clockwork.NewFakeClock())

	_, err := provider.FetchReading(context.Background(), 44.1, -121.3)
	require.Error(t, err)

	inner.err = nil
	_, err = provider.FetchReading(context.Background(), 44.1, -121.3)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestLRUCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := newLRUCache(2)
	later := time.Now().Add(time.Hour)

	cache.put("a", cached{expiresAt: later})
	cache.put("b", cached{expiresAt: later})

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := cache.get("a")
	require.True(t, ok)

	cache.put("c", cached{expiresAt: later})

	_, ok = cache.get("a")
	assert.True(t, ok)
	_, ok = cache.get("b")
	assert.False(t, ok)
	_, ok = cache.get("c")
	assert.True(t, ok)
}
