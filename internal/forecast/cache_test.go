package forecast

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasense/hydrolens/pkg/models"
)

func cachedResult(region string) *models.ForecastResult {
	return &models.ForecastResult{
		Success:  true,
		Trend:    models.TrendStable,
		Metadata: &models.ForecastMetadata{Region: region},
	}
}

func TestCacheHit(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewCache(10, clock, nil)

	key := Key("North Coast", map[string]interface{}{"horizon_days": 7})
	cache.Set(key, cachedResult("North Coast"))

	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "North Coast", got.Metadata.Region)
	assert.Equal(t, 1, cache.Size())
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	cache := NewCache(10, clockwork.NewFakeClock(), nil)

	got, ok := cache.Get("region=nowhere")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewCache(10, clock, nil)

	key := Key("North Coast", nil)
	cache.Set(key, cachedResult("North Coast"))

	// Still fresh just inside the TTL.
	clock.Advance(9 * time.Minute)
	_, ok := cache.Get(key)
	assert.True(t, ok)

	// Expired entries are evicted by the failed lookup.
	clock.Advance(2 * time.Minute)
	got, ok := cache.Get(key)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Zero(t, cache.Size())
}

func TestCacheSetResetsAge(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewCache(10, clock, nil)

	key := Key("South Bay", nil)
	cache.Set(key, cachedResult("South Bay"))

	clock.Advance(8 * time.Minute)
	cache.Set(key, cachedResult("South Bay"))
	assert.Equal(t, 1, cache.Size())

	// 8 + 8 minutes since the first Set, but only 8 since the overwrite.
	clock.Advance(8 * time.Minute)
	_, ok := cache.Get(key)
	assert.True(t, ok)
}

func TestCacheSizeCountsUnsweptEntries(t *testing.T) {
	clock := clockwork.NewFakeClock()
	cache := NewCache(10, clock, nil)

	cache.Set("a", cachedResult("a"))
	cache.Set("b", cachedResult("b"))
	clock.Advance(11 * time.Minute)

	// Expired but never looked up: still counted.
	assert.Equal(t, 2, cache.Size())

	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Size())
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(10, clockwork.NewFakeClock(), nil)

	cache.Set("a", cachedResult("a"))
	cache.Set("b", cachedResult("b"))
	require.Equal(t, 2, cache.Size())

	cache.Clear()
	assert.Zero(t, cache.Size())
	_, ok := cache.Get("a")
	assert.False(t, ok)
}

func TestKeyIsOrderIndependent(t *testing.T) {
	a := Key("North Coast", map[string]interface{}{"horizon_days": 7, "window": 30})
	b := Key("North Coast", map[string]interface{}{"window": 30, "horizon_days": 7})

	assert.Equal(t, a, b)
	assert.Equal(t, "region=North Coast|horizon_days=7|window=30", a)
}

func TestKeyDistinguishesRegionsAndParams(t *testing.T) {
	base := Key("North Coast", map[string]interface{}{"horizon_days": 7})

	assert.NotEqual(t, base, Key("South Bay", map[string]interface{}{"horizon_days": 7}))
	assert.NotEqual(t, base, Key("North Coast", map[string]interface{}{"horizon_days": 14}))
	assert.Equal(t, "region=North Coast", Key("North Coast", nil))
}
