package forecast

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aquasense/hydrolens/internal/observability/metrics"
	"github.com/aquasense/hydrolens/pkg/models"
)

// Cache memoizes forecast results by region and parameters with a TTL. It
// is capacity-unbounded and mutex-guarded, so a single instance may be
// shared across goroutines. Callers construct and own their instance; there
// is no package-level cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *metrics.Metrics
}

type cacheEntry struct {
	result   *models.ForecastResult
	storedAt time.Time
}

// NewCache creates a forecast cache whose entries expire ttlMinutes after
// being set. A nil clock falls back to the wall clock; metrics may be nil.
func NewCache(ttlMinutes int, clock clockwork.Clock, m *metrics.Metrics) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     time.Duration(ttlMinutes) * time.Minute,
		clock:   clock,
		metrics: m,
	}
}

// Key builds a deterministic cache key from a region and a parameter map.
// Parameter keys are sorted before serialization, so two maps with equal
// contents always produce equal keys regardless of insertion order.
func Key(region string, params map[string]interface{}) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, "region="+region)

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, params[name]))
	}

	return strings.Join(parts, "|")
}

// Get returns the cached result for key, or (nil, false) when the key is
// absent or its entry has outlived the TTL. Expired entries are evicted on
// this check.
func (c *Cache) Get(key string) (*models.ForecastResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.metrics.CacheMiss()
		return nil, false
	}
	if c.clock.Now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		c.metrics.CacheMiss()
		c.metrics.SetCacheEntries(len(c.entries))
		return nil, false
	}

	c.metrics.CacheHit()
	return entry.result, true
}

// Set stores a result under key, overwriting any existing entry and
// resetting its age.
func (c *Cache) Set(key string, result *models.ForecastResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{result: result, storedAt: c.clock.Now()}
	c.metrics.SetCacheEntries(len(c.entries))
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
	c.metrics.SetCacheEntries(0)
}

// Size reports the current entry count, including entries that have expired
// but not yet been evicted by a Get.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
