// Package marketdata builds and caches the dashboard's market data
// snapshot: the aggregation service resolves a refresh batch into a
// complete snapshot, the client talks to a remote aggregation endpoint,
// and the cache holds the last successfully resolved snapshot.
package marketdata

import (
	"sync"

	"carteira/internal/models"
)

// Cache holds the last successful market snapshot. Replacement is
// atomic and wholesale; there is no merge path. The refresh
// orchestrator is the only writer.
type Cache struct {
	mu   sync.RWMutex
	snap *models.MarketSnapshot
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Replace installs a new snapshot.
func (c *Cache) Replace(snap *models.MarketSnapshot) {
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
}

// Clear drops the snapshot. Used when an explicit refresh fails: stale
// data must not masquerade as fresh data the user just asked for.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

// Snapshot returns the current snapshot, or nil before the first
// successful refresh. Readers must treat it as immutable.
func (c *Cache) Snapshot() *models.MarketSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}
