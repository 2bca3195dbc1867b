// This file provides the process-wide cache of NTT plans.

package ntt

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/agbru/bigntt/internal/metrics"
	"github.com/agbru/bigntt/internal/modular"
)

// ─────────────────────────────────────────────────────────────────────────────
// Plan Cache
// ─────────────────────────────────────────────────────────────────────────────

// DefaultCacheEntries bounds the number of plans kept alive. A plan of size
// N holds 2N words of tables, so the working set is dominated by the few
// largest sizes in use.
const DefaultCacheEntries = 32

// planKey identifies a plan in the cache.
type planKey struct {
	size int
	kind modular.Kind
}

func (k planKey) String() string { return fmt.Sprintf("%d/%s", k.size, k.kind) }

// PlanCache memoizes plans by (size, modulus). Concurrent requests for a
// missing plan share a single construction.
type PlanCache struct {
	plans  *lru.Cache
	group  singleflight.Group
	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats is a point-in-time view of cache activity.
type CacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// NewPlanCache creates a cache holding at most entries plans.
func NewPlanCache(entries int) (*PlanCache, error) {
	plans, err := lru.New(entries)
	if err != nil {
		return nil, err
	}
	return &PlanCache{plans: plans}, nil
}

// Get returns the cached plan for (size, kind), building it on first use.
func (c *PlanCache) Get(size int, kind modular.Kind) (*Plan, error) {
	key := planKey{size: size, kind: kind}
	if v, ok := c.plans.Get(key); ok {
		c.hits.Add(1)
		metrics.PlanCacheLookups.WithLabelValues("hit").Inc()
		return v.(*Plan), nil
	}
	c.misses.Add(1)
	metrics.PlanCacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		if v, ok := c.plans.Get(key); ok {
			return v, nil
		}
		start := time.Now()
		p, err := NewPlan(size, kind)
		if err != nil {
			return nil, err
		}
		metrics.PlanBuildDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
		c.plans.Add(key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Plan), nil
}

// Stats returns the current cache statistics.
func (c *PlanCache) Stats() CacheStats {
	return CacheStats{
		Entries: c.plans.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// Purge drops every cached plan.
func (c *PlanCache) Purge() {
	c.plans.Purge()
}

var (
	globalCache     *PlanCache
	globalCacheOnce sync.Once
)

// Cache returns the process-wide plan cache.
func Cache() *PlanCache {
	globalCacheOnce.Do(func() {
		c, err := NewPlanCache(DefaultCacheEntries)
		if err != nil {
			panic(err)
		}
		globalCache = c
	})
	return globalCache
}

// Get returns the process-wide plan for (size, kind).
func Get(size int, kind modular.Kind) (*Plan, error) {
	return Cache().Get(size, kind)
}
