package catalog

import (
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/go-sequel/sequel/internal/render"
)

// queryCache is the bounded LRU compiled-query cache.
// Reads go through sync.Map and an atomic access clock only, so
// concurrent Get calls never block one another; writes (insert plus
// any resulting eviction) serialize on mu, matching the spec's
// "writes are serialized; readers may observe either the pre- or
// post-insertion state."
type queryCache struct {
	capacity int
	data     sync.Map // string -> *cacheEntry
	clock    int64    // atomic logical clock, stamped on every access

	mu   sync.Mutex // guards keys only; never held during a read
	keys []string

	group singleflight.Group
}

type cacheEntry struct {
	result *render.Result
	access int64 // atomic
}

func newQueryCache(capacity int) *queryCache {
	return &queryCache{capacity: capacity}
}

func (c *queryCache) get(key string) (*render.Result, bool) {
	v, ok := c.data.Load(key)
	if !ok {
		return nil, false
	}
	e := v.(*cacheEntry)
	atomic.StoreInt64(&e.access, atomic.AddInt64(&c.clock, 1))
	return e.result, true
}

func (c *queryCache) put(key string, result *render.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.data.Load(key); !exists {
		c.keys = append(c.keys, key)
	}
	c.data.Store(key, &cacheEntry{result: result, access: atomic.AddInt64(&c.clock, 1)})
	c.evictLocked()
}

// evictLocked drops the least-recently-accessed entries until keys is
// back within capacity. Called with mu held.
func (c *queryCache) evictLocked() {
	for c.capacity > 0 && len(c.keys) > c.capacity {
		oldestIdx, oldestAccess := -1, int64(math.MaxInt64)
		for i, k := range c.keys {
			v, ok := c.data.Load(k)
			if !ok {
				oldestIdx = i
				break
			}
			a := atomic.LoadInt64(&v.(*cacheEntry).access)
			if a < oldestAccess {
				oldestAccess = a
				oldestIdx = i
			}
		}
		if oldestIdx < 0 {
			return
		}
		evicted := c.keys[oldestIdx]
		c.data.Delete(evicted)
		c.keys = append(c.keys[:oldestIdx], c.keys[oldestIdx+1:]...)
	}
}
