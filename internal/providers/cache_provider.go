package providers

import (
	"time"

	"informant/internal/structures"

	"github.com/coocood/freecache"
)

// CacheProviderInterface stores serialized API response bodies. Callers put the store
// generation in the key, so entries from an older history are never read again.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// ResponseCache keeps response bodies in freecache. Entries outlive at most one reload
// interval; by then a reload has usually moved the generation on.
type ResponseCache struct {
	bodies *freecache.Cache
	ttl    int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Response cache disabled")
		return &noopCache{}
	}

	ttl := responseTTL(conf.Workrave.ReloadInterval)
	logger.Infof(TypeApp, "Response cache: %dMB, entries expire after %ds", conf.Cache.Size, ttl)

	return &ResponseCache{
		bodies: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:    ttl,
	}
}

// responseTTL is the reload interval in whole seconds plus one, never below two.
func responseTTL(reloadInterval time.Duration) int {
	return max(int(reloadInterval.Seconds()), 1) + 1
}

func (c *ResponseCache) Get(key string) ([]byte, bool) {
	body, err := c.bodies.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *ResponseCache) Set(key string, body []byte) {
	_ = c.bodies.Set([]byte(key), body, c.ttl)
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool) { return nil, false }
func (n *noopCache) Set(_ string, _ []byte)      {}
