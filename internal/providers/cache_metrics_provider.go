package providers

import "informant/internal/structures"

// instrumentedCache counts response cache hits and misses.
type instrumentedCache struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if !ok {
		c.metrics.IncCacheMisses()
		return nil, false
	}
	c.metrics.IncCacheHits()
	return val, true
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// NewInstrumentedCacheProvider builds the API response cache. A disabled cache is
// returned unwrapped so every request is not counted as a miss.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		return inner
	}
	return &instrumentedCache{inner: inner, metrics: metrics}
}
