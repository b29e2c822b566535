package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cacheMetricsTestMetrics struct {
	hits   int
	misses int
}

func (m *cacheMetricsTestMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *cacheMetricsTestMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *cacheMetricsTestMetrics) IncCacheHits()                                    { m.hits++ }
func (m *cacheMetricsTestMetrics) IncCacheMisses()                                  { m.misses++ }
func (m *cacheMetricsTestMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *cacheMetricsTestMetrics) IncLoadsTotal(_ string)                           {}
func (m *cacheMetricsTestMetrics) ObserveLoadDuration(_ time.Duration)              {}

type cacheMetricsTestInner struct {
	data map[string][]byte
}

func (c *cacheMetricsTestInner) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *cacheMetricsTestInner) Set(key string, value []byte) {
	c.data[key] = value
}

func TestInstrumentedCache_Hit(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"days:3": []byte("[]")}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &instrumentedCache{inner: inner, metrics: metrics}

	val, ok := cache.Get("days:3")
	assert.True(t, ok)
	assert.Equal(t, []byte("[]"), val)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 0, metrics.misses)
}

func TestInstrumentedCache_Miss(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &instrumentedCache{inner: inner, metrics: metrics}

	val, ok := cache.Get("fields:3")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, 0, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestInstrumentedCache_SetDelegates(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &instrumentedCache{inner: inner, metrics: metrics}

	cache.Set("gaps:3", []byte(`{"missing":[]}`))

	val, ok := inner.Get("gaps:3")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"missing":[]}`), val)
}

func TestInstrumentedCache_MultipleOperations(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"a": []byte("1")}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &instrumentedCache{inner: inner, metrics: metrics}

	cache.Get("a") // hit
	cache.Get("b") // miss
	cache.Get("a") // hit
	cache.Get("c") // miss

	assert.Equal(t, 2, metrics.hits)
	assert.Equal(t, 2, metrics.misses)
}

func TestNewInstrumentedCacheProvider_DisabledSkipsMetrics(t *testing.T) {
	conf := cacheConfig(false, 0, time.Minute)
	metrics := &cacheMetricsTestMetrics{}
	cache := NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, metrics)

	_, ok := cache.Get("days:1")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, cache)
	assert.Equal(t, 0, metrics.misses)
}

func TestNewInstrumentedCacheProvider_EnabledCounts(t *testing.T) {
	conf := cacheConfig(true, 1, time.Minute)
	metrics := &cacheMetricsTestMetrics{}
	cache := NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, metrics)

	cache.Set("days:1", []byte("[]"))
	cache.Get("days:1")
	cache.Get("days:2")
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestNewInstrumentedCacheProvider_ZeroSizeSkipsMetrics(t *testing.T) {
	conf := cacheConfig(true, 0, time.Minute)
	metrics := &cacheMetricsTestMetrics{}
	cache := NewInstrumentedCacheProvider(conf, &cacheTestLogger{}, metrics)

	cache.Get("days:1")
	assert.IsType(t, &noopCache{}, cache)
	assert.Equal(t, 0, metrics.misses)
}
