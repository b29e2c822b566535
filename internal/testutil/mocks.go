package testutil

import (
	"sync"
	"time"

	"informant/internal/models"
	"informant/internal/providers"
	"informant/internal/services"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Entries returns the recorded calls of one level and type.
func (m *MockLogger) Entries(level string, t providers.TypeEnum) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == level && e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// MockHistoryService implements services.HistoryServiceInterface over an in-memory store.
type MockHistoryService struct {
	mu           sync.Mutex
	Store        *models.HistoryStore
	State        services.LoadState
	Report       *services.LoadReport
	Generation   uint64
	ReloadFn     func() (*services.LoadReport, error)
	ReloadCalls  int
	PutSnapshots []*models.Storage
	PutErr       error
}

func NewMockHistoryService(days ...models.Day) *MockHistoryService {
	store := models.NewHistoryStore()
	for _, d := range days {
		store.Put(d)
	}
	return &MockHistoryService{Store: store, State: services.StateOK, Generation: 1}
}

func (m *MockHistoryService) Reload() (*services.LoadReport, error) {
	m.mu.Lock()
	m.ReloadCalls++
	fn := m.ReloadFn
	m.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return &services.LoadReport{
		ID:          "test-load",
		State:       services.StateOK,
		Days:        m.GetDayCount(),
		Diagnostics: nil,
		StartedAt:   time.Now(),
	}, nil
}

func (m *MockHistoryService) GetState() services.LoadState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.State
}

func (m *MockHistoryService) GetLastReport() *services.LoadReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Report
}

func (m *MockHistoryService) GetDays() []models.Day {
	return m.store().Days()
}

func (m *MockHistoryService) GetDay(date models.Date) (models.Day, bool) {
	return m.store().Get(date)
}

func (m *MockHistoryService) GetSeries(metric models.Metric) []models.SeriesPoint {
	return models.Points(m.store(), metric)
}

func (m *MockHistoryService) GetMissing() []int {
	return m.store().MissingOrdinals()
}

func (m *MockHistoryService) GetDayCount() int {
	return m.store().Len()
}

func (m *MockHistoryService) GetGeneration() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Generation
}

func (m *MockHistoryService) GetSnapshot() *models.Storage {
	return models.NewStorage(m.store())
}

func (m *MockHistoryService) PutSnapshot(snapshot *models.Storage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutSnapshots = append(m.PutSnapshots, snapshot)
	return m.PutErr
}

func (m *MockHistoryService) store() *models.HistoryStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Store
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
// Without a func set it is the identity.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// MockMetrics implements providers.MetricsProviderInterface and counts load outcomes.
type MockMetrics struct {
	mu               sync.Mutex
	Loads            map[string]int
	PersistenceCalls int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}

func (m *MockMetrics) IncLoadsTotal(state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Loads == nil {
		m.Loads = make(map[string]int)
	}
	m.Loads[state]++
}

func (m *MockMetrics) ObserveLoadDuration(_ time.Duration) {}

// MockScheduler implements interfaces.SchedulerInterface by delegating Reload to a service.
type MockScheduler struct {
	Service      services.HistoryServiceInterface
	PersistCalls int
	RestoreCalls int
}

func (m *MockScheduler) Init()          {}
func (m *MockScheduler) Stop()          {}
func (m *MockScheduler) Restore() error { m.RestoreCalls++; return nil }
func (m *MockScheduler) Persist() error { m.PersistCalls++; return nil }

func (m *MockScheduler) Reload() (*services.LoadReport, error) {
	return m.Service.Reload()
}
