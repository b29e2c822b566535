package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"informant/internal/models"
	"informant/internal/structures"
	"informant/internal/workrave"

	"github.com/google/uuid"
	"go.uber.org/atomic"
)

type LoadState string

const (
	StateUnknown LoadState = "unknown"
	StateOK      LoadState = "ok"
	StateNoData  LoadState = "no_data"
	StateFailed  LoadState = "failed"
)

var ErrReloadInProgress = errors.New("reload already in progress")

// LoadReport describes one reload of the Workrave exports.
type LoadReport struct {
	ID          string                `json:"id"`
	State       LoadState             `json:"state"`
	Days        int                   `json:"days"`
	Diagnostics []workrave.Diagnostic `json:"diagnostics"`
	StartedAt   time.Time             `json:"started_at"`
	Duration    time.Duration         `json:"duration"`
	Error       string                `json:"error,omitempty"`
}

type HistoryServiceInterface interface {
	Reload() (*LoadReport, error)
	GetState() LoadState
	GetLastReport() *LoadReport
	GetDays() []models.Day
	GetDay(date models.Date) (models.Day, bool)
	GetSeries(metric models.Metric) []models.SeriesPoint
	GetMissing() []int
	GetDayCount() int
	GetGeneration() uint64
	GetSnapshot() *models.Storage
	PutSnapshot(snapshot *models.Storage) error
}

// HistoryService owns the published HistoryStore. A published store is never written again;
// reloads build a new one and swap it in.
type HistoryService struct {
	historyPath string
	todayPath   string
	loc         *time.Location

	loading    atomic.Bool
	generation atomic.Uint64

	mu     sync.RWMutex
	store  *models.HistoryStore
	state  LoadState
	report *LoadReport
}

func NewHistoryService(conf *structures.Config) (HistoryServiceInterface, error) {
	loc, err := conf.Workrave.TimeLocation()
	if err != nil {
		return nil, err
	}
	return &HistoryService{
		historyPath: conf.Workrave.HistoryStatsPath,
		todayPath:   conf.Workrave.TodayStatsPath,
		loc:         loc,
		store:       models.NewHistoryStore(),
		state:       StateUnknown,
	}, nil
}

// Reload loads historystats, merges todaystats over it and publishes the result.
// On failure the previous store stays published and the error is returned with the report.
func (hs *HistoryService) Reload() (*LoadReport, error) {
	if !hs.loading.CompareAndSwap(false, true) {
		return nil, ErrReloadInProgress
	}
	defer hs.loading.Store(false)

	report := &LoadReport{
		ID:          uuid.NewString(),
		StartedAt:   time.Now(),
		Diagnostics: []workrave.Diagnostic{},
	}
	loader := workrave.NewLoader(
		workrave.WithLocation(hs.loc),
		workrave.WithDiagnostics(func(d workrave.Diagnostic) {
			report.Diagnostics = append(report.Diagnostics, d)
		}),
	)

	store, err := hs.load(loader)
	report.Duration = time.Since(report.StartedAt)

	hs.mu.Lock()
	defer hs.mu.Unlock()

	switch {
	case errors.Is(err, workrave.ErrNoData):
		report.State = StateNoData
		hs.store = models.NewHistoryStore()
		hs.generation.Inc()
		err = nil
	case err != nil:
		report.State = StateFailed
		report.Error = err.Error()
	default:
		report.State = StateOK
		report.Days = store.Len()
		hs.store = store
		hs.generation.Inc()
	}
	hs.state = report.State
	hs.report = report
	return report, err
}

func (hs *HistoryService) load(loader *workrave.Loader) (*models.HistoryStore, error) {
	history, err := loadPath(loader, hs.historyPath)
	if err != nil && !errors.Is(err, workrave.ErrNoData) {
		return nil, fmt.Errorf("loading historystats: %w", err)
	}
	today, err := loadPath(loader, hs.todayPath)
	if err != nil && !errors.Is(err, workrave.ErrNoData) {
		return nil, fmt.Errorf("loading todaystats: %w", err)
	}

	switch {
	case history == nil && today == nil:
		return nil, workrave.ErrNoData
	case history == nil:
		return today, nil
	}
	history.Merge(today)
	return history, nil
}

func loadPath(loader *workrave.Loader, path string) (*models.HistoryStore, error) {
	if path == "" {
		return nil, workrave.ErrNoData
	}
	return loader.LoadFile(path)
}

func (hs *HistoryService) current() *models.HistoryStore {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.store
}

func (hs *HistoryService) GetState() LoadState {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.state
}

func (hs *HistoryService) GetLastReport() *LoadReport {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.report
}

func (hs *HistoryService) GetDays() []models.Day {
	return hs.current().Days()
}

func (hs *HistoryService) GetDay(date models.Date) (models.Day, bool) {
	return hs.current().Get(date)
}

func (hs *HistoryService) GetSeries(metric models.Metric) []models.SeriesPoint {
	return models.Points(hs.current(), metric)
}

func (hs *HistoryService) GetMissing() []int {
	return hs.current().MissingOrdinals()
}

func (hs *HistoryService) GetDayCount() int {
	return hs.current().Len()
}

// GetGeneration changes every time a new store is published.
func (hs *HistoryService) GetGeneration() uint64 {
	return hs.generation.Load()
}

func (hs *HistoryService) GetSnapshot() *models.Storage {
	return models.NewStorage(hs.current())
}

// PutSnapshot publishes a store restored from disk. The load state is left untouched.
func (hs *HistoryService) PutSnapshot(snapshot *models.Storage) error {
	store, err := snapshot.Store()
	if err != nil {
		return err
	}
	hs.mu.Lock()
	hs.store = store
	hs.mu.Unlock()
	hs.generation.Inc()
	return nil
}
