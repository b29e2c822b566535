package storage

import (
	"sync"
	"time"

	"informant/internal/providers"
	"informant/internal/services"
	"informant/internal/storage/interfaces"
	"informant/internal/structures"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.HistoryServiceInterface
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

// Init starts the periodic snapshot and export reload jobs.
func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		_ = s.Persist()
	})

	s.cron.AddFunc(gron.Every(s.config.Workrave.ReloadInterval), func() {
		_, _ = s.Reload()
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	err := s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
	if err != nil {
		return err
	}
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.logger.Debugf(providers.TypeApp, "Persisted %d days to file %s", s.service.GetDayCount(), s.config.Persistence.FilePath)
	return nil
}

// Reload reloads the Workrave exports and logs the outcome on the load log.
func (s *Scheduler) Reload() (*services.LoadReport, error) {
	report, err := s.service.Reload()
	if report == nil {
		s.logger.Warnf(providers.TypeLoad, "Reload skipped: %s", err)
		return nil, err
	}

	for _, d := range report.Diagnostics {
		s.logger.Warnf(providers.TypeLoad, "[%s] line %d: unrecognized record %q", report.ID, d.LineNum, d.Content)
	}
	s.metrics.IncLoadsTotal(string(report.State))
	s.metrics.ObserveLoadDuration(report.Duration)

	switch report.State {
	case services.StateFailed:
		s.logger.Errorf(providers.TypeLoad, "[%s] Load failed, keeping previous history: %s", report.ID, report.Error)
	case services.StateNoData:
		s.logger.Warnf(providers.TypeLoad, "[%s] No Workrave data found", report.ID)
	default:
		s.logger.Infof(providers.TypeLoad, "[%s] Loaded %d days in %s", report.ID, report.Days, report.Duration)
	}
	return report, err
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.HistoryServiceInterface, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		metrics:     metrics,
	}
}
