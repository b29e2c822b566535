package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"informant/internal/models"
	"informant/internal/providers"
	"informant/internal/services"
	"informant/internal/structures"
)

// ExitCode is the process exit code of the last command run. Commands set it for
// outcomes that are not errors, such as an export with no data.
var ExitCode = 0

// Exit codes shared by the commands.
const (
	exitOK      = 0
	exitNoData  = 1
	exitFailure = 2
)

// sourceOptions are the flags every command that reads exports shares.
type sourceOptions struct {
	Today    string
	Location string
	LogLevel string
}

// loadHistory loads historyPath and the optional today export through a HistoryService,
// logging skipped lines to stderr.
func loadHistory(historyPath string, opts sourceOptions, stderr io.Writer) (services.HistoryServiceInterface, *services.LoadReport, error) {
	conf := &structures.Config{
		Workrave: structures.WorkraveConfig{
			HistoryStatsPath: historyPath,
			TodayStatsPath:   opts.Today,
			Location:         opts.Location,
		},
	}
	service, err := services.NewHistoryService(conf)
	if err != nil {
		return nil, nil, err
	}

	logger := providers.NewWriterLogger(
		zerolog.ConsoleWriter{Out: stderr, NoColor: true, TimeFormat: time.Kitchen},
		opts.LogLevel,
	)
	defer logger.Close()

	report, err := service.Reload()
	if report != nil {
		for _, d := range report.Diagnostics {
			logger.Warnf(providers.TypeLoad, "load %s: %s", report.ID, d)
		}
	}
	if err != nil {
		logger.Errorf(providers.TypeLoad, "load failed: %s", err)
		return service, report, err
	}
	return service, report, nil
}

// parseMetrics resolves metric names; "all" selects every metric.
func parseMetrics(names []string) ([]models.Metric, error) {
	metrics := make([]models.Metric, 0, len(names))
	for _, name := range names {
		if name == "all" {
			return models.Metrics, nil
		}
		m, err := models.ParseMetric(name)
		if err != nil {
			return nil, fmt.Errorf("%w (valid: %v, all)", err, models.Metrics)
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

func resolveLocation(name string) (*time.Location, error) {
	return structures.WorkraveConfig{Location: name}.TimeLocation()
}
