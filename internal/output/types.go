// Package output renders loaded Workrave history for the command line.
package output

import (
	"time"

	"informant/internal/models"
	"informant/internal/services"
	"informant/internal/workrave"
)

// Report is everything the show command prints.
type Report struct {
	Summary     Summary               `json:"summary" yaml:"summary"`
	Days        []DayRow              `json:"days" yaml:"days"`
	Series      []Series              `json:"series,omitempty" yaml:"series,omitempty"`
	Missing     []models.Date         `json:"missing" yaml:"missing"`
	Diagnostics []workrave.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

type Summary struct {
	LoadID      string             `json:"load_id" yaml:"load_id"`
	State       services.LoadState `json:"state" yaml:"state"`
	Days        int                `json:"days" yaml:"days"`
	First       *models.Date       `json:"first,omitempty" yaml:"first,omitempty"`
	Last        *models.Date       `json:"last,omitempty" yaml:"last,omitempty"`
	Missing     int                `json:"missing" yaml:"missing"`
	Diagnostics int                `json:"diagnostics" yaml:"diagnostics"`
	Duration    time.Duration      `json:"duration" yaml:"duration"`
	Error       string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// DayRow flattens a Day for tabular output.
type DayRow struct {
	Date                    models.Date `json:"date" yaml:"date"`
	Ordinal                 int         `json:"ordinal" yaml:"ordinal"`
	Start                   time.Time   `json:"start" yaml:"start"`
	End                     time.Time   `json:"end" yaml:"end"`
	TotalActiveTimeSeconds  int64       `json:"total_active_time_seconds" yaml:"total_active_time_seconds"`
	TotalMouseMovement      float64     `json:"total_mouse_movement" yaml:"total_mouse_movement"`
	TotalMouseClickMovement float64     `json:"total_mouse_click_movement" yaml:"total_mouse_click_movement"`
	TotalMouseMovementTime  int64       `json:"total_mouse_movement_time" yaml:"total_mouse_movement_time"`
	TotalMouseClicks        int64       `json:"total_mouse_clicks" yaml:"total_mouse_clicks"`
	TotalKeystrokes         int64       `json:"total_keystrokes" yaml:"total_keystrokes"`
}

type Series struct {
	Metric models.Metric        `json:"metric" yaml:"metric"`
	Points []models.SeriesPoint `json:"points" yaml:"points"`
}

func NewDayRow(day models.Day) DayRow {
	date := day.Date()
	return DayRow{
		Date:                    date,
		Ordinal:                 date.Ordinal(),
		Start:                   day.Range.Start,
		End:                     day.Range.End,
		TotalActiveTimeSeconds:  day.Stats.TotalActiveTimeSeconds,
		TotalMouseMovement:      day.Stats.TotalMouseMovement,
		TotalMouseClickMovement: day.Stats.TotalMouseClickMovement,
		TotalMouseMovementTime:  day.Stats.TotalMouseMovementTime,
		TotalMouseClicks:        day.Stats.TotalMouseClicks,
		TotalKeystrokes:         day.Stats.TotalKeystrokes,
	}
}

// NewReport collects the current state of service after a load.
// Series are projected for each of metrics, in the order given.
func NewReport(load *services.LoadReport, service services.HistoryServiceInterface, metrics []models.Metric) *Report {
	days := service.GetDays()
	missing := service.GetMissing()

	report := &Report{
		Days:        make([]DayRow, len(days)),
		Missing:     make([]models.Date, len(missing)),
		Diagnostics: []workrave.Diagnostic{},
	}
	for i, day := range days {
		report.Days[i] = NewDayRow(day)
	}
	for i, ordinal := range missing {
		report.Missing[i] = models.DateFromOrdinal(ordinal)
	}
	for _, metric := range metrics {
		report.Series = append(report.Series, Series{Metric: metric, Points: service.GetSeries(metric)})
	}

	report.Summary = Summary{
		State:   service.GetState(),
		Days:    len(days),
		Missing: len(missing),
	}
	if len(days) > 0 {
		first, last := report.Days[0].Date, report.Days[len(days)-1].Date
		report.Summary.First, report.Summary.Last = &first, &last
	}
	if load != nil {
		report.Summary.LoadID = load.ID
		report.Summary.Duration = load.Duration
		report.Summary.Error = load.Error
		report.Diagnostics = append(report.Diagnostics, load.Diagnostics...)
	}
	report.Summary.Diagnostics = len(report.Diagnostics)
	return report
}
