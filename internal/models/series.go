package models

import (
	"fmt"
	"iter"
)

// Metric selects one InputStats field for projection.
type Metric string

const (
	MetricActiveTime         Metric = "total_active_time_seconds"
	MetricMouseMovement      Metric = "total_mouse_movement"
	MetricMouseClickMovement Metric = "total_mouse_click_movement"
	MetricMouseMovementTime  Metric = "total_mouse_movement_time"
	MetricMouseClicks        Metric = "total_mouse_clicks"
	MetricKeystrokes         Metric = "total_keystrokes"
)

// Metrics lists every projectable metric in InputStats field order.
var Metrics = []Metric{
	MetricActiveTime,
	MetricMouseMovement,
	MetricMouseClickMovement,
	MetricMouseMovementTime,
	MetricMouseClicks,
	MetricKeystrokes,
}

// ParseMetric resolves a metric by name.
func ParseMetric(name string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", name)
}

// Value extracts the metric from stats.
func (m Metric) Value(stats InputStats) float64 {
	switch m {
	case MetricActiveTime:
		return float64(stats.TotalActiveTimeSeconds)
	case MetricMouseMovement:
		return stats.TotalMouseMovement
	case MetricMouseClickMovement:
		return stats.TotalMouseClickMovement
	case MetricMouseMovementTime:
		return float64(stats.TotalMouseMovementTime)
	case MetricMouseClicks:
		return float64(stats.TotalMouseClicks)
	case MetricKeystrokes:
		return float64(stats.TotalKeystrokes)
	}
	return 0
}

type SeriesPoint struct {
	Ordinal int     `json:"ordinal" yaml:"ordinal"`
	Date    Date    `json:"date" yaml:"date"`
	Value   float64 `json:"value" yaml:"value"`
}

// Project yields one (ordinal, value) pair per stored day, ascending by date.
// Each range over the sequence re-reads the store; dates without a Day produce nothing.
func Project(store *HistoryStore, metric Metric) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		if store == nil {
			return
		}
		for _, date := range store.Dates() {
			if !yield(date.Ordinal(), metric.Value(store.days[date].Stats)) {
				return
			}
		}
	}
}

// Points collects Project into a slice, adding the calendar date for labelling.
func Points(store *HistoryStore, metric Metric) []SeriesPoint {
	points := make([]SeriesPoint, 0)
	for ordinal, value := range Project(store, metric) {
		points = append(points, SeriesPoint{
			Ordinal: ordinal,
			Date:    DateFromOrdinal(ordinal),
			Value:   value,
		})
	}
	return points
}
