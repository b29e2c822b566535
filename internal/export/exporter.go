// Package export writes loaded days to files other tools can read.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"informant/internal/models"
)

// Formats lists the supported export formats.
var Formats = []string{"csv", "parquet", "sqlite"}

// Exporter writes days, in the order given, to path.
type Exporter interface {
	Export(ctx context.Context, days []models.Day, path string) error
	Name() string
}

func NewExporter(format string) (Exporter, error) {
	switch format {
	case "csv":
		return &CSVExporter{}, nil
	case "parquet":
		return &ParquetExporter{}, nil
	case "sqlite":
		return &SQLiteExporter{}, nil
	}
	return nil, fmt.Errorf("unknown export format %q (valid: csv, parquet, sqlite)", format)
}

var columns = []string{
	"date",
	"ordinal",
	"start",
	"end",
	string(models.MetricActiveTime),
	string(models.MetricMouseMovement),
	string(models.MetricMouseClickMovement),
	string(models.MetricMouseMovementTime),
	string(models.MetricMouseClicks),
	string(models.MetricKeystrokes),
}

type row struct {
	date    string
	ordinal int64
	start   string
	end     string
	stats   models.InputStats
}

func newRow(day models.Day) row {
	date := day.Date()
	return row{
		date:    date.String(),
		ordinal: int64(date.Ordinal()),
		start:   day.Range.Start.Format(time.RFC3339),
		end:     day.Range.End.Format(time.RFC3339),
		stats:   day.Stats,
	}
}

func (r row) record() []string {
	return []string{
		r.date,
		strconv.FormatInt(r.ordinal, 10),
		r.start,
		r.end,
		strconv.FormatInt(r.stats.TotalActiveTimeSeconds, 10),
		strconv.FormatFloat(r.stats.TotalMouseMovement, 'f', 2, 64),
		strconv.FormatFloat(r.stats.TotalMouseClickMovement, 'f', 2, 64),
		strconv.FormatInt(r.stats.TotalMouseMovementTime, 10),
		strconv.FormatInt(r.stats.TotalMouseClicks, 10),
		strconv.FormatInt(r.stats.TotalKeystrokes, 10),
	}
}

// writeAtomic writes through a temporary file in the target directory and renames it into place.
func writeAtomic(path string, write func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
