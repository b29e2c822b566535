package export

import (
	"context"
	"encoding/csv"
	"os"

	"informant/internal/models"
)

type CSVExporter struct{}

func (e *CSVExporter) Name() string {
	return "csv"
}

func (e *CSVExporter) Export(ctx context.Context, days []models.Day, path string) error {
	return writeAtomic(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(columns); err != nil {
			return err
		}
		for _, day := range days {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := w.Write(newRow(day).record()); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}
