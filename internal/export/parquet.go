package export

import (
	"context"
	"os"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"informant/internal/models"
)

type dayParquetRow struct {
	Date                    string  `parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Ordinal                 int64   `parquet:"name=ordinal, type=INT64"`
	Start                   string  `parquet:"name=start, type=BYTE_ARRAY, convertedtype=UTF8"`
	End                     string  `parquet:"name=end, type=BYTE_ARRAY, convertedtype=UTF8"`
	TotalActiveTimeSeconds  int64   `parquet:"name=total_active_time_seconds, type=INT64"`
	TotalMouseMovement      float64 `parquet:"name=total_mouse_movement, type=DOUBLE"`
	TotalMouseClickMovement float64 `parquet:"name=total_mouse_click_movement, type=DOUBLE"`
	TotalMouseMovementTime  int64   `parquet:"name=total_mouse_movement_time, type=INT64"`
	TotalMouseClicks        int64   `parquet:"name=total_mouse_clicks, type=INT64"`
	TotalKeystrokes         int64   `parquet:"name=total_keystrokes, type=INT64"`
}

type ParquetExporter struct{}

func (e *ParquetExporter) Name() string {
	return "parquet"
}

func (e *ParquetExporter) Export(ctx context.Context, days []models.Day, path string) error {
	data, err := marshalParquet(ctx, days)
	if err != nil {
		return err
	}
	return writeAtomic(path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}

func marshalParquet(ctx context.Context, days []models.Day) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(dayParquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, day := range days {
		if err := ctx.Err(); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
		r := newRow(day)
		if err := pw.Write(dayParquetRow{
			Date:                    r.date,
			Ordinal:                 r.ordinal,
			Start:                   r.start,
			End:                     r.end,
			TotalActiveTimeSeconds:  r.stats.TotalActiveTimeSeconds,
			TotalMouseMovement:      r.stats.TotalMouseMovement,
			TotalMouseClickMovement: r.stats.TotalMouseClickMovement,
			TotalMouseMovementTime:  r.stats.TotalMouseMovementTime,
			TotalMouseClicks:        r.stats.TotalMouseClicks,
			TotalKeystrokes:         r.stats.TotalKeystrokes,
		}); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
