package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"informant/internal/models"
)

const createDaysTable = `
CREATE TABLE IF NOT EXISTS days (
	date TEXT PRIMARY KEY,
	ordinal INTEGER NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	total_active_time_seconds INTEGER NOT NULL,
	total_mouse_movement REAL NOT NULL,
	total_mouse_click_movement REAL NOT NULL,
	total_mouse_movement_time INTEGER NOT NULL,
	total_mouse_clicks INTEGER NOT NULL,
	total_keystrokes INTEGER NOT NULL
)`

const upsertDay = `
INSERT OR REPLACE INTO days (
	date, ordinal, start_time, end_time,
	total_active_time_seconds, total_mouse_movement, total_mouse_click_movement,
	total_mouse_movement_time, total_mouse_clicks, total_keystrokes
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteExporter upserts days into a days table keyed by date.
// Exporting into an existing database replaces rows for the same dates and keeps the rest.
type SQLiteExporter struct{}

func (e *SQLiteExporter) Name() string {
	return "sqlite"
}

func (e *SQLiteExporter) Export(ctx context.Context, days []models.Day, path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, createDaysTable); err != nil {
		return fmt.Errorf("creating days table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertDay)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, day := range days {
		r := newRow(day)
		if _, err := stmt.ExecContext(ctx,
			r.date, r.ordinal, r.start, r.end,
			r.stats.TotalActiveTimeSeconds,
			r.stats.TotalMouseMovement,
			r.stats.TotalMouseClickMovement,
			r.stats.TotalMouseMovementTime,
			r.stats.TotalMouseClicks,
			r.stats.TotalKeystrokes,
		); err != nil {
			return fmt.Errorf("writing %s: %w", r.date, err)
		}
	}
	return tx.Commit()
}
