// internal/infra/database/postgres_dailylog_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"period_tracker_bot/internal/domain/dailylog"
	"period_tracker_bot/internal/domain/dates"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresDailyLogRepository persists the daily symptom/mood logs as a
// whole snapshot, mirroring the cycle repository.
type PostgresDailyLogRepository struct {
	db *sql.DB
}

func NewPostgresDailyLogRepository(db *sql.DB) *PostgresDailyLogRepository {
	return &PostgresDailyLogRepository{db: db}
}

func (r *PostgresDailyLogRepository) LoadAll(ctx context.Context) ([]dailylog.Entry, error) {
	query := `SELECT log_date, symptoms, mood FROM daily_logs ORDER BY log_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error loading daily logs: %w", err)
	}
	defer rows.Close()

	entries := make([]dailylog.Entry, 0)
	for rows.Next() {
		var e dailylog.Entry
		if err := rows.Scan(&e.Date, &e.Symptoms, &e.Mood); err != nil {
			return nil, fmt.Errorf("error scanning daily log: %w", err)
		}
		e.Date = dates.Midnight(e.Date)
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily logs: %w", err)
	}
	return entries, nil
}

func (r *PostgresDailyLogRepository) ReplaceAll(ctx context.Context, entries []dailylog.Entry) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning daily log snapshot transaction: %w", err)
	}
	defer txn.Rollback() // No-op if committed.

	if _, err := txn.ExecContext(ctx, `DELETE FROM daily_logs`); err != nil {
		return fmt.Errorf("error clearing daily_logs table: %w", err)
	}

	stmt, err := txn.PrepareContext(ctx, `INSERT INTO daily_logs (log_date, symptoms, mood)
               VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("error preparing daily log insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Date, e.Symptoms, e.Mood); err != nil {
			return fmt.Errorf("error inserting daily log for %s: %w", dates.Format(e.Date), err)
		}
	}

	if err := txn.Commit(); err != nil {
		return fmt.Errorf("error committing daily log snapshot: %w", err)
	}
	return nil
}
