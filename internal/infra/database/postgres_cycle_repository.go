// internal/infra/database/postgres_cycle_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"period_tracker_bot/internal/domain/cycle"
	"period_tracker_bot/internal/domain/dates"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresCycleRepository persists the cycle ledger as a whole
// snapshot: LoadAll at session start, ReplaceAll at session end.
type PostgresCycleRepository struct {
	db *sql.DB
}

func NewPostgresCycleRepository(db *sql.DB) *PostgresCycleRepository {
	return &PostgresCycleRepository{db: db}
}

func (r *PostgresCycleRepository) LoadAll(ctx context.Context) ([]cycle.Record, error) {
	query := `SELECT start_date, end_date, duration_days, cycle_length
               FROM cycles ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error loading cycle records: %w", err)
	}
	defer rows.Close()

	records := make([]cycle.Record, 0)
	for rows.Next() {
		var rec cycle.Record
		if err := rows.Scan(&rec.StartDate, &rec.EndDate, &rec.DurationDays, &rec.CycleLength); err != nil {
			return nil, fmt.Errorf("error scanning cycle record: %w", err)
		}
		rec.StartDate = dates.Midnight(rec.StartDate)
		rec.EndDate = dates.Midnight(rec.EndDate)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cycle records: %w", err)
	}
	return records, nil
}

// ReplaceAll rewrites the cycles table from the given snapshot, the
// same way the tracker rewrites its whole state file on save.
func (r *PostgresCycleRepository) ReplaceAll(ctx context.Context, records []cycle.Record) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning cycle snapshot transaction: %w", err)
	}
	defer txn.Rollback() // No-op if committed.

	if _, err := txn.ExecContext(ctx, `DELETE FROM cycles`); err != nil {
		return fmt.Errorf("error clearing cycles table: %w", err)
	}

	stmt, err := txn.PrepareContext(ctx, `INSERT INTO cycles (start_date, end_date, duration_days, cycle_length)
               VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("error preparing cycle insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.StartDate, rec.EndDate, rec.DurationDays, rec.CycleLength); err != nil {
			return fmt.Errorf("error inserting cycle record starting %s: %w", dates.Format(rec.StartDate), err)
		}
	}

	if err := txn.Commit(); err != nil {
		return fmt.Errorf("error committing cycle snapshot: %w", err)
	}
	return nil
}
