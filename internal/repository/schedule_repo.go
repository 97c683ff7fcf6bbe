package repository

import (
	"context"
	"database/sql"
	"fmt"

	"solar_cleaner/internal/models"
)

type ScheduleSQLite struct {
	db *sql.DB
}

func NewScheduleSQLite(db *sql.DB) *ScheduleSQLite { return &ScheduleSQLite{db: db} }

const (
	selectScheduleSQL    = `SELECT day, time FROM schedule ORDER BY position ASC`
	deleteScheduleSQL    = `DELETE FROM schedule`
	insertScheduleSQL    = `INSERT INTO schedule (position, day, time) VALUES (?, ?, ?)`
	appendScheduleSQL    = `INSERT INTO schedule (position, day, time) SELECT COALESCE(MAX(position), -1) + 1, ?, ? FROM schedule`
	deleteSchedulePosSQL = `DELETE FROM schedule WHERE position = ?`
	compactScheduleSQL   = `UPDATE schedule SET position = position - 1 WHERE position > ?`
	countScheduleSQL     = `SELECT COUNT(*) FROM schedule`
)

// List returns the schedule in position order.
func (r *ScheduleSQLite) List(ctx context.Context) ([]models.ScheduleEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectScheduleSQL)
	if err != nil {
		return nil, fmt.Errorf("select schedule: %w", err)
	}
	defer rows.Close()

	out := make([]models.ScheduleEntry, 0, 8)
	for rows.Next() {
		var e models.ScheduleEntry
		if err := rows.Scan(&e.Day, &e.Time); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Replace swaps the whole schedule for entries, positions 0..n-1.
func (r *ScheduleSQLite) Replace(ctx context.Context, entries []models.ScheduleEntry) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule replace: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteScheduleSQL); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	for i, e := range entries {
		if _, err = tx.ExecContext(ctx, insertScheduleSQL, i, string(e.Day), e.Time); err != nil {
			return fmt.Errorf("insert schedule entry %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule replace: %w", err)
	}
	return nil
}

// Append adds e after the last entry. The count check and the insert share one
// transaction; ErrLimitReached is returned when limit entries already exist.
func (r *ScheduleSQLite) Append(ctx context.Context, e models.ScheduleEntry, limit int) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule append: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var n int
	if err = tx.QueryRowContext(ctx, countScheduleSQL).Scan(&n); err != nil {
		return fmt.Errorf("count schedule: %w", err)
	}
	if n >= limit {
		err = ErrLimitReached
		return err
	}
	if _, err = tx.ExecContext(ctx, appendScheduleSQL, string(e.Day), e.Time); err != nil {
		return fmt.Errorf("append schedule entry: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule append: %w", err)
	}
	return nil
}

// DeleteAt removes the entry at index. Returns ErrNotFound when index is out of range.
func (r *ScheduleSQLite) DeleteAt(ctx context.Context, index int) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, deleteSchedulePosSQL, index)
	if err != nil {
		return fmt.Errorf("delete schedule entry %d: %w", index, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for schedule entry %d: %w", index, err)
	}
	if n == 0 {
		err = ErrNotFound
		return err
	}
	if _, err = tx.ExecContext(ctx, compactScheduleSQL, index); err != nil {
		return fmt.Errorf("compact schedule after %d: %w", index, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule delete: %w", err)
	}
	return nil
}
