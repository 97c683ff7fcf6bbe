package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"solar_cleaner/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	cleanerStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO cleaner_state (id, is_on, is_active, cleaning_started_at, last_cleaned_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_on=excluded.is_on,
			is_active=excluded.is_active,
			cleaning_started_at=excluded.cleaning_started_at,
			last_cleaned_at=excluded.last_cleaned_at,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, is_on, is_active, cleaning_started_at, last_cleaned_at, updated_at
		FROM cleaner_state WHERE id=?
	`
)

// nullableUTC maps a zero time to NULL and anything else to UTC.
func nullableUTC(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

func fromNullTime(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time.UTC()
}

// Save updates or inserts the cleaner_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.CleanerState) error {
	tsUTC := state.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		cleanerStateRowID,
		state.IsOn,
		state.IsActive,
		nullableUTC(state.CleaningStartedAt),
		nullableUTC(state.LastCleanedAt),
		tsUTC,
	)
	return err
}

// Load fetches the single cleaner_state row. A missing row yields the zero value.
func (r *StateSQLite) Load(ctx context.Context) (models.CleanerState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, cleanerStateRowID)

	var (
		s             models.CleanerState
		startedAt     sql.NullTime
		lastCleanedAt sql.NullTime
	)
	if err := row.Scan(
		&s.ID,
		&s.IsOn,
		&s.IsActive,
		&startedAt,
		&lastCleanedAt,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CleanerState{}, nil
		}
		return models.CleanerState{}, err
	}

	s.CleaningStartedAt = fromNullTime(startedAt)
	s.LastCleanedAt = fromNullTime(lastCleanedAt)
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
