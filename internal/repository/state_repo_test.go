package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

// sqlmockArgumentFunc adapts a predicate to sqlmock.Argument.
type sqlmockArgumentFunc func(driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool { return f(v) }

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestStateSQLite_Save_SetsUTCNowAndNullTimes_WhenZero(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := repository.NewStateSQLite(db)

	state := models.CleanerState{IsOn: false, IsActive: true}

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cleaner_state")).
		WithArgs(1, false, true, nil, nil, isUTCRecent).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_ConvertsTimesToUTC(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := repository.NewStateSQLite(db)

	tokyo := time.FixedZone("JST", 9*60*60)
	started := time.Date(2024, 5, 1, 8, 0, 0, 0, tokyo)
	cleaned := time.Date(2024, 4, 30, 18, 30, 0, 0, tokyo)
	updated := time.Date(2024, 5, 1, 8, 0, 5, 0, tokyo)

	exactUTC := func(want time.Time) sqlmockArgumentFunc {
		return func(v driver.Value) bool {
			tm, ok := v.(time.Time)
			return ok && tm.Equal(want) && tm.Location() == time.UTC
		}
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cleaner_state")).
		WithArgs(1, true, false, exactUTC(started), exactUTC(cleaned), exactUTC(updated)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), models.CleanerState{
		IsOn:              true,
		CleaningStartedAt: started,
		LastCleanedAt:     cleaned,
		UpdatedAt:         updated,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Save_ExecErrorIsPropagated(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := repository.NewStateSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cleaner_state")).
		WithArgs(1, true, true, nil, nil, sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	if err := repo.Save(context.Background(), models.CleanerState{IsOn: true, IsActive: true}); err == nil {
		t.Fatalf("Save() expected error, got nil")
	}
}

func TestStateSQLite_Load_NoRowsReturnsZeroValueAndNilError(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := repository.NewStateSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, is_on, is_active, cleaning_started_at, last_cleaned_at, updated_at")).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, models.CleanerState{}) {
		t.Fatalf("Load() expected zero state, got: %+v", got)
	}
}

func TestStateSQLite_Load_HappyPath_NullsAndUTC(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := repository.NewStateSQLite(db)

	ny := time.FixedZone("EST", -5*60*60)
	updated := time.Date(2024, 2, 1, 8, 30, 0, 0, ny)
	cleaned := time.Date(2024, 2, 1, 7, 0, 0, 0, ny)

	rows := sqlmock.NewRows([]string{"id", "is_on", "is_active", "cleaning_started_at", "last_cleaned_at", "updated_at"}).
		AddRow(1, false, true, nil, cleaned, updated)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, is_on, is_active, cleaning_started_at, last_cleaned_at, updated_at")).
		WithArgs(1).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got.ID != 1 || got.IsOn || !got.IsActive {
		t.Fatalf("Load() unexpected fields: %+v", got)
	}
	if !got.CleaningStartedAt.IsZero() {
		t.Fatalf("expected zero CleaningStartedAt for NULL, got %v", got.CleaningStartedAt)
	}
	if !got.LastCleanedAt.Equal(cleaned) || got.LastCleanedAt.Location() != time.UTC {
		t.Fatalf("LastCleanedAt = %v, want %v in UTC", got.LastCleanedAt, cleaned)
	}
	if got.UpdatedAt.Location() != time.UTC {
		t.Fatalf("UpdatedAt not UTC: %v", got.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStateSQLite_Load_QueryErrorIsPropagated(t *testing.T) {
	db, mock := newSQLMock(t)
	repo := repository.NewStateSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cleaner_state")).
		WithArgs(1).
		WillReturnError(errors.New("disk I/O error"))

	if _, err := repo.Load(context.Background()); err == nil {
		t.Fatalf("Load() expected error, got nil")
	}
}
