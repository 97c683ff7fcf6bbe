package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"solar_cleaner/internal/models"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// ErrLimitReached is returned when an insert would exceed a row cap.
var ErrLimitReached = errors.New("limit reached")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type StateRepo interface {
	Save(ctx context.Context, s models.CleanerState) error
	Load(ctx context.Context) (models.CleanerState, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.CleanerEvent) error
	List(ctx context.Context, from, to time.Time, types ...string) ([]models.CleanerEvent, error)
	// Latest returns up to limit most recent events of the given types, oldest first.
	Latest(ctx context.Context, limit int, types ...string) ([]models.CleanerEvent, error)
}

type BatchRepo interface {
	Insert(ctx context.Context, b models.Batch) error
	Get(ctx context.Context, id string) (models.Batch, error)
	Search(ctx context.Context, search string, limit, offset int) ([]models.Batch, int, error)
	CountImages(ctx context.Context) (int, error)
	Count(ctx context.Context) (int, error)
}

type ScheduleRepo interface {
	List(ctx context.Context) ([]models.ScheduleEntry, error)
	Replace(ctx context.Context, entries []models.ScheduleEntry) error
	// Append adds e at the end unless limit entries already exist.
	Append(ctx context.Context, e models.ScheduleEntry, limit int) error
	// DeleteAt removes the entry at index and compacts positions.
	DeleteAt(ctx context.Context, index int) error
}

type Repository struct {
	StateRepo    StateRepo
	EventRepo    EventRepo
	BatchRepo    BatchRepo
	ScheduleRepo ScheduleRepo
	Auth         Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		StateRepo:    NewStateSQLite(db),
		EventRepo:    NewEventSQLite(db),
		BatchRepo:    NewBatchSQLite(db),
		ScheduleRepo: NewScheduleSQLite(db),
		Auth:         NewUserSQLite(db),
	}
}
