package service

import (
	"context"
	"time"

	"solar_cleaner/internal/logger"
	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Cleaner exposes the control panel operations.
type Cleaner interface {
	SetPower(ctx context.Context, on bool) (models.CleanerState, error)
	SetActive(ctx context.Context, active bool) (models.CleanerState, error)
}

// Monitoring exposes the read-only device state.
type Monitoring interface {
	GetState(ctx context.Context) (models.CleanerState, error)
}

// Dashboard builds the status snapshot shown on the control panel.
type Dashboard interface {
	Snapshot(ctx context.Context) (models.Dashboard, error)
}

// Batches serves ML damage-detection output.
type Batches interface {
	List(ctx context.Context, q BatchQuery) (models.BatchPage, error)
	Get(ctx context.Context, id string) (models.Batch, error)
	Ingest(ctx context.Context, in BatchInput) (models.Batch, error)
	SeedDemo(ctx context.Context) (int, error)
}

// Schedule edits the ordered list of cleaning slots.
type Schedule interface {
	List(ctx context.Context) ([]models.ScheduleEntry, error)
	Replace(ctx context.Context, entries []models.ScheduleEntry) ([]models.ScheduleEntry, error)
	Delete(ctx context.Context, index int) error
	Add(ctx context.Context, e models.ScheduleEntry) (models.ScheduleEntry, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.CleanerEvent, error)
}

// Scheduler runs the background loop that starts scheduled cleanings and
// stops runs that exceeded the cleaning duration.
// Stop via context cancellation in main() for graceful shutdown.
type Scheduler interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Cleaner
	Monitoring
	Dashboard
	Batches
	Schedule
	EventLog
	Scheduler
	Authorization
}

// Options carries the configurable knobs of the service layer.
type Options struct {
	SigningKey       string
	TokenTTL         time.Duration
	CleaningDuration time.Duration
	Location         *time.Location
	// Logger receives background scheduler failures; nil disables them.
	Logger *logger.Logger
}

// NewService wires repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	cleaner := NewCleanerService(repos.StateRepo, repos.EventRepo)
	scheduler := NewSchedulerService(repos.StateRepo, repos.ScheduleRepo, cleaner, opts.CleaningDuration, opts.Location)
	scheduler.log = opts.Logger
	return &Service{
		Cleaner:       cleaner,
		Monitoring:    NewMonitoringService(repos.StateRepo),
		Dashboard:     NewDashboardService(repos.StateRepo, repos.EventRepo, repos.BatchRepo),
		Batches:       NewBatchService(repos.BatchRepo),
		Schedule:      NewScheduleService(repos.ScheduleRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		Scheduler:     scheduler,
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}
}
