package service

import (
	"context"
	"time"

	"solar_cleaner/internal/logger"
	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"
)

// DefaultCleaningDuration bounds a cleaning run when none is configured.
const DefaultCleaningDuration = 15 * time.Minute

// SchedulerService starts cleanings at scheduled slots and stops runs that
// have lasted longer than the cleaning duration.
type SchedulerService struct {
	stateRepo    repository.StateRepo
	scheduleRepo repository.ScheduleRepo
	cleaner      *CleanerService
	duration     time.Duration
	loc          *time.Location
	log          *logger.Logger

	// lastFired is the local minute ("2006-01-02 15:04") of the last scheduled start.
	lastFired string
}

// NewSchedulerService returns a scheduler; zero duration and nil location fall
// back to DefaultCleaningDuration and UTC.
func NewSchedulerService(stateRepo repository.StateRepo, scheduleRepo repository.ScheduleRepo, cleaner *CleanerService, duration time.Duration, loc *time.Location) *SchedulerService {
	if duration <= 0 {
		duration = DefaultCleaningDuration
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SchedulerService{
		stateRepo:    stateRepo,
		scheduleRepo: scheduleRepo,
		cleaner:      cleaner,
		duration:     duration,
		loc:          loc,
	}
}

// Run ticks at the given interval until ctx is canceled. A non-positive tick
// falls back to one second.
func (s *SchedulerService) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = time.Second
	}
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if err := s.Tick(ctx, now); err != nil && s.log != nil {
				s.log.Errorw("scheduler_tick_failed", "err", err)
			}
		}
	}
}

// Tick evaluates the schedule once at now. It holds the cleaner's lock from
// reading the state to saving the change, so operator commands land before or
// after a tick, never inside it.
func (s *SchedulerService) Tick(ctx context.Context, now time.Time) error {
	s.cleaner.mu.Lock()
	defer s.cleaner.mu.Unlock()

	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return err
	}

	if st.IsOn {
		if !st.CleaningStartedAt.IsZero() && now.Sub(st.CleaningStartedAt) >= s.duration {
			_, err = s.cleaner.applyPower(ctx, false, models.CleanerEvent{
				Type:        models.EventAutoStop,
				Description: "Cleaning duration elapsed; cleaner turned off",
				Metadata:    map[string]any{"duration_sec": int(s.duration.Seconds())},
			})
		}
		return err
	}

	if !st.IsActive {
		return nil
	}

	local := now.In(s.loc)
	minute := local.Format("2006-01-02 15:04")
	if minute == s.lastFired {
		return nil
	}

	entries, err := s.scheduleRepo.List(ctx)
	if err != nil {
		return err
	}
	clock := local.Format("15:04")
	for _, e := range entries {
		if e.Day.Weekday() != local.Weekday() || e.Time != clock {
			continue
		}
		s.lastFired = minute
		_, err = s.cleaner.applyPower(ctx, true, models.CleanerEvent{
			Type:        models.EventScheduledStart,
			Description: "Scheduled cleaning started",
			Metadata:    map[string]any{"day": string(e.Day), "time": e.Time},
		})
		return err
	}
	return nil
}
