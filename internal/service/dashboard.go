package service

import (
	"context"
	"time"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"

	"github.com/dustin/go-humanize"
)

const neverCleaned = "never"

// powerEventTypes are the events that move the on/off history.
var powerEventTypes = []string{
	models.EventPowerOn,
	models.EventPowerOff,
	models.EventScheduledStart,
	models.EventAutoStop,
}

type DashboardService struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	batchRepo repository.BatchRepo
	now       func() time.Time
}

func NewDashboardService(stateRepo repository.StateRepo, eventRepo repository.EventRepo, batchRepo repository.BatchRepo) *DashboardService {
	return &DashboardService{stateRepo: stateRepo, eventRepo: eventRepo, batchRepo: batchRepo, now: time.Now}
}

// Snapshot assembles the control panel view: power and active flags, the last
// HistorySize power changes, a relative last-cleaning time and the image count.
func (s *DashboardService) Snapshot(ctx context.Context) (models.Dashboard, error) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}

	events, err := s.eventRepo.Latest(ctx, models.HistorySize, powerEventTypes...)
	if err != nil {
		return models.Dashboard{}, err
	}

	images, err := s.batchRepo.CountImages(ctx)
	if err != nil {
		return models.Dashboard{}, err
	}

	history := make([]models.HistoryPoint, 0, len(events))
	for _, ev := range events {
		on, ok := ev.PowerState()
		if !ok {
			continue
		}
		history = append(history, models.HistoryPoint{State: on, Time: ev.OccurredAt.UTC()})
	}

	return models.Dashboard{
		IsCleanerOn:      st.IsOn,
		IsActive:         st.IsActive,
		OnOffHistory:     history,
		LastCleaningTime: s.lastCleaning(st.LastCleanedAt),
		ImagesCaptured:   images,
	}, nil
}

func (s *DashboardService) lastCleaning(at time.Time) string {
	if at.IsZero() {
		return neverCleaned
	}
	return humanize.RelTime(at, s.now(), "ago", "from now")
}
