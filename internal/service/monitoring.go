package service

import (
	"context"
	"time"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
}

func NewMonitoringService(stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo}
}

// GetState returns the latest persisted cleaner state.
// If no state is persisted yet, returns a baseline off/inactive snapshot.
func (s *MonitoringService) GetState(ctx context.Context) (models.CleanerState, error) {
	state, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.CleanerState{}, err
	}
	if state.ID == 0 {
		return baselineState(), nil
	}
	state.UpdatedAt = toUTC(state.UpdatedAt)
	return state, nil
}

// baselineState is the snapshot reported before anything was stored.
func baselineState() models.CleanerState {
	return models.CleanerState{
		ID:        1, // DB schema enforces single-row state with id=1
		UpdatedAt: time.Now().UTC(),
	}
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
