package service

import (
	"context"
	"sync"
	"time"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"

	"github.com/google/uuid"
)

type CleanerService struct {
	// mu serialises every load-modify-save of the state row, including the
	// scheduler's, so no writer saves a state it read before another's save.
	mu sync.Mutex

	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	now       func() time.Time
}

func NewCleanerService(stateRepo repository.StateRepo, eventRepo repository.EventRepo) *CleanerService {
	return &CleanerService{stateRepo: stateRepo, eventRepo: eventRepo, now: time.Now}
}

// SetPower switches the cleaner on or off and logs POWER_ON/POWER_OFF.
// Repeating the current state is accepted and still logged.
func (s *CleanerService) SetPower(ctx context.Context, on bool) (models.CleanerState, error) {
	ev := models.CleanerEvent{Type: models.EventPowerOff, Description: "Cleaner turned off"}
	if on {
		ev = models.CleanerEvent{Type: models.EventPowerOn, Description: "Cleaner turned on"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyPower(ctx, on, ev)
}

// SetActive arms or disarms the cleaner for scheduled runs.
func (s *CleanerService) SetActive(ctx context.Context, active bool) (models.CleanerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()

	st, err := s.load(ctx)
	if err != nil {
		return models.CleanerState{}, err
	}
	st.IsActive = active
	st.UpdatedAt = now

	if err := s.stateRepo.Save(ctx, st); err != nil {
		return models.CleanerState{}, err
	}

	ev := models.CleanerEvent{Type: models.EventDeactivated, Description: "Cleaner deactivated"}
	if active {
		ev = models.CleanerEvent{Type: models.EventActivated, Description: "Cleaner activated"}
	}
	ev.EventID = uuid.NewString()
	ev.OccurredAt = now
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		return models.CleanerState{}, err
	}
	return st, nil
}

// applyPower persists the power state and appends ev. The caller holds s.mu.
// An on->off transition completes a cleaning and stamps LastCleanedAt.
func (s *CleanerService) applyPower(ctx context.Context, on bool, ev models.CleanerEvent) (models.CleanerState, error) {
	now := s.now().UTC()

	st, err := s.load(ctx)
	if err != nil {
		return models.CleanerState{}, err
	}

	switch {
	case on && !st.IsOn:
		st.CleaningStartedAt = now
	case !on && st.IsOn:
		st.LastCleanedAt = now
		st.CleaningStartedAt = time.Time{}
	}
	st.IsOn = on
	st.UpdatedAt = now

	if err := s.stateRepo.Save(ctx, st); err != nil {
		return models.CleanerState{}, err
	}

	ev.EventID = uuid.NewString()
	ev.OccurredAt = now
	if err := s.eventRepo.Append(ctx, ev); err != nil {
		return models.CleanerState{}, err
	}
	return st, nil
}

// load returns the stored state, initializing the single row id when empty.
func (s *CleanerService) load(ctx context.Context) (models.CleanerState, error) {
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.CleanerState{}, err
	}
	if st.ID == 0 {
		st.ID = 1
	}
	return st, nil
}
