package service

import (
	"context"
	"errors"
	"fmt"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"
)

const maxScheduleEntries = 7 * 24

var (
	ErrScheduleIndexOutOfRange = errors.New("schedule index out of range")
	ErrScheduleFull            = fmt.Errorf("schedule holds at most %d entries", maxScheduleEntries)
)

type ScheduleService struct {
	scheduleRepo repository.ScheduleRepo
}

func NewScheduleService(scheduleRepo repository.ScheduleRepo) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo}
}

func (s *ScheduleService) List(ctx context.Context) ([]models.ScheduleEntry, error) {
	return s.scheduleRepo.List(ctx)
}

// Replace stores entries as the whole schedule and returns what was stored.
// Nothing is written if any entry is invalid.
func (s *ScheduleService) Replace(ctx context.Context, entries []models.ScheduleEntry) ([]models.ScheduleEntry, error) {
	if len(entries) > maxScheduleEntries {
		return nil, ErrScheduleFull
	}
	normalized := make([]models.ScheduleEntry, 0, len(entries))
	for i, e := range entries {
		n, err := e.Normalize()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		normalized = append(normalized, n)
	}
	if err := s.scheduleRepo.Replace(ctx, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// Delete removes the entry at index; later entries shift down by one.
func (s *ScheduleService) Delete(ctx context.Context, index int) error {
	if index < 0 {
		return ErrScheduleIndexOutOfRange
	}
	err := s.scheduleRepo.DeleteAt(ctx, index)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrScheduleIndexOutOfRange
	}
	return err
}

// Add appends e to the schedule.
func (s *ScheduleService) Add(ctx context.Context, e models.ScheduleEntry) (models.ScheduleEntry, error) {
	n, err := e.Normalize()
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	err = s.scheduleRepo.Append(ctx, n, maxScheduleEntries)
	if errors.Is(err, repository.ErrLimitReached) {
		return models.ScheduleEntry{}, ErrScheduleFull
	}
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	return n, nil
}
