package service

import (
	"context"
	"testing"
	"time"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"
)

type fakeStateRepo struct {
	loadResp   models.CleanerState
	loadErr    error
	saveErr    error
	savedCalls []models.CleanerState

	// onSave runs before each Save is recorded.
	onSave func()
}

func (f *fakeStateRepo) Load(ctx context.Context) (models.CleanerState, error) {
	return f.loadResp, f.loadErr
}

// Save records s and makes it the next Load result.
func (f *fakeStateRepo) Save(ctx context.Context, s models.CleanerState) error {
	if f.onSave != nil {
		f.onSave()
	}
	f.savedCalls = append(f.savedCalls, s)
	if f.saveErr == nil {
		f.loadResp = s
	}
	return f.saveErr
}

type fakeEventRepo struct {
	events    []models.CleanerEvent
	appendErr error
	listErr   error

	gotFrom  time.Time
	gotTo    time.Time
	gotTypes []string
	gotLimit int
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.CleanerEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, types ...string) ([]models.CleanerEvent, error) {
	f.gotFrom, f.gotTo, f.gotTypes = from, to, types
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.CleanerEvent
	for _, e := range f.filter(types) {
		if (from.IsZero() || !e.OccurredAt.Before(from)) && (to.IsZero() || !e.OccurredAt.After(to)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Latest(ctx context.Context, limit int, types ...string) ([]models.CleanerEvent, error) {
	f.gotLimit, f.gotTypes = limit, types
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.filter(types)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeEventRepo) filter(types []string) []models.CleanerEvent {
	var out []models.CleanerEvent
	for _, e := range f.events {
		if len(types) == 0 || containsString(types, e.Type) || (len(types) == 1 && types[0] == "") {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeEventRepo) types() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeBatchRepo struct {
	batches   []models.Batch
	images    int
	err       error
	gotSearch string
	gotLimit  int
	gotOffset int
}

func (f *fakeBatchRepo) Insert(ctx context.Context, b models.Batch) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, b)
	return nil
}

func (f *fakeBatchRepo) Get(ctx context.Context, id string) (models.Batch, error) {
	if f.err != nil {
		return models.Batch{}, f.err
	}
	for _, b := range f.batches {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Batch{}, repository.ErrNotFound
}

func (f *fakeBatchRepo) Search(ctx context.Context, search string, limit, offset int) ([]models.Batch, int, error) {
	f.gotSearch, f.gotLimit, f.gotOffset = search, limit, offset
	if f.err != nil {
		return nil, 0, f.err
	}
	if offset >= len(f.batches) {
		return nil, len(f.batches), nil
	}
	end := offset + limit
	if end > len(f.batches) {
		end = len(f.batches)
	}
	return f.batches[offset:end], len(f.batches), nil
}

func (f *fakeBatchRepo) CountImages(ctx context.Context) (int, error) { return f.images, f.err }

func (f *fakeBatchRepo) Count(ctx context.Context) (int, error) { return len(f.batches), f.err }

type fakeScheduleRepo struct {
	entries []models.ScheduleEntry
	err     error
}

func (f *fakeScheduleRepo) List(ctx context.Context) ([]models.ScheduleEntry, error) {
	return append([]models.ScheduleEntry(nil), f.entries...), f.err
}

func (f *fakeScheduleRepo) Replace(ctx context.Context, entries []models.ScheduleEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append([]models.ScheduleEntry(nil), entries...)
	return nil
}

func (f *fakeScheduleRepo) Append(ctx context.Context, e models.ScheduleEntry, limit int) error {
	if f.err != nil {
		return f.err
	}
	if len(f.entries) >= limit {
		return repository.ErrLimitReached
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeScheduleRepo) DeleteAt(ctx context.Context, index int) error {
	if f.err != nil {
		return f.err
	}
	if index < 0 || index >= len(f.entries) {
		return repository.ErrNotFound
	}
	f.entries = append(f.entries[:index], f.entries[index+1:]...)
	return nil
}

func containsString(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

func assertWithinTimeWindow(t *testing.T, ts, start, end time.Time) {
	t.Helper()
	if ts.Before(start) || ts.After(end) {
		t.Fatalf("time %v not within window [%v, %v]", ts, start, end)
	}
}
