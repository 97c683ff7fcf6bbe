package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"solar_cleaner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory server for the view tests. fail makes every call 500.
type fakeAPI struct {
	mu       sync.Mutex
	fail     bool
	on       bool
	active   bool
	batches  []models.Batch
	schedule []models.ScheduleEntry
	lastPut  []models.ScheduleEntry
}

func (f *fakeAPI) mux() *http.ServeMux {
	mux := http.NewServeMux()
	guard := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.fail {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
				return
			}
			h(w, r)
		}
	}
	mux.HandleFunc("GET /api/dashboard", guard(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Dashboard{IsCleanerOn: f.on, IsActive: f.active, LastCleaningTime: "never", ImagesCaptured: 3})
	}))
	mux.HandleFunc("POST /api/cleaner/toggle", guard(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]bool
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.on = body["state"]
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "newState": f.on})
	}))
	mux.HandleFunc("POST /api/cleaner/active", guard(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]bool
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.active = body["active"]
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "newActiveState": f.active})
	}))
	mux.HandleFunc("GET /api/batches", guard(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		start := min((page-1)*models.BatchPageSize, len(f.batches))
		end := min(start+models.BatchPageSize, len(f.batches))
		writeJSON(w, http.StatusOK, models.BatchPage{Batches: f.batches[start:end], TotalCount: len(f.batches)})
	}))
	mux.HandleFunc("GET /api/batches/{id}", guard(func(w http.ResponseWriter, r *http.Request) {
		for _, b := range f.batches {
			if b.ID == r.PathValue("id") {
				writeJSON(w, http.StatusOK, b)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "batch not found"})
	}))
	mux.HandleFunc("GET /api/schedule", guard(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, f.schedule)
	}))
	mux.HandleFunc("PUT /api/schedule", guard(func(w http.ResponseWriter, r *http.Request) {
		var entries []models.ScheduleEntry
		_ = json.NewDecoder(r.Body).Decode(&entries)
		f.lastPut = entries
		f.schedule = entries
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "updatedSchedule": entries})
	}))
	mux.HandleFunc("POST /api/schedule", guard(func(w http.ResponseWriter, r *http.Request) {
		var e models.ScheduleEntry
		_ = json.NewDecoder(r.Body).Decode(&e)
		f.schedule = append(f.schedule, e)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "newScheduleItem": e})
	}))
	mux.HandleFunc("DELETE /api/schedule/{index}", guard(func(w http.ResponseWriter, r *http.Request) {
		i, _ := strconv.Atoi(r.PathValue("index"))
		if i < 0 || i >= len(f.schedule) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "schedule index out of range"})
			return
		}
		f.schedule = append(f.schedule[:i], f.schedule[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}))
	return mux
}

func (f *fakeAPI) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

func (f *fakeAPI) setBatches(b []models.Batch) {
	f.mu.Lock()
	f.batches = b
	f.mu.Unlock()
}

func (f *fakeAPI) lastPutSchedule() []models.ScheduleEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastPut
}

func twelveBatches() []models.Batch {
	out := make([]models.Batch, 0, 12)
	for i := 1; i <= 12; i++ {
		out = append(out, models.Batch{ID: strconv.Itoa(i), Name: "Batch " + strconv.Itoa(i)})
	}
	return out
}

func TestDashboardView_ToggleUpdatesOnSuccessOnly(t *testing.T) {
	api := &fakeAPI{}
	v := NewDashboardView(newTestClient(t, api.mux()), nil)
	at := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return at }
	ctx := context.Background()

	require.NoError(t, v.Load(ctx))
	assert.False(t, v.IsCleanerOn)
	assert.Equal(t, 3, v.ImagesCaptured)

	require.NoError(t, v.ToggleCleaner(ctx))
	assert.True(t, v.IsCleanerOn)
	require.Len(t, v.OnOffHistory, 1)
	assert.Equal(t, models.HistoryPoint{State: true, Time: at}, v.OnOffHistory[0])

	api.setFail(true)
	require.Error(t, v.ToggleCleaner(ctx))
	assert.True(t, v.IsCleanerOn, "failed toggle must not change local state")
	assert.Len(t, v.OnOffHistory, 1)
	assert.Equal(t, MsgToggle, v.Err)

	require.Error(t, v.ToggleActive(ctx))
	assert.False(t, v.IsActive)
	assert.Equal(t, MsgActive, v.Err)

	api.setFail(false)
	require.NoError(t, v.ToggleActive(ctx))
	assert.True(t, v.IsActive)
	assert.Empty(t, v.Err)
}

func TestDashboardView_HistoryKeepsLastFive(t *testing.T) {
	api := &fakeAPI{}
	v := NewDashboardView(newTestClient(t, api.mux()), nil)
	base := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	calls := 0
	v.now = func() time.Time { calls++; return base.Add(time.Duration(calls) * time.Minute) }

	for i := 0; i < 7; i++ {
		require.NoError(t, v.ToggleCleaner(context.Background()))
	}
	require.Len(t, v.OnOffHistory, models.HistorySize)
	assert.Equal(t, base.Add(3*time.Minute), v.OnOffHistory[0].Time)
	assert.Equal(t, base.Add(7*time.Minute), v.OnOffHistory[4].Time)
	assert.True(t, v.OnOffHistory[4].State, "seventh toggle leaves the cleaner on")
}

func TestBatchBrowser_Paging(t *testing.T) {
	api := &fakeAPI{batches: twelveBatches()}
	b := NewBatchBrowser(newTestClient(t, api.mux()), nil)
	ctx := context.Background()

	require.NoError(t, b.Load(ctx))
	assert.Equal(t, 1, b.Page)
	assert.False(t, b.HasPrev())
	assert.True(t, b.HasNext())
	first, last, total := b.Range()
	assert.Equal(t, [3]int{1, 5, 12}, [3]int{first, last, total})

	require.NoError(t, b.Next(ctx))
	require.NoError(t, b.Next(ctx))
	assert.Equal(t, 3, b.Page)
	assert.False(t, b.HasNext())
	assert.Len(t, b.Batches, 2)
	first, last, total = b.Range()
	assert.Equal(t, [3]int{11, 12, 12}, [3]int{first, last, total})

	require.NoError(t, b.Next(ctx))
	assert.Equal(t, 3, b.Page, "Next past the last page is a no-op")

	require.NoError(t, b.Prev(ctx))
	require.NoError(t, b.Prev(ctx))
	require.NoError(t, b.Prev(ctx))
	assert.Equal(t, 1, b.Page, "Prev before the first page is a no-op")
}

func TestBatchBrowser_SearchResetsPage(t *testing.T) {
	api := &fakeAPI{batches: twelveBatches()}
	b := NewBatchBrowser(newTestClient(t, api.mux()), nil)
	ctx := context.Background()

	require.NoError(t, b.Load(ctx))
	require.NoError(t, b.Next(ctx))
	require.NoError(t, b.Search(ctx, "  Batch "))
	assert.Equal(t, 1, b.Page)
	assert.Equal(t, "Batch", b.SearchTerm)
}

func TestBatchBrowser_EmptyRangeAndFailure(t *testing.T) {
	api := &fakeAPI{}
	b := NewBatchBrowser(newTestClient(t, api.mux()), nil)
	ctx := context.Background()

	require.NoError(t, b.Load(ctx))
	first, last, total := b.Range()
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{first, last, total})
	assert.False(t, b.HasNext())

	api.setBatches(twelveBatches())
	require.NoError(t, b.Load(ctx))
	api.setFail(true)
	require.Error(t, b.Next(ctx))
	assert.Equal(t, 1, b.Page, "failed Next must not move the page")
	assert.Equal(t, MsgLoadBatches, b.Err)
}

func TestBatchBrowser_Select(t *testing.T) {
	api := &fakeAPI{batches: twelveBatches()}
	b := NewBatchBrowser(newTestClient(t, api.mux()), nil)
	ctx := context.Background()

	require.NoError(t, b.Select(ctx, "7"))
	require.NotNil(t, b.Selected)
	assert.Equal(t, "Batch 7", b.Selected.Name)

	require.Error(t, b.Select(ctx, "99"))
	assert.Equal(t, "7", b.Selected.ID, "failed select keeps the previous selection")
	assert.Equal(t, MsgLoadBatch, b.Err)
}

func TestScheduleEditor_SaveEditReplacesIndex(t *testing.T) {
	api := &fakeAPI{schedule: []models.ScheduleEntry{
		{Day: models.Monday, Time: "09:00"},
		{Day: models.Wednesday, Time: "14:00"},
		{Day: models.Friday, Time: "10:00"},
	}}
	s := NewScheduleEditor(newTestClient(t, api.mux()), nil)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	require.NoError(t, s.SaveEdit(ctx, 1, models.ScheduleEntry{Day: models.Thursday, Time: "16:00"}))

	want := []models.ScheduleEntry{
		{Day: models.Monday, Time: "09:00"},
		{Day: models.Thursday, Time: "16:00"},
		{Day: models.Friday, Time: "10:00"},
	}
	assert.Equal(t, want, api.lastPutSchedule(), "the whole list is sent with only the edited index changed")
	assert.Equal(t, want, s.Entries)

	assert.ErrorIs(t, s.SaveEdit(ctx, 3, models.ScheduleEntry{Day: models.Monday, Time: "09:00"}), ErrNotFound)
}

func TestScheduleEditor_FailureKeepsLocalList(t *testing.T) {
	api := &fakeAPI{schedule: []models.ScheduleEntry{{Day: models.Monday, Time: "09:00"}}}
	s := NewScheduleEditor(newTestClient(t, api.mux()), nil)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	api.setFail(true)
	require.Error(t, s.SaveEdit(ctx, 0, models.ScheduleEntry{Day: models.Sunday, Time: "08:00"}))
	require.Error(t, s.Delete(ctx, 0))
	require.Error(t, s.Add(ctx, models.ScheduleEntry{Day: models.Sunday, Time: "08:00"}))
	assert.Equal(t, []models.ScheduleEntry{{Day: models.Monday, Time: "09:00"}}, s.Entries)
	assert.Equal(t, MsgAddEntry, s.Err)
}

func TestScheduleEditor_DeleteAndAdd(t *testing.T) {
	api := &fakeAPI{schedule: []models.ScheduleEntry{
		{Day: models.Monday, Time: "09:00"},
		{Day: models.Wednesday, Time: "14:00"},
	}}
	s := NewScheduleEditor(newTestClient(t, api.mux()), nil)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Delete(ctx, 0))
	assert.Equal(t, []models.ScheduleEntry{{Day: models.Wednesday, Time: "14:00"}}, s.Entries)

	require.Error(t, s.Delete(ctx, 4))
	assert.Len(t, s.Entries, 1)

	assert.ErrorIs(t, s.Add(ctx, models.ScheduleEntry{Day: models.Friday}), ErrIncompleteEntry)
	assert.Equal(t, MsgEntryRequired, s.Err)

	require.NoError(t, s.Add(ctx, models.ScheduleEntry{Day: models.Friday, Time: "10:00"}))
	assert.Equal(t, []models.ScheduleEntry{
		{Day: models.Wednesday, Time: "14:00"},
		{Day: models.Friday, Time: "10:00"},
	}, s.Entries)
	assert.Empty(t, s.Err)
}
