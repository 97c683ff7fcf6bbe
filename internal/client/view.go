package client

import (
	"context"
	"errors"
	"strings"
	"time"

	"solar_cleaner/internal/logger"
	"solar_cleaner/internal/models"
)

// Messages shown to the operator when a call fails. Details go to the log.
const (
	MsgLoadDashboard = "Could not load the dashboard."
	MsgToggle        = "Could not toggle the cleaner."
	MsgActive        = "Could not change the active state."
	MsgLoadBatches   = "Could not load ML batches."
	MsgLoadBatch     = "Could not load the batch."
	MsgLoadSchedule  = "Could not load the schedule."
	MsgSaveSchedule  = "Could not save the schedule."
	MsgDeleteEntry   = "Could not delete the schedule entry."
	MsgAddEntry      = "Could not add the schedule entry."
	MsgEntryRequired = "Pick a day and a time."
)

// ErrIncompleteEntry is returned by ScheduleEditor.Add when day or time is missing.
var ErrIncompleteEntry = errors.New("schedule entry needs a day and a time")

func orNop(log *logger.Logger) *logger.Logger {
	if log == nil {
		return logger.Nop()
	}
	return log
}

// DashboardView holds the control panel state. Local state only changes after
// a successful server answer.
type DashboardView struct {
	api *Client
	log *logger.Logger
	now func() time.Time

	IsCleanerOn      bool
	IsActive         bool
	OnOffHistory     []models.HistoryPoint
	LastCleaningTime string
	ImagesCaptured   int
	// Err is the last user-facing failure message, empty after a success.
	Err string
}

func NewDashboardView(api *Client, log *logger.Logger) *DashboardView {
	return &DashboardView{api: api, log: orNop(log), now: time.Now}
}

// Load replaces the local state with the server snapshot.
func (v *DashboardView) Load(ctx context.Context) error {
	d, err := v.api.Dashboard(ctx)
	if err != nil {
		v.fail(MsgLoadDashboard, "dashboard_load_failed", err)
		return err
	}
	v.IsCleanerOn = d.IsCleanerOn
	v.IsActive = d.IsActive
	v.OnOffHistory = d.OnOffHistory
	v.LastCleaningTime = d.LastCleaningTime
	v.ImagesCaptured = d.ImagesCaptured
	v.Err = ""
	return nil
}

// ToggleCleaner asks for the opposite power state. On success it adopts the
// server's state and appends it to the history, keeping the last HistorySize points.
func (v *DashboardView) ToggleCleaner(ctx context.Context) error {
	ok, state, err := v.api.ToggleCleaner(ctx, !v.IsCleanerOn)
	if err != nil {
		v.fail(MsgToggle, "cleaner_toggle_failed", err)
		return err
	}
	if !ok {
		return nil
	}
	v.IsCleanerOn = state
	v.OnOffHistory = append(v.OnOffHistory, models.HistoryPoint{State: state, Time: v.now().UTC()})
	if n := len(v.OnOffHistory); n > models.HistorySize {
		v.OnOffHistory = append([]models.HistoryPoint(nil), v.OnOffHistory[n-models.HistorySize:]...)
	}
	v.Err = ""
	return nil
}

// ToggleActive flips the active flag on success.
func (v *DashboardView) ToggleActive(ctx context.Context) error {
	ok, active, err := v.api.SetActive(ctx, !v.IsActive)
	if err != nil {
		v.fail(MsgActive, "cleaner_set_active_failed", err)
		return err
	}
	if ok {
		v.IsActive = active
		v.Err = ""
	}
	return nil
}

func (v *DashboardView) fail(msg, key string, err error) {
	v.Err = msg
	v.log.Errorw(key, "err", err)
}

// BatchBrowser pages through ML batches the way the viewer does.
type BatchBrowser struct {
	api *Client
	log *logger.Logger

	Page       int
	SearchTerm string
	Batches    []models.Batch
	TotalCount int
	Selected   *models.Batch
	Err        string
}

func NewBatchBrowser(api *Client, log *logger.Logger) *BatchBrowser {
	return &BatchBrowser{api: api, log: orNop(log), Page: 1}
}

// Load fetches the current page.
func (b *BatchBrowser) Load(ctx context.Context) error {
	page, err := b.api.ListBatches(ctx, b.Page, b.SearchTerm)
	if err != nil {
		b.Err = MsgLoadBatches
		b.log.Errorw("batches_load_failed", "err", err, "page", b.Page, "search", b.SearchTerm)
		return err
	}
	b.Batches = page.Batches
	b.TotalCount = page.TotalCount
	b.Err = ""
	return nil
}

// Search sets the filter and reloads from page 1.
func (b *BatchBrowser) Search(ctx context.Context, term string) error {
	b.SearchTerm = strings.TrimSpace(term)
	b.Page = 1
	return b.Load(ctx)
}

// HasNext reports whether another page exists after the current one.
func (b *BatchBrowser) HasNext() bool {
	return b.Page*models.BatchPageSize < b.TotalCount
}

// HasPrev reports whether the current page is past the first.
func (b *BatchBrowser) HasPrev() bool {
	return b.Page > 1
}

// Next moves forward one page when HasNext; otherwise it does nothing.
func (b *BatchBrowser) Next(ctx context.Context) error {
	if !b.HasNext() {
		return nil
	}
	b.Page++
	if err := b.Load(ctx); err != nil {
		b.Page--
		return err
	}
	return nil
}

// Prev moves back one page when HasPrev; otherwise it does nothing.
func (b *BatchBrowser) Prev(ctx context.Context) error {
	if !b.HasPrev() {
		return nil
	}
	b.Page--
	if err := b.Load(ctx); err != nil {
		b.Page++
		return err
	}
	return nil
}

// Range returns the 1-based positions of the first and last batch on the
// current page and the total, as in "Showing 6-10 of 12".
func (b *BatchBrowser) Range() (first, last, total int) {
	total = b.TotalCount
	first = min((b.Page-1)*models.BatchPageSize+1, total)
	last = min(b.Page*models.BatchPageSize, total)
	return first, last, total
}

// Select fetches a batch with its images and makes it the selected one.
func (b *BatchBrowser) Select(ctx context.Context, id string) error {
	batch, err := b.api.GetBatch(ctx, id)
	if err != nil {
		b.Err = MsgLoadBatch
		b.log.Errorw("batch_select_failed", "err", err, "id", id)
		return err
	}
	b.Selected = &batch
	b.Err = ""
	return nil
}

// ScheduleEditor edits the cleaning schedule. The local list only changes
// after the server confirms.
type ScheduleEditor struct {
	api *Client
	log *logger.Logger

	Entries []models.ScheduleEntry
	Err     string
}

func NewScheduleEditor(api *Client, log *logger.Logger) *ScheduleEditor {
	return &ScheduleEditor{api: api, log: orNop(log)}
}

// Load fetches the schedule.
func (s *ScheduleEditor) Load(ctx context.Context) error {
	entries, err := s.api.Schedule(ctx)
	if err != nil {
		s.fail(MsgLoadSchedule, "schedule_load_failed", err)
		return err
	}
	s.Entries = entries
	s.Err = ""
	return nil
}

// SaveEdit replaces the entry at index and sends the whole list.
func (s *ScheduleEditor) SaveEdit(ctx context.Context, index int, e models.ScheduleEntry) error {
	if index < 0 || index >= len(s.Entries) {
		s.Err = MsgSaveSchedule
		return ErrNotFound
	}
	next := append([]models.ScheduleEntry(nil), s.Entries...)
	next[index] = e

	ok, stored, err := s.api.ReplaceSchedule(ctx, next)
	if err != nil {
		s.fail(MsgSaveSchedule, "schedule_save_failed", err, "index", index)
		return err
	}
	if ok {
		s.Entries = stored
		s.Err = ""
	}
	return nil
}

// Delete removes the entry at index on the server, then locally.
func (s *ScheduleEditor) Delete(ctx context.Context, index int) error {
	ok, err := s.api.DeleteScheduleItem(ctx, index)
	if err != nil {
		s.fail(MsgDeleteEntry, "schedule_delete_failed", err, "index", index)
		return err
	}
	if ok && index >= 0 && index < len(s.Entries) {
		s.Entries = append(s.Entries[:index:index], s.Entries[index+1:]...)
		s.Err = ""
	}
	return nil
}

// Add appends a new entry; both day and time are required.
func (s *ScheduleEditor) Add(ctx context.Context, e models.ScheduleEntry) error {
	if strings.TrimSpace(string(e.Day)) == "" || strings.TrimSpace(e.Time) == "" {
		s.Err = MsgEntryRequired
		return ErrIncompleteEntry
	}
	ok, stored, err := s.api.AddScheduleItem(ctx, e)
	if err != nil {
		s.fail(MsgAddEntry, "schedule_add_failed", err, "day", e.Day, "time", e.Time)
		return err
	}
	if ok {
		s.Entries = append(s.Entries, stored)
		s.Err = ""
	}
	return nil
}

func (s *ScheduleEditor) fail(msg, key string, err error, kv ...any) {
	s.Err = msg
	s.log.Errorw(key, append([]any{"err", err}, kv...)...)
}
