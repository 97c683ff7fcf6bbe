package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/repository"
	"solar_cleaner/internal/repository/db"
)

// newSQLiteRepo opens a fresh on-disk database with the full schema.
func newSQLiteRepo(t *testing.T) *repository.Repository {
	t.Helper()
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "cleaner.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return repository.NewRepository(conn)
}

func TestSQLite_StateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	empty, err := repo.StateRepo.Load(ctx)
	if err != nil || empty.ID != 0 {
		t.Fatalf("fresh Load() = %+v, %v", empty, err)
	}

	started := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	want := models.CleanerState{IsOn: true, IsActive: true, CleaningStartedAt: started, UpdatedAt: started}
	if err := repo.StateRepo.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	want.IsOn = false
	want.LastCleanedAt = started.Add(15 * time.Minute)
	want.CleaningStartedAt = time.Time{}
	if err := repo.StateRepo.Save(ctx, want); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := repo.StateRepo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != 1 || got.IsOn || !got.IsActive || !got.CleaningStartedAt.IsZero() || !got.LastCleanedAt.Equal(want.LastCleanedAt) {
		t.Fatalf("Load() = %+v", got)
	}
}

func TestSQLite_EventsLatestAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	base := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	types := []string{models.EventPowerOn, models.EventActivated, models.EventPowerOff, models.EventPowerOn}
	for i, typ := range types {
		if err := repo.EventRepo.Append(ctx, models.CleanerEvent{
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
			Type:       typ,
			Metadata:   map[string]any{"seq": i},
		}); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	latest, err := repo.EventRepo.Latest(ctx, 2, models.EventPowerOn, models.EventPowerOff)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(latest) != 2 || latest[0].Type != models.EventPowerOff || latest[1].Type != models.EventPowerOn {
		t.Fatalf("Latest() = %+v", latest)
	}
	if !latest[1].OccurredAt.Equal(base.Add(3 * time.Minute)) {
		t.Fatalf("occurred_at = %v", latest[1].OccurredAt)
	}

	window, err := repo.EventRepo.List(ctx, base.Add(time.Minute), base.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(window) != 2 || window[0].Type != models.EventActivated {
		t.Fatalf("List() = %+v", window)
	}
	if meta, ok := window[0].Metadata.(map[string]any); !ok || meta["seq"] != float64(1) {
		t.Fatalf("metadata = %#v", window[0].Metadata)
	}
}

func TestSQLite_BatchesSearchAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	for _, b := range []models.Batch{
		{ID: "a", Name: "Roof North", Date: "2024-05-01", DamageCount: 1, Images: []models.BatchImage{{URL: "/a1.jpg", DamageCount: 1}}},
		{ID: "b", Name: "Roof South", Date: "2024-05-03", DamageCount: 3, Images: []models.BatchImage{{URL: "/b1.jpg", DamageCount: 1}, {URL: "/b2.jpg", DamageCount: 2}}},
		{ID: "c", Name: "Carport 100%", Date: "2024-04-20", Images: []models.BatchImage{{URL: "/c1.jpg"}}},
	} {
		if err := repo.BatchRepo.Insert(ctx, b); err != nil {
			t.Fatalf("Insert %s: %v", b.ID, err)
		}
	}

	page, total, err := repo.BatchRepo.Search(ctx, "", 2, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 3 || len(page) != 2 || page[0].ID != "b" || page[1].ID != "a" {
		t.Fatalf("first page = %+v (total %d)", page, total)
	}
	if len(page[0].Images) != 2 || page[0].Images[0].URL != "/b1.jpg" {
		t.Fatalf("images = %+v", page[0].Images)
	}

	page, total, err = repo.BatchRepo.Search(ctx, "", 2, 2)
	if err != nil || total != 3 || len(page) != 1 || page[0].ID != "c" {
		t.Fatalf("second page = %+v (total %d, err %v)", page, total, err)
	}

	page, total, err = repo.BatchRepo.Search(ctx, "roof", 5, 0)
	if err != nil || total != 2 || len(page) != 2 {
		t.Fatalf("name search = %+v (total %d, err %v)", page, total, err)
	}
	page, total, err = repo.BatchRepo.Search(ctx, "100%", 5, 0)
	if err != nil || total != 1 || page[0].ID != "c" {
		t.Fatalf("literal %% search = %+v (total %d, err %v)", page, total, err)
	}
	_, total, err = repo.BatchRepo.Search(ctx, "2024-05", 5, 0)
	if err != nil || total != 2 {
		t.Fatalf("date search total %d, err %v", total, err)
	}

	images, err := repo.BatchRepo.CountImages(ctx)
	if err != nil || images != 4 {
		t.Fatalf("CountImages() = %d, %v", images, err)
	}
	if _, err := repo.BatchRepo.Get(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Get(missing) err = %v", err)
	}
}

func TestSQLite_BatchSearchFoldsNonASCII(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	if err := repo.BatchRepo.Insert(ctx, models.Batch{ID: "o", Name: "Öst Panel", Date: "2024-06-01"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	for _, q := range []string{"öst", "Öst", "ÖST", "panel", "st pa"} {
		page, total, err := repo.BatchRepo.Search(ctx, q, 5, 0)
		if err != nil || total != 1 || len(page) != 1 || page[0].Name != "Öst Panel" {
			t.Fatalf("Search(%q) = %+v (total %d, err %v)", q, page, total, err)
		}
	}
	if _, total, err := repo.BatchRepo.Search(ctx, "west", 5, 0); err != nil || total != 0 {
		t.Fatalf("Search(west) total %d, err %v", total, err)
	}
}

func TestInitDB_FillsNameFoldOnOlderDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	old, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE batches (id TEXT PRIMARY KEY, name TEXT NOT NULL, batch_date TEXT NOT NULL, damage_count INTEGER NOT NULL DEFAULT 0, created_at TIMESTAMP NOT NULL)`,
		`INSERT INTO batches (id, name, batch_date, damage_count, created_at) VALUES ('s', 'Süd Dach', '2024-06-02', 0, '2024-06-02 00:00:00')`,
	} {
		if _, err := old.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	_ = old.Close()

	conn, err := db.InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	page, total, err := repository.NewRepository(conn).BatchRepo.Search(context.Background(), "SÜD", 5, 0)
	if err != nil || total != 1 || page[0].ID != "s" {
		t.Fatalf("Search(SÜD) = %+v (total %d, err %v)", page, total, err)
	}
}

func TestSQLite_ScheduleEditing(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	entries := []models.ScheduleEntry{
		{Day: models.Monday, Time: "09:00"},
		{Day: models.Wednesday, Time: "12:30"},
		{Day: models.Friday, Time: "17:00"},
	}
	if err := repo.ScheduleRepo.Replace(ctx, entries); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := repo.ScheduleRepo.Append(ctx, models.ScheduleEntry{Day: models.Sunday, Time: "08:00"}, 168); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.ScheduleRepo.DeleteAt(ctx, 1); err != nil {
		t.Fatalf("DeleteAt: %v", err)
	}
	if err := repo.ScheduleRepo.DeleteAt(ctx, 3); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("DeleteAt(3) err = %v", err)
	}

	got, err := repo.ScheduleRepo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []models.ScheduleEntry{
		{Day: models.Monday, Time: "09:00"},
		{Day: models.Friday, Time: "17:00"},
		{Day: models.Sunday, Time: "08:00"},
	}
	if len(got) != len(want) {
		t.Fatalf("List() = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSQLite_ScheduleAppendHoldsLimitUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	const limit = 5
	full := make([]models.ScheduleEntry, limit-1)
	for i := range full {
		full[i] = models.ScheduleEntry{Day: models.Monday, Time: "09:00"}
	}
	if err := repo.ScheduleRepo.Replace(ctx, full); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		added    int
		rejected int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.ScheduleRepo.Append(ctx, models.ScheduleEntry{Day: models.Tuesday, Time: "10:00"}, limit)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				added++
			case errors.Is(err, repository.ErrLimitReached):
				rejected++
			default:
				t.Errorf("Append: %v", err)
			}
		}()
	}
	wg.Wait()

	if added != 1 || rejected != 7 {
		t.Fatalf("added %d, rejected %d; want 1 and 7", added, rejected)
	}
	got, err := repo.ScheduleRepo.List(ctx)
	if err != nil || len(got) != limit {
		t.Fatalf("List() len %d, err %v", len(got), err)
	}
}

func TestSQLite_UsersUnique(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	id, err := repo.Auth.Create(ctx, "operator", "hash")
	if err != nil || id != 1 {
		t.Fatalf("Create() = %d, %v", id, err)
	}
	if _, err := repo.Auth.Create(ctx, "operator", "other"); !errors.Is(err, repository.ErrUserExists) {
		t.Fatalf("duplicate Create err = %v", err)
	}
	u, err := repo.Auth.GetByUsername(ctx, "operator")
	if err != nil || u.ID != 1 || u.PasswordHash != "hash" {
		t.Fatalf("GetByUsername() = %+v, %v", u, err)
	}
}
