package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"solar_cleaner/internal/models"
	"solar_cleaner/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockCleaner struct {
	state     models.CleanerState
	err       error
	powerArgs []bool
	activeArg []bool
}

func (m *mockCleaner) SetPower(ctx context.Context, on bool) (models.CleanerState, error) {
	m.powerArgs = append(m.powerArgs, on)
	if m.err != nil {
		return models.CleanerState{}, m.err
	}
	m.state.IsOn = on
	return m.state, nil
}
func (m *mockCleaner) SetActive(ctx context.Context, active bool) (models.CleanerState, error) {
	m.activeArg = append(m.activeArg, active)
	if m.err != nil {
		return models.CleanerState{}, m.err
	}
	m.state.IsActive = active
	return m.state, nil
}

type mockMonitoring struct {
	state models.CleanerState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.CleanerState, error) {
	return m.state, m.err
}

type mockDashboard struct {
	resp  models.Dashboard
	err   error
	calls int
}

func (m *mockDashboard) Snapshot(ctx context.Context) (models.Dashboard, error) {
	m.calls++
	return m.resp, m.err
}

type mockBatches struct {
	page      models.BatchPage
	batch     models.Batch
	err       error
	lastQuery service.BatchQuery
	lastID    string
	lastInput service.BatchInput
}

func (m *mockBatches) List(ctx context.Context, q service.BatchQuery) (models.BatchPage, error) {
	m.lastQuery = q
	return m.page, m.err
}
func (m *mockBatches) Get(ctx context.Context, id string) (models.Batch, error) {
	m.lastID = id
	return m.batch, m.err
}
func (m *mockBatches) Ingest(ctx context.Context, in service.BatchInput) (models.Batch, error) {
	m.lastInput = in
	return m.batch, m.err
}
func (m *mockBatches) SeedDemo(ctx context.Context) (int, error) { return 0, m.err }

type mockSchedule struct {
	entries      []models.ScheduleEntry
	err          error
	lastReplace  []models.ScheduleEntry
	lastDeleted  int
	lastAdded    models.ScheduleEntry
	deleteCalled int
}

func (m *mockSchedule) List(ctx context.Context) ([]models.ScheduleEntry, error) {
	return m.entries, m.err
}
func (m *mockSchedule) Replace(ctx context.Context, entries []models.ScheduleEntry) ([]models.ScheduleEntry, error) {
	m.lastReplace = entries
	if m.err != nil {
		return nil, m.err
	}
	m.entries = entries
	return entries, nil
}
func (m *mockSchedule) Delete(ctx context.Context, index int) error {
	m.deleteCalled++
	m.lastDeleted = index
	return m.err
}
func (m *mockSchedule) Add(ctx context.Context, e models.ScheduleEntry) (models.ScheduleEntry, error) {
	m.lastAdded = e
	if m.err != nil {
		return models.ScheduleEntry{}, m.err
	}
	return e, nil
}

type mockEventLog struct {
	resp     []models.CleanerEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.CleanerEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Options) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// serve runs one request through r; body may be empty.
func serve(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
