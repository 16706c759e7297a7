package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"aiot_brain/internal/models"
	"aiot_brain/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDevices struct {
	list      []models.Device
	listErr   error
	created   models.Device
	createErr error

	lastName string
}

func (m *mockDevices) ListDevices(ctx context.Context) ([]models.Device, error) {
	return m.list, m.listErr
}
func (m *mockDevices) CreateDevice(ctx context.Context, name string) (models.Device, error) {
	m.lastName = name
	return m.created, m.createErr
}

type mockTelemetry struct {
	series models.TimeSeries
	report models.StatsReport
	err    error

	lastDevice  string
	lastHistory service.HistoryParams
	latestCalls int
}

func (m *mockTelemetry) Latest(ctx context.Context, deviceID string) (models.TimeSeries, error) {
	m.latestCalls++
	m.lastDevice = deviceID
	return m.series, m.err
}
func (m *mockTelemetry) History(ctx context.Context, deviceID string, p service.HistoryParams) (models.TimeSeries, error) {
	m.lastDevice = deviceID
	m.lastHistory = p
	return m.series, m.err
}
func (m *mockTelemetry) Stats(ctx context.Context, deviceID string) (models.StatsReport, error) {
	m.lastDevice = deviceID
	return m.report, m.err
}

type mockAnalysis struct {
	answer  string
	err     error
	lastReq service.AskRequest
	calls   int
}

func (m *mockAnalysis) Ask(ctx context.Context, req service.AskRequest) (service.AskResult, error) {
	m.calls++
	m.lastReq = req
	return service.AskResult{Analysis: m.answer}, m.err
}

type mockJournal struct {
	resp       []models.AnalysisRecord
	err        error
	lastFilter service.JournalFilter
}

func (m *mockJournal) List(ctx context.Context, f service.JournalFilter) ([]models.AnalysisRecord, error) {
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Options{Location: time.UTC})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

var errTest = errors.New("upstream exploded")

// errorMessage decodes the {"error": "..."} body.
func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body %q: %v", w.Body.String(), err)
	}
	return body.Error
}
