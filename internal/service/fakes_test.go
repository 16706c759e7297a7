package service

import (
	"context"
	"errors"
	"time"

	"aiot_brain/internal/models"
	"aiot_brain/internal/repository"
	"aiot_brain/internal/thingsboard"
)

// fakePlatform is a scripted TelemetryClient.
type fakePlatform struct {
	loginErr error

	devices    []models.Device
	devicesErr error

	// series is returned for fetch calls in order; the last entry repeats.
	series   []models.TimeSeries
	fetchErr []error

	created   models.Device
	createErr error

	logins      int
	queries     []thingsboard.Query
	tokens      []string
	createdName string
}

var errBoom = errors.New("boom")

func (f *fakePlatform) Login(ctx context.Context) (string, error) {
	f.logins++
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return "tok", nil
}

func (f *fakePlatform) ListDevices(ctx context.Context, token string) ([]models.Device, error) {
	f.tokens = append(f.tokens, token)
	return f.devices, f.devicesErr
}

func (f *fakePlatform) FetchTelemetry(ctx context.Context, token string, q thingsboard.Query) (models.TimeSeries, error) {
	i := len(f.queries)
	f.queries = append(f.queries, q)
	f.tokens = append(f.tokens, token)
	if i < len(f.fetchErr) && f.fetchErr[i] != nil {
		return nil, f.fetchErr[i]
	}
	if len(f.series) == 0 {
		return nil, nil
	}
	if i >= len(f.series) {
		i = len(f.series) - 1
	}
	return f.series[i], nil
}

func (f *fakePlatform) CreateDevice(ctx context.Context, token, name string) (models.Device, error) {
	f.createdName = name
	return f.created, f.createErr
}

// untouched reports whether no platform call was made at all.
func (f *fakePlatform) untouched() bool {
	return f.logins == 0 && len(f.tokens) == 0 && f.createdName == ""
}

type fakeCompleter struct {
	answer string
	err    error

	model  string
	prompt string
	calls  int
}

func (f *fakeCompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	f.calls++
	f.model = model
	f.prompt = prompt
	return f.answer, f.err
}

type fakeAnalysisRepo struct {
	appended  []models.AnalysisRecord
	appendErr error

	records        []models.AnalysisRecord
	listErr        error
	gotFrom, gotTo time.Time
	gotDevice      string
	listCalls      int
}

func (f *fakeAnalysisRepo) Append(ctx context.Context, r models.AnalysisRecord) error {
	f.appended = append(f.appended, r)
	return f.appendErr
}

func (f *fakeAnalysisRepo) List(ctx context.Context, from, to time.Time, deviceID string) ([]models.AnalysisRecord, error) {
	f.listCalls++
	f.gotFrom, f.gotTo, f.gotDevice = from, to, deviceID
	return f.records, f.listErr
}

var _ repository.AnalysisRepo = (*fakeAnalysisRepo)(nil)

// taipei is UTC+8 without DST, so expected instants are easy to write down.
var taipei = time.FixedZone("UTC+8", 8*3600)

// fixedNow is 2025-03-11 14:30 in taipei.
var fixedNow = time.Date(2025, 3, 11, 14, 30, 0, 0, taipei)

func testPlatform(fp *fakePlatform) *platform {
	return newPlatform(fp, nil, taipei, func() time.Time { return fixedNow })
}

func ms(loc *time.Location, y int, m time.Month, d, hh int) int64 {
	return time.Date(y, m, d, hh, 0, 0, 0, loc).UnixMilli()
}

func point(ts int64, v float64) models.TelemetryPoint {
	return models.TelemetryPoint{Timestamp: ts, Value: models.Float(v)}
}

func tempSeries(points ...models.TelemetryPoint) models.TimeSeries {
	return models.TimeSeries{DefaultKey: points}
}
