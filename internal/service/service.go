package service

import (
	"context"
	"time"

	"aiot_brain/internal/logger"
	"aiot_brain/internal/models"
	"aiot_brain/internal/repository"
	"aiot_brain/internal/thingsboard"
)

// TelemetryClient is the subset of the platform client the services use.
type TelemetryClient interface {
	Login(ctx context.Context) (string, error)
	ListDevices(ctx context.Context, token string) ([]models.Device, error)
	FetchTelemetry(ctx context.Context, token string, q thingsboard.Query) (models.TimeSeries, error)
	CreateDevice(ctx context.Context, token, name string) (models.Device, error)
}

// Completer generates text from a single prompt.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Devices lists and registers devices on the platform.
type Devices interface {
	ListDevices(ctx context.Context) ([]models.Device, error)
	CreateDevice(ctx context.Context, name string) (models.Device, error)
}

// Telemetry exposes read-only views over a device's readings.
type Telemetry interface {
	Latest(ctx context.Context, deviceID string) (models.TimeSeries, error)
	History(ctx context.Context, deviceID string, p HistoryParams) (models.TimeSeries, error)
	Stats(ctx context.Context, deviceID string) (models.StatsReport, error)
}

// Analysis answers questions about a device from its recent history.
type Analysis interface {
	Ask(ctx context.Context, req AskRequest) (AskResult, error)
}

// Journal exposes the append-only analysis history.
type Journal interface {
	List(ctx context.Context, f JournalFilter) ([]models.AnalysisRecord, error)
}

// Service aggregates all sub-services for the handlers.
type Service struct {
	Devices
	Telemetry
	Analysis
	Journal
}

// Deps carries everything NewService wires together.
type Deps struct {
	Platform  TelemetryClient
	Completer Completer // nil disables analysis
	Repos     *repository.Repository
	Log       *logger.Logger
	Location  *time.Location
	Model     string
	Language  string
	Now       func() time.Time
}

func NewService(d Deps) *Service {
	p := newPlatform(d.Platform, d.Log, d.Location, d.Now)
	return &Service{
		Devices:   NewDeviceService(p),
		Telemetry: NewTelemetryService(p),
		Analysis:  NewAnalysisService(p, d.Completer, d.Repos.Analyses, d.Model, d.Language),
		Journal:   NewJournalService(d.Repos.Analyses),
	}
}
