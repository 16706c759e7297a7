package service

import (
	"context"
	"fmt"
	"time"

	"aiot_brain/internal/logger"
	"aiot_brain/internal/models"
	"aiot_brain/internal/thingsboard"
)

// platform is the login-then-call plumbing shared by the services. It holds no
// token: every operation logs in again.
type platform struct {
	client TelemetryClient
	log    *logger.Logger
	loc    *time.Location
	clock  func() time.Time
}

func newPlatform(client TelemetryClient, log *logger.Logger, loc *time.Location, now func() time.Time) *platform {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &platform{client: client, log: log, loc: loc, clock: now}
}

// now returns the current time in the configured location.
func (p *platform) now() time.Time {
	return p.clock().In(p.loc)
}

func (p *platform) login(ctx context.Context) (string, error) {
	token, err := p.client.Login(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuth, err)
	}
	return token, nil
}

func (p *platform) fetch(ctx context.Context, token string, q thingsboard.Query) (models.TimeSeries, error) {
	series, err := p.client.FetchTelemetry(ctx, token, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFetch, err)
	}
	if series == nil {
		series = models.TimeSeries{}
	}
	return series, nil
}
