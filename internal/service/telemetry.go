package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aiot_brain/internal/models"
	"aiot_brain/internal/stats"
	"aiot_brain/internal/thingsboard"
)

const (
	latestWindow = 12 * time.Hour
	weekDays     = 7
	monthDays    = 30
)

type TelemetryService struct {
	p *platform
}

func NewTelemetryService(p *platform) *TelemetryService {
	return &TelemetryService{p: p}
}

func requireDeviceID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: %w", ErrBadRequest, errDeviceIDRequired)
	}
	return id, nil
}

// Latest returns the raw temperature readings of the last 12 hours.
func (s *TelemetryService) Latest(ctx context.Context, deviceID string) (models.TimeSeries, error) {
	deviceID, err := requireDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	token, err := s.p.login(ctx)
	if err != nil {
		return nil, err
	}
	now := s.p.now()
	return s.p.fetch(ctx, token, thingsboard.RawQuery(deviceID, DefaultKey, now.Add(-latestWindow), now))
}

// History returns one platform-averaged point per day, from local midnight
// Days-1 days ago until now.
func (s *TelemetryService) History(ctx context.Context, deviceID string, hp HistoryParams) (models.TimeSeries, error) {
	deviceID, err := requireDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	key := strings.TrimSpace(hp.Key)
	if key == "" {
		key = DefaultKey
	}
	if hp.Days < 1 || hp.Days > MaxHistoryDays {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, errHistoryDaysOutRange)
	}

	token, err := s.p.login(ctx)
	if err != nil {
		return nil, err
	}
	now := s.p.now()
	return s.p.fetch(ctx, token, thingsboard.DailyAvgQuery(deviceID, key, stats.DaysBefore(now, hp.Days-1), now))
}

// Stats builds today/week/daily/month statistics for the temperature key.
// A failed monthly query fails the whole request.
func (s *TelemetryService) Stats(ctx context.Context, deviceID string) (models.StatsReport, error) {
	deviceID, err := requireDeviceID(deviceID)
	if err != nil {
		return models.StatsReport{}, err
	}
	token, err := s.p.login(ctx)
	if err != nil {
		return models.StatsReport{}, err
	}

	now := s.p.now()
	weekly, err := s.p.fetch(ctx, token, thingsboard.RawQuery(deviceID, DefaultKey, stats.DaysBefore(now, weekDays-1), now))
	if err != nil {
		return models.StatsReport{}, err
	}
	if len(stats.FilterValues(weekly[DefaultKey])) == 0 {
		return models.StatsReport{}, noWeeklyData(deviceID)
	}
	monthly, err := s.p.fetch(ctx, token, thingsboard.DailyAvgQuery(deviceID, DefaultKey, stats.DaysBefore(now, monthDays-1), now))
	if err != nil {
		return models.StatsReport{}, err
	}

	report, err := stats.BuildReport(weekly[DefaultKey], monthly[DefaultKey], now)
	if errors.Is(err, stats.ErrNoData) {
		return models.StatsReport{}, noWeeklyData(deviceID)
	}
	if err != nil {
		return models.StatsReport{}, err
	}
	return report, nil
}

func noWeeklyData(deviceID string) error {
	return fmt.Errorf("%w: no temperature readings for device %s in the last %d days", ErrNoData, deviceID, weekDays)
}
