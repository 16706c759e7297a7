package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aiot_brain/internal/models"
	"aiot_brain/internal/repository"
)

type JournalService struct {
	repo repository.AnalysisRepo
}

func NewJournalService(repo repository.AnalysisRepo) *JournalService {
	return &JournalService{repo: repo}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f JournalFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: %w", ErrBadRequest, errInvalidTimeRange)
	}
	return from, to, strings.TrimSpace(f.DeviceID), nil
}

func (s *JournalService) List(ctx context.Context, f JournalFilter) ([]models.AnalysisRecord, error) {
	from, to, deviceID, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, from, to, deviceID)
}
