package repository

import (
	"context"
	"database/sql"
	"time"

	"aiot_brain/internal/models"
)

// AnalysisRepo is the append-only journal of analysis requests.
type AnalysisRepo interface {
	Append(ctx context.Context, r models.AnalysisRecord) error
	List(ctx context.Context, from, to time.Time, deviceID string) ([]models.AnalysisRecord, error)
}

type Repository struct {
	Analyses AnalysisRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Analyses: NewAnalysisSQLite(db),
	}
}
