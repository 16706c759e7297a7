package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"aiot_brain/internal/models"

	"github.com/google/uuid"
)

// storedTimeLayout is fixed-width so text comparison in SQL follows time order.
const storedTimeLayout = "2006-01-02 15:04:05.000"

const (
	insertAnalysisSQL = `
		INSERT INTO analyses (id, device_id, question, answer, error, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectAnalysesSQL = `SELECT id, device_id, question, answer, error, model, created_at FROM analyses`
)

type AnalysisSQLite struct {
	db *sql.DB
}

func NewAnalysisSQLite(db *sql.DB) *AnalysisSQLite { return &AnalysisSQLite{db: db} }

var _ AnalysisRepo = (*AnalysisSQLite)(nil)

func formatStoredTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

// parseStoredTime accepts our own layout and the RFC3339 form database/sql
// produces when the driver hands back a time.Time.
func parseStoredTime(s string) (time.Time, error) {
	for _, layout := range []string{storedTimeLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised created_at %q", s)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Append inserts a record. Empty ID and zero CreatedAt are filled in.
func (r *AnalysisSQLite) Append(ctx context.Context, rec models.AnalysisRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, insertAnalysisSQL,
		rec.ID,
		strings.TrimSpace(rec.DeviceID),
		rec.Question,
		nullIfEmpty(rec.Answer),
		nullIfEmpty(rec.Error),
		rec.Model,
		formatStoredTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert analysis %s: %w", rec.ID, err)
	}
	return nil
}

// List returns records within [from, to] (zero bounds are open) and, when
// deviceID is set, for that device only, oldest first.
func (r *AnalysisSQLite) List(ctx context.Context, from, to time.Time, deviceID string) ([]models.AnalysisRecord, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, formatStoredTime(from))
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, formatStoredTime(to))
	}
	if deviceID = strings.TrimSpace(deviceID); deviceID != "" {
		conds = append(conds, "device_id = ?")
		args = append(args, deviceID)
	}

	q := selectAnalysesSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.AnalysisRecord, 0, 32)
	for rows.Next() {
		var (
			rec            models.AnalysisRecord
			answer, errMsg sql.NullString
			createdAt      string
		)
		if err := rows.Scan(&rec.ID, &rec.DeviceID, &rec.Question, &answer, &errMsg, &rec.Model, &createdAt); err != nil {
			return nil, err
		}
		rec.Answer = answer.String
		rec.Error = errMsg.String
		if rec.CreatedAt, err = parseStoredTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
