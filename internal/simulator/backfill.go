package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"aiot_brain/internal/logger"
)

const (
	DefaultDays   = 5
	DefaultPerDay = 10
	DefaultPause  = 100 * time.Millisecond
)

// BackfillConfig sizes a backfill run.
type BackfillConfig struct {
	Days   int           // previous calendar days to fill, today excluded
	PerDay int           // readings per day
	Pause  time.Duration // delay between publishes
}

// Backfill publishes timestamped readings spread over previous days.
type Backfill struct {
	pub Publisher
	rng *rand.Rand
	log *logger.Logger
	cfg BackfillConfig
}

func NewBackfill(pub Publisher, cfg BackfillConfig, rng *rand.Rand, log *logger.Logger) *Backfill {
	if cfg.Days <= 0 {
		cfg.Days = DefaultDays
	}
	if cfg.PerDay <= 0 {
		cfg.PerDay = DefaultPerDay
	}
	if cfg.Pause < 0 {
		cfg.Pause = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Backfill{pub: pub, rng: rng, log: log, cfg: cfg}
}

// Readings generates PerDay readings at random times of each of the Days
// calendar days before now, most recent day first, values in [15, 25).
func (b *Backfill) Readings(now time.Time) []HistoricReading {
	out := make([]HistoricReading, 0, b.cfg.Days*b.cfg.PerDay)
	for i := 1; i <= b.cfg.Days; i++ {
		day := now.AddDate(0, 0, -i)
		y, m, d := day.Date()
		for j := 0; j < b.cfg.PerDay; j++ {
			at := time.Date(y, m, d, b.rng.IntN(24), b.rng.IntN(60), b.rng.IntN(60), 0, now.Location())
			out = append(out, HistoricReading{
				Timestamp: at.UnixMilli(),
				Values:    LiveReading{Temperature: uniform(b.rng, backfillMin, backfillMax)},
			})
		}
	}
	return out
}

// Run publishes every reading, pausing between them. It returns how many were
// published; a failed publish is logged and skipped. Cancellation stops the run
// and is returned as the error.
func (b *Backfill) Run(ctx context.Context, now time.Time) (int, error) {
	readings := b.Readings(now)
	sent := 0
	for i, r := range readings {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		payload, err := json.Marshal(r)
		if err != nil {
			return sent, fmt.Errorf("encode reading: %w", err)
		}
		err = b.pub.Publish(ctx, payload)
		record(modeBackfill, err)
		if err != nil {
			if b.log != nil {
				b.log.Errorw("backfill_publish_failed", "err", err, "ts", r.Timestamp)
			}
		} else {
			sent++
			if b.log != nil {
				b.log.Debugw("backfill_published", "ts", r.Timestamp, "temperature", r.Values.Temperature)
			}
		}

		if i < len(readings)-1 && b.cfg.Pause > 0 {
			select {
			case <-ctx.Done():
				return sent, ctx.Err()
			case <-time.After(b.cfg.Pause):
			}
		}
	}
	return sent, nil
}
