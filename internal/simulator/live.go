package simulator

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"aiot_brain/internal/logger"
	"aiot_brain/internal/metrics"
	"aiot_brain/internal/stats"
)

const (
	modeLive     = "live"
	modeBackfill = "backfill"

	liveMin, liveMax         = 25.0, 30.0
	backfillMin, backfillMax = 15.0, 25.0

	DefaultInterval = 200 * time.Second
)

// LiveReading is the payload of a current reading; the platform stamps it on arrival.
type LiveReading struct {
	Temperature float64 `json:"temperature"`
}

// HistoricReading carries its own timestamp so the platform files it in the past.
type HistoricReading struct {
	Timestamp int64       `json:"ts"`
	Values    LiveReading `json:"values"`
}

// uniform returns a value in [lo, hi) rounded to two decimals.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return stats.Round(lo + rng.Float64()*(hi-lo))
}

// Live publishes a fresh reading every interval.
type Live struct {
	pub Publisher
	rng *rand.Rand
	log *logger.Logger
}

// NewLive returns a live simulator. A nil rng is seeded randomly.
func NewLive(pub Publisher, rng *rand.Rand, log *logger.Logger) *Live {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Live{pub: pub, rng: rng, log: log}
}

// Reading draws one live temperature in [25, 30).
func (s *Live) Reading() LiveReading {
	return LiveReading{Temperature: uniform(s.rng, liveMin, liveMax)}
}

// Run publishes immediately and then on every tick until ctx is canceled.
// Publish failures are logged and the loop carries on.
func (s *Live) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s.publishOnce(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.publishOnce(ctx)
		}
	}
}

func (s *Live) publishOnce(ctx context.Context) {
	r := s.Reading()
	payload, _ := json.Marshal(r)
	err := s.pub.Publish(ctx, payload)
	record(modeLive, err)
	if s.log == nil {
		return
	}
	if err != nil {
		s.log.Errorw("live_publish_failed", "err", err)
		return
	}
	s.log.Infow("live_published", "temperature", r.Temperature)
}

func record(mode string, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		outcome = metrics.OutcomeError
	}
	metrics.SimulatorPublishes.WithLabelValues(mode, outcome).Inc()
}
