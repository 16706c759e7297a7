package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// TelemetryPoint is one timestamped reading as returned by the telemetry platform.
// Value is nil when the platform reported no value for that timestamp.
type TelemetryPoint struct {
	Timestamp int64    `json:"ts"` // epoch millis
	Value     *float64 `json:"value"`
}

// TimeSeries maps a telemetry key (e.g. "temperature") to its ordered points.
type TimeSeries map[string][]TelemetryPoint

// rawPoint mirrors the wire shape; the platform encodes numbers as strings.
type rawPoint struct {
	Timestamp int64           `json:"ts"`
	Value     json.RawMessage `json:"value"`
}

// UnmarshalJSON accepts "23.5", 23.5 and null for the value field.
// Non-finite values such as "NaN" or "Infinity" decode as null.
func (p *TelemetryPoint) UnmarshalJSON(data []byte) error {
	var raw rawPoint
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Timestamp = raw.Timestamp
	p.Value = nil

	v := bytes.TrimSpace(raw.Value)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return nil
	}

	var s string
	if v[0] == '"' {
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
	} else {
		s = string(v)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("telemetry value at ts=%d: %w", raw.Timestamp, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	p.Value = &f
	return nil
}

// Float returns a pointer to v, for building points in code and tests.
func Float(v float64) *float64 { return &v }
