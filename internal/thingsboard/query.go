package thingsboard

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Aggregation selects raw or server-side bucketed values.
type Aggregation string

const (
	AggNone Aggregation = "NONE"
	AggAvg  Aggregation = "AVG"
)

// Platform defaults for historical queries.
const (
	RawLimit    = 10000
	DayInterval = 24 * time.Hour
)

// Query describes one historical timeseries request.
type Query struct {
	DeviceID string
	Keys     []string
	Start    time.Time
	End      time.Time
	Agg      Aggregation
	// Interval is the bucket width for AggAvg; ignored for AggNone.
	Interval time.Duration
}

// RawQuery asks for up to RawLimit unaggregated points.
func RawQuery(deviceID, key string, start, end time.Time) Query {
	return Query{DeviceID: deviceID, Keys: []string{key}, Start: start, End: end, Agg: AggNone}
}

// DailyAvgQuery asks for one averaged point per day.
func DailyAvgQuery(deviceID, key string, start, end time.Time) Query {
	return Query{DeviceID: deviceID, Keys: []string{key}, Start: start, End: end, Agg: AggAvg, Interval: DayInterval}
}

func (q Query) path() (string, error) {
	if q.DeviceID == "" {
		return "", errors.New("device id is required")
	}
	if len(q.Keys) == 0 {
		return "", errors.New("at least one key is required")
	}
	if q.End.Before(q.Start) {
		return "", errors.New("end is before start")
	}

	agg := q.Agg
	if agg == "" {
		agg = AggNone
	}

	v := url.Values{}
	v.Set("keys", strings.Join(q.Keys, ","))
	v.Set("startTs", strconv.FormatInt(q.Start.UnixMilli(), 10))
	v.Set("endTs", strconv.FormatInt(q.End.UnixMilli(), 10))
	v.Set("agg", string(agg))
	if agg == AggNone {
		v.Set("limit", strconv.Itoa(RawLimit))
	} else {
		interval := q.Interval
		if interval <= 0 {
			interval = DayInterval
		}
		v.Set("interval", strconv.FormatInt(interval.Milliseconds(), 10))
	}

	return "/api/plugins/telemetry/DEVICE/" + url.PathEscape(q.DeviceID) + "/values/timeseries?" + v.Encode(), nil
}
