// Package stats turns raw telemetry points into daily, weekly and monthly summaries.
//
// Every function here is pure: results depend only on the points, the reference
// instant and its location. Arithmetic runs on decimals and every derived number
// is rounded to two places, half away from zero.
package stats

import (
	"errors"
	"math"
	"sort"
	"time"

	"aiot_brain/internal/models"

	"github.com/shopspring/decimal"
)

// ErrNoData is returned when no point carries a value after null filtering.
var ErrNoData = errors.New("no telemetry values in range")

// DateLayout is the calendar-date format used for daily keys.
const DateLayout = "2006-01-02"

const roundPlaces = 2

// hasValue reports whether p carries a finite reading. NaN and infinities
// count as absent.
func hasValue(p models.TelemetryPoint) bool {
	return p.Value != nil && !math.IsNaN(*p.Value) && !math.IsInf(*p.Value, 0)
}

// FilterNulls returns the points that carry a value, preserving order.
func FilterNulls(points []models.TelemetryPoint) []models.TelemetryPoint {
	out := make([]models.TelemetryPoint, 0, len(points))
	for _, p := range points {
		if hasValue(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilterValues returns the non-null values of points, preserving order.
func FilterValues(points []models.TelemetryPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if hasValue(p) {
			out = append(out, *p.Value)
		}
	}
	return out
}

// GroupByDay partitions non-null values by the local calendar day of their timestamp.
func GroupByDay(points []models.TelemetryPoint, loc *time.Location) map[string][]float64 {
	days := make(map[string][]float64)
	for _, p := range points {
		if !hasValue(p) {
			continue
		}
		key := DayOf(p.Timestamp, loc)
		days[key] = append(days[key], *p.Value)
	}
	return days
}

// DayOf formats an epoch-millis timestamp as its calendar date in loc.
func DayOf(tsMillis int64, loc *time.Location) string {
	return time.UnixMilli(tsMillis).In(loc).Format(DateLayout)
}

// StartOfDay returns local midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBefore returns local midnight n calendar days before t's day.
func DaysBefore(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, -n)
}

// summary keeps exact running aggregates for a set of values.
type summary struct {
	max, min, sum decimal.Decimal
	n             int
}

func summarize(values []float64) summary {
	var s summary
	for i, v := range values {
		d := decimal.NewFromFloat(v)
		if i == 0 {
			s.max, s.min = d, d
		} else {
			s.max = decimal.Max(s.max, d)
			s.min = decimal.Min(s.min, d)
		}
		s.sum = s.sum.Add(d)
		s.n++
	}
	return s
}

func (s summary) avg() decimal.Decimal {
	return s.sum.Div(decimal.NewFromInt(int64(s.n)))
}

func round(d decimal.Decimal) float64 {
	return d.Round(roundPlaces).InexactFloat64()
}

// Round rounds v to two decimal places, half away from zero.
func Round(v float64) float64 {
	return round(decimal.NewFromFloat(v))
}

// Period summarises values. Callers must guard against an empty slice:
// an empty input is a programming error and panics.
func Period(values []float64) models.PeriodStat {
	if len(values) == 0 {
		panic("stats: Period called with no values")
	}
	s := summarize(values)
	return models.PeriodStat{
		Max:  round(s.max),
		Min:  round(s.min),
		Avg:  round(s.avg()),
		Diff: round(s.max.Sub(s.min)),
	}
}

// Daily summarises one day's values. It reports false when values is empty.
func Daily(date string, values []float64) (models.DailyStat, bool) {
	if len(values) == 0 {
		return models.DailyStat{}, false
	}
	s := summarize(values)
	return models.DailyStat{
		Date:          date,
		Max:           round(s.max),
		Min:           round(s.min),
		Avg:           round(s.avg()),
		Diff:          round(s.max.Sub(s.min)),
		ReadingsCount: s.n,
	}, true
}

// Mean returns the rounded arithmetic mean of values and false when values is empty.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return round(summarize(values).avg()), true
}

// sortedDays returns the keys of days in ascending calendar order.
func sortedDays(days map[string][]float64) []string {
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	// DateLayout sorts lexically in calendar order.
	sort.Strings(keys)
	return keys
}
