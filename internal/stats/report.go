package stats

import (
	"time"

	"aiot_brain/internal/models"
)

// BuildReport computes the stats endpoint payload.
//
// weekly holds raw points for the last seven local days, monthly holds the
// platform's per-day averages for the last thirty. now anchors "today" and its
// location decides day boundaries. ErrNoData is returned when weekly has no
// values; monthly may be empty, in which case MonthAvg is left nil.
func BuildReport(weekly, monthly []models.TelemetryPoint, now time.Time) (models.StatsReport, error) {
	week := FilterNulls(weekly)
	if len(week) == 0 {
		return models.StatsReport{}, ErrNoData
	}

	loc := now.Location()
	todayStart := StartOfDay(now).UnixMilli()

	var report models.StatsReport

	var today []float64
	for _, p := range week {
		if p.Timestamp >= todayStart {
			today = append(today, *p.Value)
		}
	}
	if len(today) > 0 {
		ps := Period(today)
		report.Today = &ps
	}

	report.Week = Period(FilterValues(week))

	days := GroupByDay(week, loc)
	keys := sortedDays(days)
	report.DailyBreakdown = make([]models.DailyStat, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if ds, ok := Daily(keys[i], days[keys[i]]); ok {
			report.DailyBreakdown = append(report.DailyBreakdown, ds)
		}
	}

	// The platform already averaged per day; averaging those keeps every day equal weight.
	if avg, ok := Mean(FilterValues(monthly)); ok {
		report.MonthAvg = &avg
	}

	return report, nil
}

// Digest builds the chronological per-day summary sent to the text-generation service.
func Digest(points []models.TelemetryPoint, loc *time.Location) []models.DigestEntry {
	days := GroupByDay(points, loc)
	keys := sortedDays(days)
	out := make([]models.DigestEntry, 0, len(keys))
	for _, k := range keys {
		ds, ok := Daily(k, days[k])
		if !ok {
			continue
		}
		out = append(out, models.DigestEntry{
			Date:          ds.Date,
			Avg:           ds.Avg,
			Max:           ds.Max,
			Min:           ds.Min,
			ReadingsCount: ds.ReadingsCount,
		})
	}
	return out
}
