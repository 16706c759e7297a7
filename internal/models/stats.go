package models

// PeriodStat summarises a window of readings (today, the last 7 days).
type PeriodStat struct {
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
	Avg  float64 `json:"avg"`
	Diff float64 `json:"diff"`
}

// DailyStat summarises one local calendar day.
type DailyStat struct {
	Date          string  `json:"date"` // YYYY-MM-DD, local timezone
	Max           float64 `json:"max"`
	Min           float64 `json:"min"`
	Avg           float64 `json:"avg"`
	Diff          float64 `json:"diff"`
	ReadingsCount int     `json:"readings_count"`
}

// StatsReport is returned by the stats endpoint.
// Today and MonthAvg are nil when there is nothing to compute them from.
type StatsReport struct {
	Today          *PeriodStat `json:"today,omitempty"`
	Week           PeriodStat  `json:"week"`
	DailyBreakdown []DailyStat `json:"daily_breakdown"` // newest first
	MonthAvg       *float64    `json:"month_avg,omitempty"`
}

// DigestEntry is one day of the summary handed to the text-generation service.
type DigestEntry struct {
	Date          string  `json:"date"`
	Avg           float64 `json:"avg"`
	Max           float64 `json:"max"`
	Min           float64 `json:"min"`
	ReadingsCount int     `json:"readings_count"`
}
