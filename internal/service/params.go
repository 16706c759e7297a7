package service

import "time"

const (
	DefaultKey      = "temperature"
	DefaultDays     = 7
	MaxHistoryDays  = 365
	DefaultQuestion = "How is this device doing right now?"
	DefaultLanguage = "Traditional Chinese"
)

// HistoryParams selects the daily-average history window.
type HistoryParams struct {
	Key  string // telemetry key, DefaultKey when empty
	Days int    // 1..MaxHistoryDays, counting today
}

// AskRequest is one analysis question about a device.
type AskRequest struct {
	Question string
	DeviceID string
}

// AskResult is the generated answer.
type AskResult struct {
	Analysis string `json:"ai_analysis"`
}

// JournalFilter narrows the analysis journal listing.
type JournalFilter struct {
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	DeviceID string
}
