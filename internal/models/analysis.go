package models

import "time"

// AnalysisRecord is a journal entry for one question sent to the text-generation service.
type AnalysisRecord struct {
	ID        string    `json:"id"`
	DeviceID  string    `json:"device_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer,omitempty"`
	Error     string    `json:"error,omitempty"` // set when generation failed
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}
