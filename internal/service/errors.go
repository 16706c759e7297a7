package service

import "errors"

// Error kinds surfaced by the service layer. Handlers map them to HTTP
// statuses with errors.Is; every returned error wraps exactly one.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrAuth                = errors.New("failed to log in to telemetry platform")
	ErrUpstreamFetch       = errors.New("telemetry query failed")
	ErrNoData              = errors.New("no telemetry data")
	ErrCreateDevice        = errors.New("failed to create device")
	ErrServiceUnavailable  = errors.New("text generation is not configured")
	ErrUpstreamGeneration  = errors.New("text generation failed")
	errInvalidTimeRange    = errors.New("invalid time range: from must be <= to")
	errDeviceIDRequired    = errors.New("deviceId is required")
	errDeviceNameRequired  = errors.New("device name is required")
	errHistoryDaysOutRange = errors.New("days must be between 1 and 365")
)
