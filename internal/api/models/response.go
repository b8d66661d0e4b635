package models

import (
	"grid-balance/internal/model"
	"grid-balance/internal/sim"
)

// SimulateResponse is consumed verbatim by the dashboard; field names are
// stable for compatibility.
type SimulateResponse struct {
	Records            []model.TimestepRecord    `json:"records"`
	Alerts             []model.Alert             `json:"alerts"`
	MaintenanceWindows []model.MaintenanceWindow `json:"maintenance_windows"`
	Summary            sim.Summary               `json:"summary"`
	Fault              model.FaultProfile        `json:"fault"`
	ProcessingTimeSec  float64                   `json:"processing_time_sec"`
}

// FaultInfo describes one selectable fault profile.
type FaultInfo struct {
	Kind        model.FaultKind    `json:"kind"`
	Description string             `json:"description"`
	Profile     model.FaultProfile `json:"profile"`
}

// FaultsResponse lists the recognized fault profiles.
type FaultsResponse struct {
	Faults []FaultInfo `json:"faults"`
}

// ForecastResponse returns a standalone forecast sequence.
type ForecastResponse struct {
	Points []model.ForecastPoint `json:"points"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
