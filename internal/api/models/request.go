package models

import (
	"grid-balance/internal/config"
	"grid-balance/internal/model"
)

// SimulateRequest represents the request body for running a simulation.
// Config fields override server defaults; zero values keep the default.
type SimulateRequest struct {
	Config config.SimulationConfig `json:"config"`

	// Forecast source: "synthetic" (default) or "openweather".
	Source string `json:"source,omitempty"`

	// Inline forecast points bypass the forecast collaborator entirely.
	Forecast []model.ForecastPoint `json:"forecast,omitempty"`

	// OpenWeatherMap parameters, used when source is "openweather".
	APIKey    string `json:"api_key,omitempty"`
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`

	// Seed for the synthetic provider. Identical seed + config yields an
	// identical run.
	Seed int64 `json:"seed,omitempty"`

	Options SimulateOptions `json:"options,omitempty"`
}

// SimulateOptions contains optional knobs for the response shape.
type SimulateOptions struct {
	// MaxWindows limits the ranked maintenance windows (0 = dashboard
	// default of 3, negative = all).
	MaxWindows int `json:"max_windows,omitempty"`
	// IncludeRecords defaults true; set false for summary-only polling.
	ExcludeRecords bool `json:"exclude_records,omitempty"`
}
