package ws

import (
	"encoding/json"

	"grid-balance/internal/config"
	"grid-balance/internal/model"
	"grid-balance/internal/sim"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client -> Server messages

type SetConfigPayload struct {
	Config config.SimulationConfig `json:"config"`
}

type SetIntervalPayload struct {
	IntervalSec float64 `json:"interval_sec"`
}

// Server -> Client messages

type StatePayload struct {
	Running     bool    `json:"running"`
	IntervalSec float64 `json:"interval_sec"`
}

type ResultPayload struct {
	Summary            sim.Summary               `json:"summary"`
	Alerts             []model.Alert             `json:"alerts"`
	MaintenanceWindows []model.MaintenanceWindow `json:"maintenance_windows"`
	GeneratedAt        string                    `json:"generated_at"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
