package model

import "time"

// Status is the balance condition for a timestep.
// Keep these values stable; they are consumed verbatim by the API and CSV output.
type Status string

const (
	StatusSurplus  Status = "Surplus"
	StatusDeficit  Status = "Deficit"
	StatusBalanced Status = "Balanced"
)

// DefaultBalanceToleranceMW is the band around zero net balance that still
// counts as Balanced. Matches the banding used by the dashboard downstream.
const DefaultBalanceToleranceMW = 5.0

// StatusFromNet classifies a net balance against the tolerance band.
func StatusFromNet(netMW, toleranceMW float64) Status {
	switch {
	case netMW > toleranceMW:
		return StatusSurplus
	case netMW < -toleranceMW:
		return StatusDeficit
	default:
		return StatusBalanced
	}
}

// TimestepRecord is one hour of simulation output. Immutable once created;
// the records slice is ordered and indexed by hour.
type TimestepRecord struct {
	Hour     int       `json:"hour"`
	Datetime time.Time `json:"datetime"`

	SupplyMW     float64 `json:"simulated_supply_mw"`
	DemandMW     float64 `json:"simulated_demand_mw"`
	NetBalanceMW float64 `json:"net_balance_mw"`

	BatteryChargeMWh float64 `json:"battery_charge_mwh"`
	BatteryPercent   float64 `json:"battery_percent"`

	ToBatteryMW   float64 `json:"to_battery_mw"`
	FromBatteryMW float64 `json:"from_battery_mw"`
	ToGridMW      float64 `json:"to_grid_mw"`
	FromGridMW    float64 `json:"from_grid_mw"`

	// Bookkeeping outside the main energy balance. CurtailedMW is surplus that
	// could not be exported (grid unavailable); UnmetDemandMW is load shed.
	CurtailedMW   float64 `json:"curtailed_mw,omitempty"`
	UnmetDemandMW float64 `json:"unmet_demand_mw,omitempty"`

	Status Status `json:"status"`

	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
}

// AlertLevel is the severity of an operational alert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "info"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// Alert is one entry of the append-only alert log. The engine performs no
// deduplication; callers truncate for display.
type Alert struct {
	Level     AlertLevel `json:"level"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
	Details   string     `json:"details,omitempty"`
}

// MaintenanceWindow is a candidate interval for taking turbines offline.
type MaintenanceWindow struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	Score             float64   `json:"score"`
	LostGenerationMWh float64   `json:"lost_generation_mwh"`
	AvgWindSpeed      float64   `json:"avg_wind_speed"`
	AvgDemand         float64   `json:"avg_demand"`
}
