package model

import (
	"math"
	"time"
)

// ForecastPoint is one hour of external forecast input.
// SupplyMW and DemandMW arrive precomputed from the forecast collaborator;
// the raw weather fields ride along for alerting and maintenance scoring.
type ForecastPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	WindSpeed     float64   `json:"wind_speed"`
	WindDirection float64   `json:"wind_direction"`
	Temperature   float64   `json:"temperature"`
	Pressure      float64   `json:"pressure"`
	SupplyMW      float64   `json:"supply_mw"`
	DemandMW      float64   `json:"demand_mw"`
}

// Anomalous reports whether the point carries a non-finite or out-of-range
// value that makes it unusable (negative wind speed, NaN/Inf power, negative
// demand). Such points are zeroed rather than failing the run.
func (p ForecastPoint) Anomalous() bool {
	for _, v := range []float64{p.WindSpeed, p.WindDirection, p.SupplyMW, p.DemandMW} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return p.WindSpeed < 0 || p.SupplyMW < 0 || p.DemandMW < 0
}

// Sanitized returns a copy safe to simulate: an anomalous point is treated as
// zero generation and zero demand for that hour.
func (p ForecastPoint) Sanitized() ForecastPoint {
	if !p.Anomalous() {
		return p
	}
	out := p
	out.SupplyMW = 0
	out.DemandMW = 0
	if math.IsNaN(out.WindSpeed) || math.IsInf(out.WindSpeed, 0) || out.WindSpeed < 0 {
		out.WindSpeed = 0
	}
	if math.IsNaN(out.WindDirection) || math.IsInf(out.WindDirection, 0) {
		out.WindDirection = 0
	}
	return out
}
