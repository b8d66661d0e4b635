package model

import (
	"errors"
	"math"
)

// BatteryParams defines the physical parameters of the storage system.
// Units:
// - CapacityMWh: MWh
// - MaxChargeMW / MaxDischargeMW: MW
// - LowThreshold / HighThreshold: SOC fractions 0..1 (operating band)
type BatteryParams struct {
	CapacityMWh    float64
	MaxChargeMW    float64
	MaxDischargeMW float64
	LowThreshold   float64
	HighThreshold  float64
}

// BatteryState captures mutable per-run state.
type BatteryState struct {
	// SOCMWh is the stored energy in MWh.
	SOCMWh float64
	// ThroughputMWh accumulates charged + discharged energy for cycle counting.
	ThroughputMWh float64
}

// Battery is a convenience wrapper bundling params + state.
// One Battery is owned by exactly one simulation run.
type Battery struct {
	Params BatteryParams
	State  BatteryState
}

// Direction selects the side of the SOC band a dispatch pushes against.
type Direction int

const (
	Charge Direction = iota
	Discharge
)

func NewBattery(params BatteryParams, initialMWh float64) (*Battery, error) {
	b := &Battery{
		Params: params,
		State:  BatteryState{SOCMWh: initialMWh},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Battery) Validate() error {
	p := b.Params
	if p.CapacityMWh <= 0 {
		return errors.New("CapacityMWh must be > 0")
	}
	if p.MaxChargeMW < 0 {
		return errors.New("MaxChargeMW must be >= 0")
	}
	if p.MaxDischargeMW < 0 {
		return errors.New("MaxDischargeMW must be >= 0")
	}
	if p.LowThreshold < 0 || p.HighThreshold > 1 || p.LowThreshold >= p.HighThreshold {
		return errors.New("thresholds must satisfy 0<=LowThreshold<HighThreshold<=1")
	}
	if b.State.SOCMWh < 0 || b.State.SOCMWh > p.CapacityMWh {
		return errors.New("initial SOC must be within [0, CapacityMWh]")
	}
	return nil
}

// SOCPercent returns the state of charge as a 0..100 percentage.
func (b *Battery) SOCPercent() float64 {
	if b.Params.CapacityMWh <= 0 {
		return 0
	}
	return b.State.SOCMWh / b.Params.CapacityMWh * 100
}

// Cycles returns the equivalent full cycle count.
func (b *Battery) Cycles() float64 {
	if b.Params.CapacityMWh <= 0 {
		return 0
	}
	return b.State.ThroughputMWh / (2 * b.Params.CapacityMWh)
}

// Apply requests desiredMW of charge or discharge for an interval of dtHours.
//
// The request is clamped to the configured max power for the direction, then
// to the energy headroom left before crossing HighThreshold (charging) or
// LowThreshold (discharging). Infeasible requests clamp to zero rather than
// erroring. Returns the power actually applied.
func (b *Battery) Apply(desiredMW, dtHours float64, dir Direction) float64 {
	if desiredMW <= 0 || dtHours <= 0 {
		return 0
	}

	var maxPowerMW, headroomMWh float64
	switch dir {
	case Charge:
		maxPowerMW = b.Params.MaxChargeMW
		headroomMWh = b.Params.HighThreshold*b.Params.CapacityMWh - b.State.SOCMWh
	case Discharge:
		maxPowerMW = b.Params.MaxDischargeMW
		headroomMWh = b.State.SOCMWh - b.Params.LowThreshold*b.Params.CapacityMWh
	}
	if headroomMWh <= 0 {
		return 0
	}

	appliedMW := math.Min(desiredMW, math.Min(maxPowerMW, headroomMWh/dtHours))
	if appliedMW <= 0 {
		return 0
	}

	energyMWh := appliedMW * dtHours
	if dir == Charge {
		b.State.SOCMWh += energyMWh
	} else {
		b.State.SOCMWh -= energyMWh
	}
	b.State.ThroughputMWh += energyMWh

	return appliedMW
}
