package model

import "fmt"

// FaultKind selects a pre-run fault scenario.
// Keep these values stable; they are used in API requests and YAML configs.
type FaultKind string

const (
	FaultNone                 FaultKind = "none"
	FaultSingleTurbineFailure FaultKind = "single_turbine_failure"
	FaultMultiTurbineFailure  FaultKind = "multi_turbine_failure"
	FaultBatteryFault         FaultKind = "battery_fault"
	FaultGridIssue            FaultKind = "grid_issue"
)

// FaultProfile is a tagged variant carrying the numeric multipliers a fault
// applies at configuration time. Faults transform the config before the run
// starts; the dispatch path itself has no fault branches.
type FaultProfile struct {
	Kind FaultKind `json:"kind" yaml:"kind"`

	// AvailabilityFactor scales turbine availability (turbine failures).
	AvailabilityFactor float64 `json:"availability_factor,omitempty" yaml:"availability_factor,omitempty"`
	// CapacityFactor scales battery capacity; PowerFactor scales charge and
	// discharge limits (battery fault).
	CapacityFactor float64 `json:"capacity_factor,omitempty" yaml:"capacity_factor,omitempty"`
	PowerFactor    float64 `json:"power_factor,omitempty" yaml:"power_factor,omitempty"`
	// GridDisconnected forces grid_available=false for the run (grid issue).
	GridDisconnected bool `json:"grid_disconnected,omitempty" yaml:"grid_disconnected,omitempty"`
}

// FaultProfileFor returns the standard profile for a fault kind.
// turbineCount sizes the availability hit of turbine failures.
func FaultProfileFor(kind FaultKind, turbineCount int) (FaultProfile, error) {
	if turbineCount < 1 {
		turbineCount = 1
	}
	switch kind {
	case FaultNone, "":
		return FaultProfile{Kind: FaultNone, AvailabilityFactor: 1, CapacityFactor: 1, PowerFactor: 1}, nil
	case FaultSingleTurbineFailure:
		return FaultProfile{
			Kind:               kind,
			AvailabilityFactor: float64(turbineCount-1) / float64(turbineCount),
			CapacityFactor:     1,
			PowerFactor:        1,
		}, nil
	case FaultMultiTurbineFailure:
		// Five turbines offline, floored at 25% of the fleet remaining.
		lost := 5
		if lost > turbineCount*3/4 {
			lost = turbineCount * 3 / 4
		}
		return FaultProfile{
			Kind:               kind,
			AvailabilityFactor: float64(turbineCount-lost) / float64(turbineCount),
			CapacityFactor:     1,
			PowerFactor:        1,
		}, nil
	case FaultBatteryFault:
		return FaultProfile{Kind: kind, AvailabilityFactor: 1, CapacityFactor: 0.5, PowerFactor: 0.5}, nil
	case FaultGridIssue:
		// Modeled as full grid unavailability. Finer semantics (partial
		// capacity reduction) are not confirmed; see DESIGN.md.
		return FaultProfile{Kind: kind, AvailabilityFactor: 1, CapacityFactor: 1, PowerFactor: 1, GridDisconnected: true}, nil
	default:
		return FaultProfile{}, fmt.Errorf("unknown fault kind: %q", kind)
	}
}

// FaultKinds lists the recognized fault kinds in a stable order.
func FaultKinds() []FaultKind {
	return []FaultKind{
		FaultNone,
		FaultSingleTurbineFailure,
		FaultMultiTurbineFailure,
		FaultBatteryFault,
		FaultGridIssue,
	}
}
