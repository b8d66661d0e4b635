package sim

import (
	"math"

	"grid-balance/internal/model"
)

// Dispatcher converts one hour's (supply, demand, battery state) into battery
// and grid flows. It is a pure rule over the energy balance; fault effects are
// already baked into the config by the time a Dispatcher exists.
type Dispatcher struct {
	GridAvailable bool
	ToleranceMW   float64
	DtHours       float64
}

// Flows is the outcome of one dispatch step.
type Flows struct {
	ToBatteryMW   float64
	FromBatteryMW float64
	ToGridMW      float64
	FromGridMW    float64
	CurtailedMW   float64
	UnmetDemandMW float64
	Status        model.Status
}

// Step dispatches supply against demand for one interval.
//
// Invariant (up to curtailment/unmet-demand bookkeeping):
//
//	toBattery - fromBattery + toGrid - fromGrid + curtailed - unmet = supply - demand
func (d Dispatcher) Step(batt *model.Battery, supplyMW, demandMW float64) Flows {
	net := supplyMW - demandMW
	f := Flows{Status: model.StatusFromNet(net, d.ToleranceMW)}

	if net >= 0 {
		f.ToBatteryMW = batt.Apply(net, d.DtHours, model.Charge)
		export := net - f.ToBatteryMW
		if d.GridAvailable {
			f.ToGridMW = export
		} else {
			// Export blocked: the energy is curtailed, not re-added to SOC.
			f.CurtailedMW = export
		}
		return f
	}

	deficit := math.Abs(net)
	f.FromBatteryMW = batt.Apply(deficit, d.DtHours, model.Discharge)
	shortfall := deficit - f.FromBatteryMW
	if d.GridAvailable {
		f.FromGridMW = shortfall
	} else {
		// Battery exhausted with no grid: load is shed.
		f.UnmetDemandMW = shortfall
	}
	return f
}
