package sim

import (
	"fmt"
	"sync"

	"grid-balance/internal/config"
	"grid-balance/internal/model"
)

// Result bundles everything one simulation call produces.
type Result struct {
	Records            []model.TimestepRecord    `json:"records"`
	Alerts             []model.Alert             `json:"alerts"`
	MaintenanceWindows []model.MaintenanceWindow `json:"maintenance_windows"`
	Summary            Summary                   `json:"summary"`

	// Fault is the profile that was applied to the config for this run.
	Fault model.FaultProfile `json:"fault"`
}

// Engine runs complete simulations. It holds no per-run state; every Simulate
// call owns its own battery and record buffer, so concurrent calls are
// independent.
type Engine struct {
	// DtHours is the timestep length. The hourly grid model uses 1.
	DtHours float64
}

func New() *Engine { return &Engine{DtHours: 1} }

// Simulate executes one pass over the forecast horizon.
//
// Fatal errors are limited to configuration validation (and an empty
// forecast); every other anomaly is captured as data in the result. A forecast
// shorter than simulation_hours truncates the run and marks the summary
// partial. Anomalous points are zeroed with a critical alert and the run
// continues.
func (e *Engine) Simulate(cfg config.SimulationConfig, forecast []model.ForecastPoint) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(forecast) == 0 {
		return nil, fmt.Errorf("forecast is empty")
	}

	eff, profile, err := cfg.Effective()
	if err != nil {
		return nil, err
	}

	batt, err := model.NewBattery(eff.BatteryParams(), eff.InitialBatteryMWh)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	hours := eff.SimulationHours
	if len(forecast) < hours {
		hours = len(forecast)
	}
	horizon := forecast[:hours]

	dt := e.DtHours
	if dt <= 0 {
		dt = 1
	}

	dispatcher := Dispatcher{
		GridAvailable: eff.GridIsAvailable(),
		ToleranceMW:   eff.BalanceToleranceMW,
		DtHours:       dt,
	}
	rules := AlertRules{
		ImbalanceThresholdMW: eff.ImbalanceThresholdMW,
		ImbalanceHours:       eff.ImbalanceHours,
		GridAvailable:        eff.GridIsAvailable(),
	}

	records := make([]model.TimestepRecord, 0, hours)
	alerts := make([]model.Alert, 0)

	for i, raw := range horizon {
		point := raw.Sanitized()
		if raw.Anomalous() {
			alerts = append(alerts, model.Alert{
				Level:     model.AlertCritical,
				Message:   "sensor data anomaly, hour treated as zero generation and demand",
				Timestamp: raw.Timestamp,
				Details:   fmt.Sprintf("hour %d", i),
			})
		}

		flows := dispatcher.Step(batt, point.SupplyMW, point.DemandMW)

		rec := model.TimestepRecord{
			Hour:     i,
			Datetime: point.Timestamp,

			SupplyMW:     point.SupplyMW,
			DemandMW:     point.DemandMW,
			NetBalanceMW: point.SupplyMW - point.DemandMW,

			BatteryChargeMWh: batt.State.SOCMWh,
			BatteryPercent:   batt.SOCPercent(),

			ToBatteryMW:   flows.ToBatteryMW,
			FromBatteryMW: flows.FromBatteryMW,
			ToGridMW:      flows.ToGridMW,
			FromGridMW:    flows.FromGridMW,
			CurtailedMW:   flows.CurtailedMW,
			UnmetDemandMW: flows.UnmetDemandMW,

			Status: flows.Status,

			WindSpeed:     point.WindSpeed,
			WindDirection: point.WindDirection,
		}
		records = append(records, rec)
		alerts = append(alerts, rules.Evaluate(rec)...)
	}

	// The window scan and the summary fold are read-only over completed data
	// and independent of each other.
	res := &Result{Records: records, Alerts: alerts, Fault: profile}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.MaintenanceWindows = ScanMaintenanceWindows(horizon, eff.MaintenanceWindowHours, dt)
	}()
	go func() {
		defer wg.Done()
		res.Summary = Aggregate(records, alerts, SummaryInputs{
			DtHours:            dt,
			RatedCapacityMW:    eff.RatedCapacityMW(),
			InitialBatteryMWh:  eff.InitialBatteryMWh,
			BatteryCapacityMWh: eff.BatteryCapacityMWh,
			ThroughputMWh:      batt.State.ThroughputMWh,
			SellPricePerMWh:    eff.SellPricePerMWh,
			BuyPricePerMWh:     eff.BuyPricePerMWh,
			HoursRequested:     eff.SimulationHours,
		})
	}()
	wg.Wait()

	return res, nil
}

// TopWindows returns the n best maintenance windows (the list is already
// ranked). The original dashboard shows three.
func (r *Result) TopWindows(n int) []model.MaintenanceWindow {
	if n <= 0 || n >= len(r.MaintenanceWindows) {
		return r.MaintenanceWindows
	}
	return r.MaintenanceWindows[:n]
}
