package sim

import (
	"math"
	"testing"
	"time"

	"grid-balance/internal/config"
	"grid-balance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatForecast(hours int, supply, demand float64) []model.ForecastPoint {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.ForecastPoint, hours)
	for i := range points {
		points[i] = model.ForecastPoint{
			Timestamp:     start.Add(time.Duration(i) * time.Hour),
			WindSpeed:     9,
			WindDirection: 250,
			SupplyMW:      supply,
			DemandMW:      demand,
		}
	}
	return points
}

func TestSimulate_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TurbineCount = 0

	_, err := New().Simulate(cfg, flatForecast(24, 100, 70))
	assert.Error(t, err)
}

func TestSimulate_EmptyForecast(t *testing.T) {
	_, err := New().Simulate(config.Default(), nil)
	assert.Error(t, err)
}

func TestSimulate_Deterministic(t *testing.T) {
	cfg := config.Default()
	forecast := flatForecast(24, 100, 70)

	a, err := New().Simulate(cfg, forecast)
	require.NoError(t, err)
	b, err := New().Simulate(cfg, forecast)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSimulate_RecordShape(t *testing.T) {
	cfg := config.Default()
	cfg.SimulationHours = 6

	res, err := New().Simulate(cfg, flatForecast(24, 100, 70))
	require.NoError(t, err)
	require.Len(t, res.Records, 6)

	for i, r := range res.Records {
		assert.Equal(t, i, r.Hour)
		assert.InDelta(t, r.SupplyMW-r.DemandMW, r.NetBalanceMW, 1e-9)
		assert.GreaterOrEqual(t, r.BatteryChargeMWh, 0.0)
		assert.LessOrEqual(t, r.BatteryChargeMWh, cfg.BatteryCapacityMWh)

		// Flow conservation at every step.
		lhs := r.ToBatteryMW - r.FromBatteryMW + r.ToGridMW - r.FromGridMW + r.CurtailedMW - r.UnmetDemandMW
		assert.InDelta(t, r.NetBalanceMW, lhs, 1e-9, "hour %d", i)
	}
	assert.Equal(t, 6, res.Summary.HoursSimulated)
	assert.False(t, res.Summary.Partial)
}

func TestSimulate_PartialForecastTruncates(t *testing.T) {
	cfg := config.Default()
	cfg.SimulationHours = 24

	res, err := New().Simulate(cfg, flatForecast(10, 100, 70))
	require.NoError(t, err)

	assert.Len(t, res.Records, 10)
	assert.True(t, res.Summary.Partial)
	assert.Equal(t, 10, res.Summary.HoursSimulated)
	assert.Equal(t, 24, res.Summary.HoursRequested)
}

func TestSimulate_AnomalousPointZeroed(t *testing.T) {
	cfg := config.Default()
	cfg.SimulationHours = 6

	forecast := flatForecast(6, 100, 70)
	forecast[3].SupplyMW = math.NaN()

	res, err := New().Simulate(cfg, forecast)
	require.NoError(t, err)
	require.Len(t, res.Records, 6)

	bad := res.Records[3]
	assert.Zero(t, bad.SupplyMW)
	assert.Zero(t, bad.DemandMW)
	assert.Zero(t, bad.NetBalanceMW)

	var anomaly bool
	for _, a := range res.Alerts {
		if a.Level == model.AlertCritical && a.Timestamp.Equal(forecast[3].Timestamp) {
			anomaly = true
		}
	}
	assert.True(t, anomaly, "expected a critical alert for the zeroed hour")
}

func TestSimulate_BatteryFaultReducesAbsorption(t *testing.T) {
	base := config.Default()
	base.SimulationHours = 8
	forecast := flatForecast(8, 140, 70)

	healthy, err := New().Simulate(base, forecast)
	require.NoError(t, err)

	faulted := base
	faulted.Fault = model.FaultBatteryFault
	degraded, err := New().Simulate(faulted, forecast)
	require.NoError(t, err)

	assert.Equal(t, model.FaultBatteryFault, degraded.Fault.Kind)
	assert.Less(t,
		degraded.Summary.Battery.FinalMWh,
		healthy.Summary.Battery.FinalMWh)
	// Surplus that cannot enter the smaller battery goes to the grid instead.
	assert.Greater(t,
		degraded.Summary.Operational.TotalExportMWh,
		healthy.Summary.Operational.TotalExportMWh)
}

func TestSimulate_GridIssueCausesLoadShed(t *testing.T) {
	cfg := config.Default()
	cfg.SimulationHours = 12
	cfg.InitialBatteryMWh = 35
	cfg.Fault = model.FaultGridIssue

	// Sustained deficit with a nearly empty battery and no grid import.
	res, err := New().Simulate(cfg, flatForecast(12, 30, 100))
	require.NoError(t, err)

	assert.True(t, res.Fault.GridDisconnected)
	assert.Greater(t, res.Summary.Operational.UnmetDemandMWh, 0.0)
	assert.Zero(t, res.Summary.Operational.TotalImportMWh)

	var loadShed bool
	for _, a := range res.Alerts {
		if a.Level == model.AlertCritical && a.Message == "load shed occurred" {
			loadShed = true
		}
	}
	assert.True(t, loadShed)
}

func TestSimulate_MaintenanceWindowsRanked(t *testing.T) {
	cfg := config.Default()
	cfg.SimulationHours = 24
	cfg.MaintenanceWindowHours = 6

	forecast := flatForecast(24, 100, 70)
	for i := 8; i < 14; i++ {
		forecast[i].SupplyMW = 10
		forecast[i].WindSpeed = 3
	}

	res, err := New().Simulate(cfg, forecast)
	require.NoError(t, err)
	require.NotEmpty(t, res.MaintenanceWindows)

	best := res.MaintenanceWindows[0]
	assert.Equal(t, forecast[8].Timestamp, best.StartTime)

	top := res.TopWindows(3)
	assert.Len(t, top, 3)
	assert.Equal(t, best, top[0])
}

func TestTopWindows_Bounds(t *testing.T) {
	r := &Result{MaintenanceWindows: []model.MaintenanceWindow{{}, {}}}
	assert.Len(t, r.TopWindows(3), 2)
	assert.Len(t, r.TopWindows(0), 2)
	assert.Len(t, r.TopWindows(1), 1)
}
