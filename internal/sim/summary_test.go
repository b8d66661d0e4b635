package sim

import (
	"testing"
	"time"

	"grid-balance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryRecords() []model.TimestepRecord {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []model.TimestepRecord{
		{
			Hour: 0, Datetime: start,
			SupplyMW: 100, DemandMW: 70, NetBalanceMW: 30,
			BatteryChargeMWh: 180, BatteryPercent: 60,
			ToBatteryMW: 30, Status: model.StatusSurplus,
		},
		{
			Hour: 1, Datetime: start.Add(time.Hour),
			SupplyMW: 40, DemandMW: 100, NetBalanceMW: -60,
			BatteryChargeMWh: 165, BatteryPercent: 55,
			FromBatteryMW: 15, FromGridMW: 45, Status: model.StatusDeficit,
		},
		{
			Hour: 2, Datetime: start.Add(2 * time.Hour),
			SupplyMW: 72, DemandMW: 70, NetBalanceMW: 2,
			BatteryChargeMWh: 167, BatteryPercent: 55.67,
			ToBatteryMW: 2, Status: model.StatusBalanced,
		},
		{
			Hour: 3, Datetime: start.Add(3 * time.Hour),
			SupplyMW: 160, DemandMW: 60, NetBalanceMW: 100,
			BatteryChargeMWh: 217, BatteryPercent: 72.33,
			ToBatteryMW: 50, ToGridMW: 50, Status: model.StatusSurplus,
		},
	}
}

func TestAggregate_OperationalTotals(t *testing.T) {
	in := SummaryInputs{
		DtHours:            1,
		RatedCapacityMW:    150,
		InitialBatteryMWh:  150,
		BatteryCapacityMWh: 300,
		ThroughputMWh:      97,
		SellPricePerMWh:    40,
		BuyPricePerMWh:     150,
		HoursRequested:     4,
	}
	s := Aggregate(summaryRecords(), nil, in)

	assert.Equal(t, 4, s.HoursSimulated)
	assert.False(t, s.Partial)

	op := s.Operational
	assert.Equal(t, 2, op.SurplusHours)
	assert.Equal(t, 1, op.DeficitHours)
	assert.Equal(t, 1, op.BalancedHours)

	assert.InDelta(t, 372, op.TotalGenerationMWh, 1e-9)
	assert.InDelta(t, 300, op.TotalConsumptionMWh, 1e-9)
	assert.InDelta(t, 50, op.TotalExportMWh, 1e-9)
	assert.InDelta(t, 45, op.TotalImportMWh, 1e-9)
	assert.InDelta(t, 72, op.NetEnergyMWh, 1e-9)

	assert.InDelta(t, 93, op.AvgSupplyMW, 1e-9)
	assert.InDelta(t, 75, op.AvgDemandMW, 1e-9)
	assert.InDelta(t, 160, op.MaxSupplyMW, 1e-9)
	assert.InDelta(t, 60, op.MinDemandMW, 1e-9)

	// 372 MWh out of 150 MW * 4 h of rated output.
	assert.InDelta(t, 0.62, op.CapacityFactor, 1e-9)
	assert.InDelta(t, 1-45.0/300.0, op.RenewablePenetration, 1e-9)
	assert.InDelta(t, 124, op.SelfSufficiencyPct, 1e-9)
	assert.InDelta(t, 15, op.ImportDependencyPct, 1e-9)
}

func TestAggregate_BatteryAndFinancial(t *testing.T) {
	in := SummaryInputs{
		DtHours:            1,
		RatedCapacityMW:    150,
		InitialBatteryMWh:  150,
		BatteryCapacityMWh: 300,
		ThroughputMWh:      120,
		SellPricePerMWh:    40,
		BuyPricePerMWh:     150,
		HoursRequested:     4,
	}
	s := Aggregate(summaryRecords(), nil, in)

	require.NotNil(t, s.Battery)
	assert.InDelta(t, 150, s.Battery.InitialMWh, 1e-9)
	assert.InDelta(t, 217, s.Battery.FinalMWh, 1e-9)
	assert.InDelta(t, 165, s.Battery.MinMWh, 1e-9)
	assert.InDelta(t, 217, s.Battery.MaxMWh, 1e-9)
	assert.InDelta(t, 0.2, s.Battery.CyclesEquivalent, 1e-9)

	require.NotNil(t, s.Financial)
	assert.InDelta(t, 2000, s.Financial.ExportValue, 1e-9)
	assert.InDelta(t, 6750, s.Financial.ImportCost, 1e-9)
	assert.InDelta(t, -4750, s.Financial.NetRevenue, 1e-9)
}

func TestAggregate_AlertCounts(t *testing.T) {
	alerts := []model.Alert{
		{Level: model.AlertCritical},
		{Level: model.AlertCritical},
		{Level: model.AlertWarning},
		{Level: model.AlertInfo},
	}
	s := Aggregate(summaryRecords(), alerts, SummaryInputs{DtHours: 1, HoursRequested: 4})

	assert.Equal(t, 4, s.Alerts.Total)
	assert.Equal(t, 2, s.Alerts.Critical)
	assert.Equal(t, 1, s.Alerts.Warning)
	assert.Equal(t, 1, s.Alerts.Info)
}

func TestAggregate_PartialRun(t *testing.T) {
	s := Aggregate(summaryRecords(), nil, SummaryInputs{DtHours: 1, HoursRequested: 24})
	assert.True(t, s.Partial)
	assert.Equal(t, 4, s.HoursSimulated)
	assert.Equal(t, 24, s.HoursRequested)
}

func TestAggregate_EmptyRecords(t *testing.T) {
	s := Aggregate(nil, nil, SummaryInputs{DtHours: 1, HoursRequested: 24})
	assert.Equal(t, 0, s.HoursSimulated)
	assert.True(t, s.Partial)
	assert.Nil(t, s.Battery)
	assert.Nil(t, s.Financial)
}
