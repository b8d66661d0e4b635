package sim

import "grid-balance/internal/model"

// OperationalSummary holds counts and totals accumulated over all records.
type OperationalSummary struct {
	SurplusHours  int `json:"surplus_hours"`
	DeficitHours  int `json:"deficit_hours"`
	BalancedHours int `json:"balanced_hours"`

	TotalGenerationMWh  float64 `json:"total_generation_mwh"`
	TotalConsumptionMWh float64 `json:"total_consumption_mwh"`
	TotalExportMWh      float64 `json:"total_export_mwh"`
	TotalImportMWh      float64 `json:"total_import_mwh"`
	CurtailedMWh        float64 `json:"curtailed_mwh"`
	UnmetDemandMWh      float64 `json:"unmet_demand_mwh"`
	NetEnergyMWh        float64 `json:"net_energy_mwh"`

	AvgSupplyMW float64 `json:"avg_supply_mw"`
	AvgDemandMW float64 `json:"avg_demand_mw"`
	MaxSupplyMW float64 `json:"max_supply_mw"`
	MinDemandMW float64 `json:"min_demand_mw"`

	CapacityFactor       float64 `json:"capacity_factor"`
	RenewablePenetration float64 `json:"renewable_penetration"`
	SelfSufficiencyPct   float64 `json:"self_sufficiency_pct"`
	ImportDependencyPct  float64 `json:"import_dependency_pct"`
}

// BatterySummary reports battery trajectory and wear for the run.
type BatterySummary struct {
	InitialMWh       float64 `json:"initial_mwh"`
	FinalMWh         float64 `json:"final_mwh"`
	FinalPercent     float64 `json:"final_percent"`
	MinMWh           float64 `json:"min_mwh"`
	MaxMWh           float64 `json:"max_mwh"`
	AvgPercent       float64 `json:"avg_percent"`
	CyclesEquivalent float64 `json:"cycles_equivalent"`
}

// FinancialSummary prices grid flows with the configured unit prices.
type FinancialSummary struct {
	ExportValue float64 `json:"export_value"`
	ImportCost  float64 `json:"import_cost"`
	NetRevenue  float64 `json:"net_revenue"`
}

// AlertCounts tallies the alert log by level.
type AlertCounts struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// Summary is the cumulative result of one run. All derived fields are pure
// functions of the accumulated totals; never mutated after computation.
type Summary struct {
	HoursSimulated  int  `json:"hours_simulated"`
	HoursRequested  int  `json:"hours_requested"`
	Partial         bool `json:"partial"`

	Operational OperationalSummary `json:"operational"`
	Battery     *BatterySummary    `json:"battery,omitempty"`
	Financial   *FinancialSummary  `json:"financial,omitempty"`
	Alerts      AlertCounts        `json:"alerts"`
}

// SummaryInputs carries the per-run constants the fold needs beyond records.
type SummaryInputs struct {
	DtHours            float64
	RatedCapacityMW    float64
	InitialBatteryMWh  float64
	BatteryCapacityMWh float64
	ThroughputMWh      float64
	SellPricePerMWh    float64
	BuyPricePerMWh     float64
	HoursRequested     int
}

// Aggregate folds the record sequence into a Summary in a single pass.
func Aggregate(records []model.TimestepRecord, alerts []model.Alert, in SummaryInputs) Summary {
	s := Summary{
		HoursSimulated: len(records),
		HoursRequested: in.HoursRequested,
		Partial:        len(records) < in.HoursRequested,
	}

	for _, a := range alerts {
		s.Alerts.Total++
		switch a.Level {
		case model.AlertCritical:
			s.Alerts.Critical++
		case model.AlertWarning:
			s.Alerts.Warning++
		case model.AlertInfo:
			s.Alerts.Info++
		}
	}

	if len(records) == 0 {
		return s
	}

	op := &s.Operational
	op.MinDemandMW = records[0].DemandMW
	var socSumPct, socMin, socMax float64
	socMin = records[0].BatteryChargeMWh
	socMax = records[0].BatteryChargeMWh

	for _, r := range records {
		switch r.Status {
		case model.StatusSurplus:
			op.SurplusHours++
		case model.StatusDeficit:
			op.DeficitHours++
		default:
			op.BalancedHours++
		}

		op.TotalGenerationMWh += r.SupplyMW * in.DtHours
		op.TotalConsumptionMWh += r.DemandMW * in.DtHours
		op.TotalExportMWh += r.ToGridMW * in.DtHours
		op.TotalImportMWh += r.FromGridMW * in.DtHours
		op.CurtailedMWh += r.CurtailedMW * in.DtHours
		op.UnmetDemandMWh += r.UnmetDemandMW * in.DtHours

		if r.SupplyMW > op.MaxSupplyMW {
			op.MaxSupplyMW = r.SupplyMW
		}
		if r.DemandMW < op.MinDemandMW {
			op.MinDemandMW = r.DemandMW
		}

		socSumPct += r.BatteryPercent
		if r.BatteryChargeMWh < socMin {
			socMin = r.BatteryChargeMWh
		}
		if r.BatteryChargeMWh > socMax {
			socMax = r.BatteryChargeMWh
		}
	}

	hours := float64(len(records))
	op.NetEnergyMWh = op.TotalGenerationMWh - op.TotalConsumptionMWh
	op.AvgSupplyMW = op.TotalGenerationMWh / (hours * in.DtHours)
	op.AvgDemandMW = op.TotalConsumptionMWh / (hours * in.DtHours)

	if in.RatedCapacityMW > 0 {
		op.CapacityFactor = op.TotalGenerationMWh / (in.RatedCapacityMW * hours * in.DtHours)
	}
	if op.TotalConsumptionMWh > 0 {
		op.RenewablePenetration = 1 - op.TotalImportMWh/op.TotalConsumptionMWh
		op.SelfSufficiencyPct = op.TotalGenerationMWh / op.TotalConsumptionMWh * 100
		op.ImportDependencyPct = op.TotalImportMWh / op.TotalConsumptionMWh * 100
	}

	last := records[len(records)-1]
	bs := &BatterySummary{
		InitialMWh:   in.InitialBatteryMWh,
		FinalMWh:     last.BatteryChargeMWh,
		FinalPercent: last.BatteryPercent,
		MinMWh:       socMin,
		MaxMWh:       socMax,
		AvgPercent:   socSumPct / hours,
	}
	if in.BatteryCapacityMWh > 0 {
		bs.CyclesEquivalent = in.ThroughputMWh / (2 * in.BatteryCapacityMWh)
	}
	s.Battery = bs

	if in.SellPricePerMWh > 0 || in.BuyPricePerMWh > 0 {
		fin := &FinancialSummary{
			ExportValue: op.TotalExportMWh * in.SellPricePerMWh,
			ImportCost:  op.TotalImportMWh * in.BuyPricePerMWh,
		}
		fin.NetRevenue = fin.ExportValue - fin.ImportCost
		s.Financial = fin
	}

	return s
}
