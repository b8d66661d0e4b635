package sim

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"grid-balance/internal/model"
)

func WriteRecordsCSV(path string, records []model.TimestepRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"hour",
		"datetime",
		"simulated_supply_mw",
		"simulated_demand_mw",
		"net_balance_mw",
		"battery_charge_mwh",
		"battery_percent",
		"to_battery_mw",
		"from_battery_mw",
		"to_grid_mw",
		"from_grid_mw",
		"curtailed_mw",
		"unmet_demand_mw",
		"status",
		"wind_speed",
		"wind_direction",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Hour),
			fmtTime(r.Datetime),
			fmtFloat(r.SupplyMW),
			fmtFloat(r.DemandMW),
			fmtFloat(r.NetBalanceMW),
			fmtFloat(r.BatteryChargeMWh),
			fmtFloat(r.BatteryPercent),
			fmtFloat(r.ToBatteryMW),
			fmtFloat(r.FromBatteryMW),
			fmtFloat(r.ToGridMW),
			fmtFloat(r.FromGridMW),
			fmtFloat(r.CurtailedMW),
			fmtFloat(r.UnmetDemandMW),
			string(r.Status),
			fmtFloat(r.WindSpeed),
			fmtFloat(r.WindDirection),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
