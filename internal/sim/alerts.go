package sim

import (
	"fmt"

	"grid-balance/internal/model"
)

// Wind limits for turbine operation, from the fleet's power curve.
const (
	veryLowWindMS = 2.5
	cutOutWindMS  = 25.0
)

// AlertRules evaluates the stateless rule table against each record. The only
// cross-record state is the consecutive-imbalance counter, which the caller
// owns for the duration of one run.
type AlertRules struct {
	ImbalanceThresholdMW float64
	ImbalanceHours       int
	GridAvailable        bool

	imbalanceRun int
}

// Evaluate returns zero or more alerts for a record. One alert per triggering
// condition per hour; no suppression or rate limiting.
func (r *AlertRules) Evaluate(rec model.TimestepRecord) []model.Alert {
	var out []model.Alert
	add := func(level model.AlertLevel, msg, details string) {
		out = append(out, model.Alert{Level: level, Message: msg, Timestamp: rec.Datetime, Details: details})
	}

	if rec.BatteryPercent < 10 {
		add(model.AlertCritical, "battery critically low",
			fmt.Sprintf("SOC at %.1f%%", rec.BatteryPercent))
	} else if rec.BatteryPercent > 95 {
		add(model.AlertWarning, "battery near full, export curtailment risk",
			fmt.Sprintf("SOC at %.1f%%", rec.BatteryPercent))
	}

	if r.ImbalanceThresholdMW > 0 {
		if rec.NetBalanceMW > r.ImbalanceThresholdMW || rec.NetBalanceMW < -r.ImbalanceThresholdMW {
			r.imbalanceRun++
		} else {
			r.imbalanceRun = 0
		}
		if r.ImbalanceHours > 0 && r.imbalanceRun >= r.ImbalanceHours {
			add(model.AlertWarning, "sustained grid imbalance",
				fmt.Sprintf("|net| > %.0f MW for %d consecutive hours", r.ImbalanceThresholdMW, r.imbalanceRun))
		}
	}

	if rec.UnmetDemandMW > 0 {
		add(model.AlertCritical, "load shed occurred",
			fmt.Sprintf("%.1f MW of demand unmet", rec.UnmetDemandMW))
	}

	// Only hours where a grid transfer was actually wanted: surplus the
	// battery could not absorb, or deficit it could not cover.
	if !r.GridAvailable && (rec.CurtailedMW > 0 || rec.UnmetDemandMW > 0) {
		add(model.AlertInfo, "grid disconnected, relying on battery only", "")
	}

	if rec.WindSpeed > cutOutWindMS {
		add(model.AlertCritical, "extreme wind shutdown",
			fmt.Sprintf("%.1f m/s exceeds cut-out", rec.WindSpeed))
	} else if rec.WindSpeed < veryLowWindMS {
		add(model.AlertWarning, "very low wind",
			fmt.Sprintf("%.1f m/s", rec.WindSpeed))
	}

	return out
}
