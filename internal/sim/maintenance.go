package sim

import (
	"sort"

	"grid-balance/internal/model"
)

// ScanMaintenanceWindows slides a window of windowHours over the forecast
// horizon and scores each start offset by forgone generation, favoring windows
// where demand is also below the horizon median. Returns all windows sorted
// descending by score, ties broken by earliest start. Empty when the horizon
// is shorter than the window.
func ScanMaintenanceWindows(points []model.ForecastPoint, windowHours int, dtHours float64) []model.MaintenanceWindow {
	if windowHours <= 0 || len(points) < windowHours {
		return nil
	}

	medianDemand := medianOf(points)

	n := len(points) - windowHours + 1
	windows := make([]model.MaintenanceWindow, 0, n)
	maxLost := 0.0
	for i := 0; i < n; i++ {
		var lost, wind, demand float64
		for _, p := range points[i : i+windowHours] {
			lost += p.SupplyMW * dtHours
			wind += p.WindSpeed
			demand += p.DemandMW
		}
		w := model.MaintenanceWindow{
			StartTime:         points[i].Timestamp,
			EndTime:           points[i+windowHours-1].Timestamp,
			LostGenerationMWh: lost,
			AvgWindSpeed:      wind / float64(windowHours),
			AvgDemand:         demand / float64(windowHours),
		}
		if lost > maxLost {
			maxLost = lost
		}
		windows = append(windows, w)
	}

	for i := range windows {
		score := 1.0
		if maxLost > 0 {
			score = 1 - windows[i].LostGenerationMWh/maxLost
		}
		// Demand-low bonus: prefer windows that also carry low demand risk.
		if windows[i].AvgDemand < medianDemand {
			score = 0.8*score + 0.2
		} else {
			score = 0.8 * score
		}
		windows[i].Score = clamp01(score)
	}

	sort.SliceStable(windows, func(i, j int) bool {
		if windows[i].Score != windows[j].Score {
			return windows[i].Score > windows[j].Score
		}
		return windows[i].StartTime.Before(windows[j].StartTime)
	})

	return windows
}

func medianOf(points []model.ForecastPoint) float64 {
	demands := make([]float64, len(points))
	for i, p := range points {
		demands[i] = p.DemandMW
	}
	sort.Float64s(demands)
	n := len(demands)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return demands[n/2]
	}
	return (demands[n/2-1] + demands[n/2]) / 2
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
