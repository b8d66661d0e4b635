package sim

import (
	"testing"
	"time"

	"grid-balance/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hourlyPoints(start time.Time, supplies, demands []float64) []model.ForecastPoint {
	points := make([]model.ForecastPoint, len(supplies))
	for i := range supplies {
		points[i] = model.ForecastPoint{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			WindSpeed: supplies[i] / 15,
			SupplyMW:  supplies[i],
			DemandMW:  demands[i],
		}
	}
	return points
}

func TestScanMaintenanceWindows_PrefersLowGeneration(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	supplies := []float64{120, 110, 20, 15, 10, 100, 130, 140}
	demands := []float64{80, 80, 60, 60, 60, 80, 90, 90}
	points := hourlyPoints(start, supplies, demands)

	windows := ScanMaintenanceWindows(points, 3, 1)
	require.Len(t, windows, 6)

	// Best window covers the calm stretch at hours 2..4.
	best := windows[0]
	assert.Equal(t, start.Add(2*time.Hour), best.StartTime)
	assert.Equal(t, start.Add(4*time.Hour), best.EndTime)
	assert.InDelta(t, 45, best.LostGenerationMWh, 1e-9)

	for _, w := range windows {
		assert.GreaterOrEqual(t, w.Score, 0.0)
		assert.LessOrEqual(t, w.Score, 1.0)
	}
	for i := 1; i < len(windows); i++ {
		assert.GreaterOrEqual(t, windows[i-1].Score, windows[i].Score)
	}
}

func TestScanMaintenanceWindows_TiesBreakByEarliestStart(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// Two identical flat stretches: identical scores, earlier start wins.
	supplies := []float64{10, 10, 100, 10, 10}
	demands := []float64{70, 70, 70, 70, 70}
	points := hourlyPoints(start, supplies, demands)

	windows := ScanMaintenanceWindows(points, 2, 1)
	require.Len(t, windows, 4)
	assert.Equal(t, windows[0].Score, windows[1].Score)
	assert.True(t, windows[0].StartTime.Before(windows[1].StartTime))
	assert.Equal(t, start, windows[0].StartTime)
}

func TestScanMaintenanceWindows_ShortHorizon(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	points := hourlyPoints(start, []float64{100, 90}, []float64{70, 70})

	assert.Nil(t, ScanMaintenanceWindows(points, 6, 1))
	assert.Nil(t, ScanMaintenanceWindows(points, 0, 1))
	assert.Nil(t, ScanMaintenanceWindows(nil, 6, 1))
}

func TestScanMaintenanceWindows_DemandBonus(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	// Equal lost generation everywhere; only demand distinguishes windows.
	supplies := []float64{50, 50, 50, 50, 50, 50}
	demands := []float64{100, 100, 100, 40, 40, 40}
	points := hourlyPoints(start, supplies, demands)

	windows := ScanMaintenanceWindows(points, 2, 1)
	require.NotEmpty(t, windows)
	assert.Equal(t, start.Add(3*time.Hour), windows[0].StartTime)
	assert.Less(t, windows[0].AvgDemand, windows[len(windows)-1].AvgDemand)
}
