package forecast

import (
	"math"
	"math/rand"
	"time"

	"grid-balance/internal/config"
	"grid-balance/internal/model"
)

// Provider supplies an ordered forecast sequence for a horizon. Timestamps are
// strictly increasing; the length ideally equals horizonHours (the engine
// truncates when it is shorter).
type Provider interface {
	Forecast(horizonHours int, cfg config.SimulationConfig) ([]model.ForecastPoint, error)
}

// PowerCurveFactor is the standard turbine power curve: 0 below cut-in,
// ramping to rated output at 12 m/s, constant to cut-out at 25 m/s, then 0.
func PowerCurveFactor(windSpeed float64) float64 {
	switch {
	case windSpeed < 3.5:
		return 0
	case windSpeed < 6:
		return 0.1 + (windSpeed-3.5)*0.15
	case windSpeed < 8:
		return 0.475 + (windSpeed-6)*0.1875
	case windSpeed < 10:
		return 0.85 + (windSpeed-8)*0.075
	case windSpeed < 25:
		return 1.0
	default:
		return 0
	}
}

// SupplyMW converts a wind speed into fleet output for the given config.
func SupplyMW(windSpeed float64, cfg config.SimulationConfig) float64 {
	mw := cfg.RatedCapacityMW() * PowerCurveFactor(windSpeed) * cfg.TurbineAvailability
	if mw < 0 {
		return 0
	}
	return mw
}

// demandFactor is the community's time-of-day load shape: night trough,
// morning and evening peaks.
func demandFactor(hour int) float64 {
	switch {
	case hour < 5:
		return 0.65
	case hour < 7:
		return 0.75
	case hour < 9:
		return 1.3
	case hour < 17:
		return 1.0
	case hour < 19:
		return 1.4
	case hour < 22:
		return 1.1
	default:
		return 0.8
	}
}

// DemandMW computes community demand for an hour of day. jitter shifts the
// result by up to a few MW; pass 0 for the pure profile.
func DemandMW(hour int, cfg config.SimulationConfig, jitter float64) float64 {
	base := cfg.CommunityBaseLoadMW
	demand := base*demandFactor(hour) + math.Sin(float64(hour)/12*math.Pi)*0.11*base + jitter
	if min := 0.7 * base; demand < min {
		demand = min
	}
	if max := 1.6 * base; demand > max {
		demand = max
	}
	return demand
}

// Synthetic generates a deterministic diurnal wind/demand profile. Identical
// Seed and Start always produce identical sequences, which keeps whole-run
// determinism testable end to end.
type Synthetic struct {
	Seed  int64
	Start time.Time
}

func (s Synthetic) Forecast(horizonHours int, cfg config.SimulationConfig) ([]model.ForecastPoint, error) {
	start := s.Start
	if start.IsZero() {
		start = time.Now().UTC().Truncate(time.Hour)
	}
	rng := rand.New(rand.NewSource(s.Seed))

	points := make([]model.ForecastPoint, 0, horizonHours)
	for i := 0; i < horizonHours; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		h := ts.Hour()

		wind := 10 + 4*math.Sin(math.Pi*float64(h-8)/16) + rng.NormFloat64()
		if wind < 2 {
			wind = 2
		}
		if wind > 25 {
			wind = 25
		}
		dir := 250 + 30*math.Sin(math.Pi*float64(h)/24) + rng.NormFloat64()*10

		p := model.ForecastPoint{
			Timestamp:     ts,
			WindSpeed:     wind,
			WindDirection: dir,
			Temperature:   25 + 3*math.Sin(math.Pi*float64(h-10)/24),
			Pressure:      1013,
			DemandMW:      DemandMW(h, cfg, rng.NormFloat64()*0.04*cfg.CommunityBaseLoadMW),
		}
		p.SupplyMW = SupplyMW(wind, cfg)
		points = append(points, p)
	}
	return points, nil
}
