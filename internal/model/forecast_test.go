package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestForecastPoint_Anomalous(t *testing.T) {
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	good := ForecastPoint{Timestamp: ts, WindSpeed: 8, SupplyMW: 90, DemandMW: 70}
	assert.False(t, good.Anomalous())

	cases := []ForecastPoint{
		{Timestamp: ts, WindSpeed: -3, SupplyMW: 90, DemandMW: 70},
		{Timestamp: ts, WindSpeed: 8, SupplyMW: math.NaN(), DemandMW: 70},
		{Timestamp: ts, WindSpeed: 8, SupplyMW: math.Inf(1), DemandMW: 70},
		{Timestamp: ts, WindSpeed: 8, SupplyMW: 90, DemandMW: -1},
		{Timestamp: ts, WindSpeed: math.NaN(), SupplyMW: 90, DemandMW: 70},
	}
	for i, p := range cases {
		assert.True(t, p.Anomalous(), "case %d", i)
	}
}

func TestForecastPoint_Sanitized(t *testing.T) {
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	p := ForecastPoint{Timestamp: ts, WindSpeed: -3, SupplyMW: math.NaN(), DemandMW: 70}
	s := p.Sanitized()
	assert.Zero(t, s.SupplyMW)
	assert.Zero(t, s.DemandMW)
	assert.Zero(t, s.WindSpeed)
	assert.Equal(t, ts, s.Timestamp)

	// Clean points pass through untouched.
	good := ForecastPoint{Timestamp: ts, WindSpeed: 8, SupplyMW: 90, DemandMW: 70}
	assert.Equal(t, good, good.Sanitized())
}

func TestStatusFromNet(t *testing.T) {
	assert.Equal(t, StatusSurplus, StatusFromNet(10, 5))
	assert.Equal(t, StatusDeficit, StatusFromNet(-10, 5))
	assert.Equal(t, StatusBalanced, StatusFromNet(3, 5))
	assert.Equal(t, StatusBalanced, StatusFromNet(-5, 5))
	assert.Equal(t, StatusBalanced, StatusFromNet(5, 5))
}
