package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"grid-balance/internal/model"

	"gopkg.in/yaml.v3"
)

// TurbineRatedMW is the nameplate rating of a single turbine.
const TurbineRatedMW = 3.0

// SimulationConfig is the immutable input to one simulation run.
// It doubles as the on-disk YAML shape and the API request shape.
type SimulationConfig struct {
	TurbineCount          int     `yaml:"turbine_count" json:"turbine_count"`
	TurbineAvailability   float64 `yaml:"turbine_availability" json:"turbine_availability"`
	BatteryCapacityMWh    float64 `yaml:"battery_capacity_mwh" json:"battery_capacity_mwh"`
	InitialBatteryMWh     float64 `yaml:"initial_battery_mwh" json:"initial_battery_mwh"`
	BatteryMaxChargeMW    float64 `yaml:"battery_max_charge_mw" json:"battery_max_charge_mw"`
	BatteryMaxDischargeMW float64 `yaml:"battery_max_discharge_mw" json:"battery_max_discharge_mw"`
	LowThreshold          float64 `yaml:"low_threshold" json:"low_threshold"`
	HighThreshold         float64 `yaml:"high_threshold" json:"high_threshold"`
	CommunityBaseLoadMW   float64 `yaml:"community_base_load_mw" json:"community_base_load_mw"`
	GridAvailable         *bool   `yaml:"grid_available" json:"grid_available,omitempty"`
	SimulationHours       int     `yaml:"simulation_hours" json:"simulation_hours"`

	// BalanceToleranceMW is the Balanced band around zero net balance.
	BalanceToleranceMW float64 `yaml:"balance_tolerance_mw" json:"balance_tolerance_mw,omitempty"`

	// Alerting knobs.
	ImbalanceThresholdMW float64 `yaml:"imbalance_threshold_mw" json:"imbalance_threshold_mw,omitempty"`
	ImbalanceHours       int     `yaml:"imbalance_hours" json:"imbalance_hours,omitempty"`

	// Maintenance window length in hours.
	MaintenanceWindowHours int `yaml:"maintenance_window_hours" json:"maintenance_window_hours,omitempty"`

	// Price parameters for the financial summary. Zero values disable it.
	SellPricePerMWh float64 `yaml:"sell_price_per_mwh" json:"sell_price_per_mwh,omitempty"`
	BuyPricePerMWh  float64 `yaml:"buy_price_per_mwh" json:"buy_price_per_mwh,omitempty"`

	// Fault selects a pre-run fault scenario; the profile's multipliers are
	// applied by Effective().
	Fault model.FaultKind `yaml:"fault" json:"fault,omitempty"`
}

// Default returns the configuration the original dashboard ships with.
func Default() SimulationConfig {
	grid := true
	return SimulationConfig{
		TurbineCount:          50,
		TurbineAvailability:   0.95,
		BatteryCapacityMWh:    300,
		InitialBatteryMWh:     150,
		BatteryMaxChargeMW:    50,
		BatteryMaxDischargeMW: 100,
		LowThreshold:          0.1,
		HighThreshold:         0.9,
		CommunityBaseLoadMW:   75,
		GridAvailable:         &grid,
		SimulationHours:       24,

		BalanceToleranceMW:   model.DefaultBalanceToleranceMW,
		ImbalanceThresholdMW: 50,
		ImbalanceHours:       3,

		MaintenanceWindowHours: 6,

		SellPricePerMWh: 40,
		BuyPricePerMWh:  150,
	}
}

func Load(path string) (*SimulationConfig, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads a config file merged over defaults, without validating.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*SimulationConfig, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var override SimulationConfig
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, err
	}
	c := Merge(Default(), override)
	return &c, nil
}

// Merge overlays non-zero fields from override onto base.
// This is also used when applying API request overrides onto server defaults.
func Merge(base, override SimulationConfig) SimulationConfig {
	out := base
	if override.TurbineCount != 0 {
		out.TurbineCount = override.TurbineCount
	}
	if override.TurbineAvailability != 0 {
		out.TurbineAvailability = override.TurbineAvailability
	}
	if override.BatteryCapacityMWh != 0 {
		out.BatteryCapacityMWh = override.BatteryCapacityMWh
	}
	if override.InitialBatteryMWh != 0 {
		out.InitialBatteryMWh = override.InitialBatteryMWh
	}
	if override.BatteryMaxChargeMW != 0 {
		out.BatteryMaxChargeMW = override.BatteryMaxChargeMW
	}
	if override.BatteryMaxDischargeMW != 0 {
		out.BatteryMaxDischargeMW = override.BatteryMaxDischargeMW
	}
	if override.LowThreshold != 0 {
		out.LowThreshold = override.LowThreshold
	}
	if override.HighThreshold != 0 {
		out.HighThreshold = override.HighThreshold
	}
	if override.CommunityBaseLoadMW != 0 {
		out.CommunityBaseLoadMW = override.CommunityBaseLoadMW
	}
	if override.GridAvailable != nil {
		out.GridAvailable = override.GridAvailable
	}
	if override.SimulationHours != 0 {
		out.SimulationHours = override.SimulationHours
	}
	if override.BalanceToleranceMW != 0 {
		out.BalanceToleranceMW = override.BalanceToleranceMW
	}
	if override.ImbalanceThresholdMW != 0 {
		out.ImbalanceThresholdMW = override.ImbalanceThresholdMW
	}
	if override.ImbalanceHours != 0 {
		out.ImbalanceHours = override.ImbalanceHours
	}
	if override.MaintenanceWindowHours != 0 {
		out.MaintenanceWindowHours = override.MaintenanceWindowHours
	}
	if override.SellPricePerMWh != 0 {
		out.SellPricePerMWh = override.SellPricePerMWh
	}
	if override.BuyPricePerMWh != 0 {
		out.BuyPricePerMWh = override.BuyPricePerMWh
	}
	if override.Fault != "" {
		out.Fault = override.Fault
	}
	return out
}

// Validate fails fast on invalid bounds before any run is attempted.
func (c *SimulationConfig) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.TurbineCount <= 0 {
		return errors.New("turbine_count must be > 0")
	}
	if c.TurbineAvailability < 0 || c.TurbineAvailability > 1 {
		return errors.New("turbine_availability must be in [0, 1]")
	}
	if c.BatteryCapacityMWh <= 0 {
		return errors.New("battery_capacity_mwh must be > 0")
	}
	if c.InitialBatteryMWh < 0 || c.InitialBatteryMWh > c.BatteryCapacityMWh {
		return errors.New("initial_battery_mwh must be within [0, battery_capacity_mwh]")
	}
	if c.BatteryMaxChargeMW < 0 || c.BatteryMaxDischargeMW < 0 {
		return errors.New("battery power limits must be >= 0")
	}
	if c.LowThreshold < 0 || c.HighThreshold > 1 || c.LowThreshold >= c.HighThreshold {
		return errors.New("thresholds must satisfy 0<=low_threshold<high_threshold<=1")
	}
	if c.CommunityBaseLoadMW < 0 {
		return errors.New("community_base_load_mw must be >= 0")
	}
	if c.SimulationHours <= 0 {
		return errors.New("simulation_hours must be > 0")
	}
	if c.MaintenanceWindowHours < 0 {
		return errors.New("maintenance_window_hours must be >= 0")
	}
	if _, err := model.FaultProfileFor(c.Fault, c.TurbineCount); err != nil {
		return err
	}
	// Validate battery params by constructing a model.Battery.
	if _, err := model.NewBattery(c.BatteryParams(), c.InitialBatteryMWh); err != nil {
		return fmt.Errorf("battery config invalid: %w", err)
	}
	return nil
}

// BatteryParams maps the config onto the battery model.
func (c *SimulationConfig) BatteryParams() model.BatteryParams {
	return model.BatteryParams{
		CapacityMWh:    c.BatteryCapacityMWh,
		MaxChargeMW:    c.BatteryMaxChargeMW,
		MaxDischargeMW: c.BatteryMaxDischargeMW,
		LowThreshold:   c.LowThreshold,
		HighThreshold:  c.HighThreshold,
	}
}

// GridIsAvailable resolves the optional GridAvailable flag (default true).
func (c *SimulationConfig) GridIsAvailable() bool {
	return c.GridAvailable == nil || *c.GridAvailable
}

// RatedCapacityMW is the fleet nameplate capacity.
func (c *SimulationConfig) RatedCapacityMW() float64 {
	return float64(c.TurbineCount) * TurbineRatedMW
}

// Effective returns a copy with the configured fault profile's multipliers
// applied. The simulation loop only ever sees the transformed config.
func (c *SimulationConfig) Effective() (SimulationConfig, model.FaultProfile, error) {
	profile, err := model.FaultProfileFor(c.Fault, c.TurbineCount)
	if err != nil {
		return SimulationConfig{}, model.FaultProfile{}, err
	}
	out := *c
	out.TurbineAvailability *= profile.AvailabilityFactor
	out.BatteryCapacityMWh *= profile.CapacityFactor
	out.BatteryMaxChargeMW *= profile.PowerFactor
	out.BatteryMaxDischargeMW *= profile.PowerFactor
	if out.InitialBatteryMWh > out.BatteryCapacityMWh {
		out.InitialBatteryMWh = out.BatteryCapacityMWh
	}
	if profile.GridDisconnected {
		off := false
		out.GridAvailable = &off
	}
	return out, profile, nil
}
