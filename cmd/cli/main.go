package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"grid-balance/internal/config"
	"grid-balance/internal/forecast"
	"grid-balance/internal/model"
	"grid-balance/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "windows":
		cmdWindows(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml --out results/dispatch.csv [--forecast points.json] [--seed 1]")
	fmt.Println("  cli windows --config examples/config.yaml [--hours 72] [--window 6] [--seed 1]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate runs the hourly balance loop and writes a per-hour CSV ledger")
	fmt.Println("  - windows ranks maintenance windows over a forecast horizon")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/dispatch.csv", "Output CSV path")
	forecastPath := fs.String("forecast", "", "Optional: JSON forecast file (default: synthetic)")
	seed := fs.Int64("seed", 0, "Seed for the synthetic forecast")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)

	var points []model.ForecastPoint
	var err error
	if *forecastPath != "" {
		points, err = forecast.LoadJSON(*forecastPath)
	} else {
		points, err = forecast.Synthetic{Seed: *seed}.Forecast(cfg.SimulationHours, *cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "forecast: %v\n", err)
		os.Exit(1)
	}

	engine := sim.New()
	res, err := engine.Simulate(*cfg, points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}
	if err := sim.WriteRecordsCSV(*outPath, res.Records); err != nil {
		fmt.Fprintf(os.Stderr, "csv: %v\n", err)
		os.Exit(1)
	}

	op := res.Summary.Operational
	fmt.Printf("Wrote %d rows to %s\n", len(res.Records), *outPath)
	fmt.Printf("Hours: %d (surplus %d / deficit %d / balanced %d)\n",
		res.Summary.HoursSimulated, op.SurplusHours, op.DeficitHours, op.BalancedHours)
	fmt.Printf("Generation %.1f MWh  Consumption %.1f MWh  Export %.1f MWh  Import %.1f MWh\n",
		op.TotalGenerationMWh, op.TotalConsumptionMWh, op.TotalExportMWh, op.TotalImportMWh)
	fmt.Printf("Capacity factor %.1f%%  Renewable penetration %.1f%%\n",
		op.CapacityFactor*100, op.RenewablePenetration*100)
	if res.Summary.Battery != nil {
		fmt.Printf("Battery: %.1f -> %.1f MWh (%.3f cycles)\n",
			res.Summary.Battery.InitialMWh, res.Summary.Battery.FinalMWh, res.Summary.Battery.CyclesEquivalent)
	}
	if res.Summary.Financial != nil {
		fmt.Printf("Net revenue: $%.2f\n", res.Summary.Financial.NetRevenue)
	}
	fmt.Printf("Alerts: %d (%d critical)\n", res.Summary.Alerts.Total, res.Summary.Alerts.Critical)
}

func cmdWindows(args []string) {
	fs := flag.NewFlagSet("windows", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	hours := fs.Int("hours", 72, "Forecast horizon in hours")
	window := fs.Int("window", 0, "Window length in hours (default: config value)")
	seed := fs.Int64("seed", 0, "Seed for the synthetic forecast")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *window > 0 {
		cfg.MaintenanceWindowHours = *window
	}

	points, err := forecast.Synthetic{Seed: *seed}.Forecast(*hours, *cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forecast: %v\n", err)
		os.Exit(1)
	}

	windows := sim.ScanMaintenanceWindows(points, cfg.MaintenanceWindowHours, 1)
	if len(windows) == 0 {
		fmt.Println("no maintenance windows (horizon shorter than window length)")
		return
	}

	fmt.Printf("%-4s %-22s %-8s %-12s %-10s %-10s\n", "rank", "start", "score", "lost MWh", "avg wind", "avg demand")
	for i, w := range windows {
		fmt.Printf("%-4d %-22s %-8.3f %-12.1f %-10.1f %-10.1f\n",
			i+1,
			w.StartTime.Format("2006-01-02 15:04"),
			w.Score,
			w.LostGenerationMWh,
			w.AvgWindSpeed,
			w.AvgDemand,
		)
	}
}

func loadConfig(path string) *config.SimulationConfig {
	if path == "" {
		cfg := config.Default()
		return &cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
