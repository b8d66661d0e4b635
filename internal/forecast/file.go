package forecast

import (
	"encoding/json"
	"fmt"
	"os"

	"grid-balance/internal/model"
)

// fileWrapper matches the JSON shape written by the exporter tooling:
//
//	{ "points": [ ... ] }
//
// A bare top-level array is also accepted.
type fileWrapper struct {
	Points []model.ForecastPoint `json:"points"`
}

// LoadJSON reads a forecast sequence from a JSON file for offline CLI runs.
func LoadJSON(path string) ([]model.ForecastPoint, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var w fileWrapper
	if err := json.Unmarshal(raw, &w); err == nil && len(w.Points) > 0 {
		return w.Points, nil
	}

	var points []model.ForecastPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("failed to parse forecast file %s: %w", path, err)
	}
	return points, nil
}
