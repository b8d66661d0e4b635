package forecast

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"grid-balance/internal/config"
	"grid-balance/internal/model"
)

// ForecastError represents a failure to obtain forecast data. It is fatal for
// the requested run; no partial simulation is produced from it.
type ForecastError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ForecastError) Error() string {
	return e.Message
}

// OpenWeatherClient fetches the 5-day/3-hour forecast and adapts it into
// hourly ForecastPoints with supply/demand attached.
type OpenWeatherClient struct {
	APIKey  string
	BaseURL string
	Lat     string
	Lon     string
	Client  *http.Client
}

// NewOpenWeatherClient creates a forecast client. If baseURL is empty,
// defaults to the public OpenWeatherMap endpoint.
func NewOpenWeatherClient(apiKey, baseURL, lat, lon string) *OpenWeatherClient {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org"
	}
	if lat == "" {
		lat = "16.99"
	}
	if lon == "" {
		lon = "73.30"
	}
	return &OpenWeatherClient{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Lat:     lat,
		Lon:     lon,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// openWeatherResponse matches the JSON shape of /data/2.5/forecast.
type openWeatherResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   float64 `json:"deg"`
		} `json:"wind"`
	} `json:"list"`
}

func (c *OpenWeatherClient) Forecast(horizonHours int, cfg config.SimulationConfig) ([]model.ForecastPoint, error) {
	if c.APIKey == "" {
		return nil, &ForecastError{Code: "MISSING_API_KEY", Message: "weather API key is required"}
	}

	u, err := url.Parse(c.BaseURL + "/data/2.5/forecast")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("lat", c.Lat)
	q.Set("lon", c.Lon)
	q.Set("appid", c.APIKey)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Printf("[Forecast] Request: GET %s (lat=%s, lon=%s, horizon=%dh)", u.Path, c.Lat, c.Lon, horizonHours)

	start := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		log.Printf("[Forecast] Request failed: %v (duration: %v)", err, time.Since(start))
		return nil, &ForecastError{Code: "UPSTREAM_UNAVAILABLE", Message: fmt.Sprintf("weather service unreachable: %v", err)}
	}
	defer resp.Body.Close()

	log.Printf("[Forecast] Response: %d %s (duration: %v)", resp.StatusCode, resp.Status, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &ForecastError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_API_KEY",
			Message:    "invalid weather API key or insufficient permissions",
		}
	case http.StatusTooManyRequests:
		return nil, &ForecastError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    "weather API rate limit exceeded",
		}
	default:
		return nil, &ForecastError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("weather API returned status %d", resp.StatusCode),
		}
	}

	var parsed openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ForecastError{Code: "DECODE_ERROR", Message: fmt.Sprintf("failed to decode forecast: %v", err)}
	}
	if len(parsed.List) == 0 {
		return nil, &ForecastError{Code: "EMPTY_FORECAST", Message: "weather API returned no forecast periods"}
	}

	// Expand 3-hourly periods into hourly points, holding each period's
	// weather for its three hours.
	points := make([]model.ForecastPoint, 0, horizonHours)
	for _, period := range parsed.List {
		base := time.Unix(period.Dt, 0).UTC()
		for offset := 0; offset < 3 && len(points) < horizonHours; offset++ {
			ts := base.Add(time.Duration(offset) * time.Hour)
			p := model.ForecastPoint{
				Timestamp:     ts,
				WindSpeed:     period.Wind.Speed,
				WindDirection: period.Wind.Deg,
				Temperature:   period.Main.Temp,
				Pressure:      period.Main.Pressure,
				DemandMW:      DemandMW(ts.Hour(), cfg, 0),
			}
			p.SupplyMW = SupplyMW(p.WindSpeed, cfg)
			points = append(points, p)
		}
		if len(points) >= horizonHours {
			break
		}
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

	log.Printf("[Forecast] Success: %d hourly points from %d periods", len(points), len(parsed.List))
	return points, nil
}
