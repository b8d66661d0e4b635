package handlers

import (
	"log"
	"net/http"
	"time"

	"grid-balance/internal/api/models"
	"grid-balance/internal/config"
	"grid-balance/internal/forecast"
	"grid-balance/internal/metrics"
	"grid-balance/internal/model"
	"grid-balance/internal/sim"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles simulation requests
type SimulateHandler struct {
	engine   *sim.Engine
	defaults config.SimulationConfig
}

// NewSimulateHandler creates a new simulation handler
func NewSimulateHandler(engine *sim.Engine, defaults config.SimulationConfig) *SimulateHandler {
	return &SimulateHandler{engine: engine, defaults: defaults}
}

// Run handles POST /api/v1/simulate
func (h *SimulateHandler) Run(c *gin.Context) {
	started := time.Now()

	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cfg := config.Merge(h.defaults, req.Config)
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	points, ok := h.resolveForecast(c, req, cfg)
	if !ok {
		return
	}

	result, err := h.engine.Simulate(cfg, points)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	metrics.SimulationsTotal.WithLabelValues("ok").Inc()
	metrics.SimulationDuration.Observe(time.Since(started).Seconds())
	for _, a := range result.Alerts {
		metrics.AlertsEmitted.WithLabelValues(string(a.Level)).Inc()
	}

	maxWindows := req.Options.MaxWindows
	if maxWindows == 0 {
		maxWindows = 3
	}

	resp := models.SimulateResponse{
		Records:            result.Records,
		Alerts:             result.Alerts,
		MaintenanceWindows: result.TopWindows(maxWindows),
		Summary:            result.Summary,
		Fault:              result.Fault,
		ProcessingTimeSec:  time.Since(started).Seconds(),
	}
	if req.Options.ExcludeRecords {
		resp.Records = nil
	}
	c.JSON(http.StatusOK, resp)
}

// resolveForecast picks the forecast source for a request. Returns false if an
// error response was already written.
func (h *SimulateHandler) resolveForecast(c *gin.Context, req models.SimulateRequest, cfg config.SimulationConfig) ([]model.ForecastPoint, bool) {
	if len(req.Forecast) > 0 {
		return req.Forecast, true
	}

	var provider forecast.Provider
	switch req.Source {
	case "", "synthetic":
		provider = forecast.Synthetic{Seed: req.Seed}
	case "openweather":
		if req.APIKey == "" {
			// Without a key the dashboard still gets data: substitute the
			// deterministic generator and say so in the log.
			log.Printf("[API] no weather API key, falling back to synthetic forecast")
			provider = forecast.Synthetic{Seed: req.Seed}
		} else {
			provider = forecast.NewOpenWeatherClient(req.APIKey, "", req.Latitude, req.Longitude)
		}
	default:
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_SOURCE",
				Message: "source must be \"synthetic\" or \"openweather\"",
			},
		})
		return nil, false
	}

	points, err := provider.Forecast(cfg.SimulationHours, cfg)
	if err != nil {
		// Forecast unavailability is fatal for the run; map upstream errors
		// onto sensible statuses.
		if fErr, ok := err.(*forecast.ForecastError); ok {
			statusCode := http.StatusBadGateway
			switch fErr.StatusCode {
			case http.StatusForbidden, http.StatusUnauthorized:
				statusCode = http.StatusUnauthorized
			case http.StatusTooManyRequests:
				statusCode = http.StatusTooManyRequests
			}
			c.JSON(statusCode, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    fErr.Code,
					Message: fErr.Message,
					Details: map[string]interface{}{
						"status_code": fErr.StatusCode,
					},
				},
			})
			return nil, false
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "FORECAST_UNAVAILABLE",
				Message: err.Error(),
			},
		})
		return nil, false
	}
	return points, true
}
