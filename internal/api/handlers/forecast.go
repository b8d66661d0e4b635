package handlers

import (
	"net/http"
	"strconv"

	"grid-balance/internal/api/models"
	"grid-balance/internal/config"
	"grid-balance/internal/forecast"

	"github.com/gin-gonic/gin"
)

// ForecastHandler serves standalone forecast sequences so the dashboard can
// preview conditions before running a simulation.
type ForecastHandler struct {
	defaults config.SimulationConfig
}

func NewForecastHandler(defaults config.SimulationConfig) *ForecastHandler {
	return &ForecastHandler{defaults: defaults}
}

// Get handles GET /api/v1/forecast?hours=24&seed=1
func (h *ForecastHandler) Get(c *gin.Context) {
	hours := h.defaults.SimulationHours
	if v := c.Query("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "hours must be a positive integer",
				},
			})
			return
		}
		hours = n
	}

	var seed int64
	if v := c.Query("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_REQUEST",
					Message: "seed must be an integer",
				},
			})
			return
		}
		seed = n
	}

	points, err := forecast.Synthetic{Seed: seed}.Forecast(hours, h.defaults)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "FORECAST_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	c.JSON(http.StatusOK, models.ForecastResponse{Points: points})
}
