package handlers

import (
	"net/http"

	"grid-balance/internal/api/models"
	"grid-balance/internal/model"

	"github.com/gin-gonic/gin"
)

var faultDescriptions = map[model.FaultKind]string{
	model.FaultNone:                 "No fault; nominal operation",
	model.FaultSingleTurbineFailure: "One turbine offline for the run",
	model.FaultMultiTurbineFailure:  "Several turbines offline for the run",
	model.FaultBatteryFault:         "Battery capacity and power limits halved",
	model.FaultGridIssue:            "Grid connection unavailable; island operation",
}

// FaultHandler lists selectable fault profiles
type FaultHandler struct {
	turbineCount int
}

func NewFaultHandler(turbineCount int) *FaultHandler {
	return &FaultHandler{turbineCount: turbineCount}
}

// List handles GET /api/v1/faults
func (h *FaultHandler) List(c *gin.Context) {
	kinds := model.FaultKinds()
	out := make([]models.FaultInfo, 0, len(kinds))
	for _, k := range kinds {
		profile, err := model.FaultProfileFor(k, h.turbineCount)
		if err != nil {
			continue
		}
		out = append(out, models.FaultInfo{
			Kind:        k,
			Description: faultDescriptions[k],
			Profile:     profile,
		})
	}
	c.JSON(http.StatusOK, models.FaultsResponse{Faults: out})
}
