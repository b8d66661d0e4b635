package middleware

import (
	"net/http"

	"grid-balance/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from handler panics and answers with the API's
// standard error envelope.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "An unexpected error occurred"
		switch v := recovered.(type) {
		case error:
			msg = v.Error()
		case string:
			msg = v
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: msg,
			},
		})
	})
}
