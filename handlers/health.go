package handlers

import (
	"net/http"

	"bookingflow/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest health snapshot. A degraded store still
// answers 200: every cache falls back to the network.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
