package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health answers GET /healthz for load balancers and smoke tests.
func Health(driver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": driver})
	}
}
