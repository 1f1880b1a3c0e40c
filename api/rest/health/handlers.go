package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler godoc
// @Summary Server health
// @Description Reports service status, configured backends and uptime
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(info Info) gin.HandlerFunc {
	started := time.Now()

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:        "healthy",
			Service:       "docqa",
			Version:       info.Version,
			StoreDriver:   info.StoreDriver,
			LLMProvider:   info.LLMProvider,
			UptimeSeconds: int64(time.Since(started).Seconds()),
		})
	}
}

// PingHandler godoc
// @Summary Ping
// @Description Responds with pong for connectivity testing
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /api/v1/ping [get]
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message: "pong",
	})
}
