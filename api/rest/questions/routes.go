package questions

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/docqa/server/internal/metrics"
)

// registers question answering routes
func RegisterRoutes(router *gin.RouterGroup, answerer Answerer, recorder *metrics.Exporter, llmLimit gin.HandlerFunc) {
	router.POST("/questions", llmLimit, Handler(answerer, recorder))
}
