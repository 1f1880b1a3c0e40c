package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/docqa/server/api/rest/comparison"
	"codeberg.org/docqa/server/api/rest/documents"
	"codeberg.org/docqa/server/api/rest/health"
	"codeberg.org/docqa/server/api/rest/questions"
	"codeberg.org/docqa/server/api/rest/reports"
	"codeberg.org/docqa/server/api/rest/sessions"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.AllowedOrigins))

	router.GET("/health", health.Handler(health.Info{
		Version:     serverVersion,
		StoreDriver: server.config.StoreDriver,
		LLMProvider: server.config.LLMProvider,
	}))
	router.GET("/metrics", gin.WrapH(server.metrics.Handler()))

	// endpoints that call the language model share one limiter
	llmLimit := NewLLMRateLimiter()

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		documents.RegisterRoutes(v1, server.services.Processor, server.registry, server.services.Analyzer, server.config.MaxFileSize, server.metrics, llmLimit)
		questions.RegisterRoutes(v1, server.services.Assistant, server.metrics, llmLimit)
		sessions.RegisterRoutes(v1, server.sessions)
		comparison.RegisterRoutes(v1, server.services.Analyzer, server.registry, server.reportStore, server.config.ReportTokenSecret, server.config.MaxFileSize, server.metrics, llmLimit)
		reports.RegisterRoutes(v1, server.reportStore, server.config.ReportTokenSecret)
	}
}
