package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	apierrors "codeberg.org/docqa/server/internal/errors"
	"codeberg.org/docqa/server/internal/logger"
	"codeberg.org/docqa/server/internal/metrics"
)

// model-backed endpoints share one limit per client IP
const (
	llmLimitPeriod   = 1 * time.Minute
	llmLimitRequests = 30
)

// configures CORS; an empty origin list allows all origins (development)
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	if len(allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	return cors.New(corsConfig)
}

// logs each request and feeds the HTTP metrics
func RequestLogger(exporter *metrics.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()

		c.Next()

		latency := time.Since(started)

		// route template keeps metric label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		exporter.RecordRequest(c.Request.Method, path, c.Writer.Status(), latency)

		logger.Info("request handled",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
		)
	}
}

// recovers panics into the standard error envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, apierrors.ErrorResponse{
			Error:   apierrors.CodeServerError,
			Message: "internal server error",
		})
	})
}

// rate limits endpoints that call the language model
func NewLLMRateLimiter() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: llmLimitPeriod,
		Limit:  llmLimitRequests,
	}

	return mgin.NewMiddleware(
		limiter.New(memory.NewStore(), rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			apierrors.TooManyRequests(c, "model request limit reached, retry shortly")
		}),
	)
}
