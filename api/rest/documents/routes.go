package documents

import (
	"github.com/gin-gonic/gin"

	documentcore "codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/metrics"
)

func RegisterRoutes(router *gin.RouterGroup, pipeline Pipeline, repo documentcore.Repository, analyzer StructuredExtractor, maxFileSize int64, recorder *metrics.Exporter, llmLimit gin.HandlerFunc) {
	group := router.Group("/documents")
	{
		group.POST("", UploadHandler(pipeline, maxFileSize, recorder))
		group.GET("", ListHandler(repo))
		group.DELETE("", ClearHandler(pipeline))
		group.GET("/:id", GetHandler(repo))
		group.DELETE("/:id", DeleteHandler(pipeline))

		// structured extraction calls the language model, so it shares the LLM rate limit
		group.GET("/:id/data", llmLimit, StructuredDataHandler(analyzer, recorder))
	}
}
