package comparison

import (
	"github.com/gin-gonic/gin"

	documentcore "codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/metrics"
)

func RegisterRoutes(router *gin.RouterGroup, analyzer Analyzer, repo documentcore.Repository, reportStore ReportStore, tokenSecret string, maxFileSize int64, recorder *metrics.Exporter, llmLimit gin.HandlerFunc) {
	group := router.Group("/comparison")
	{
		group.POST("/documents", UploadHandler(analyzer, maxFileSize, recorder))

		// everything below calls the language model
		group.POST("/analyze", llmLimit, AnalyzeHandler(analyzer, recorder))
		group.POST("/recommendation", llmLimit, RecommendationHandler(analyzer, recorder))
		group.POST("/report", llmLimit, ReportHandler(analyzer, repo, reportStore, tokenSecret, recorder))
	}
}
