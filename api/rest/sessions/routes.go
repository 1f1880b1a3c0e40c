package sessions

import (
	"github.com/gin-gonic/gin"

	sessioncore "codeberg.org/docqa/server/internal/sessions"
)

func RegisterRoutes(router *gin.RouterGroup, manager *sessioncore.Manager) {
	group := router.Group("/sessions")
	{
		group.GET("", ListHandler(manager))
		group.GET("/:id/history", HistoryHandler(manager))
		group.GET("/:id/export", ExportHandler(manager))
		group.GET("/:id/summary", SummaryHandler(manager))
		group.DELETE("/:id", ClearHandler(manager))
	}
}
