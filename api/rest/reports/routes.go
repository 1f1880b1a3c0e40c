package reports

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/docqa/server/internal/auth"
)

func RegisterRoutes(router *gin.RouterGroup, store Store, tokenSecret string) {
	router.GET("/reports/:id/download", auth.DownloadTokenMiddleware(tokenSecret), DownloadHandler(store))
}
