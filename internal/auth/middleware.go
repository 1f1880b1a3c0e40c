package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// validates the download token in the query string and adds the report id
// to context
// a query parameter is used because browsers cannot set headers on
// download links
func DownloadTokenMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter required"})
			c.Abort()
			return
		}

		claims, err := ValidateDownloadToken(secret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("report_id", claims.ReportID)

		c.Next()
	}
}

// extracts report_id from context after DownloadTokenMiddleware
func ReportID(c *gin.Context) (string, bool) {
	reportID, exists := c.Get("report_id")

	if !exists {
		return "", false
	}

	return reportID.(string), true
}
