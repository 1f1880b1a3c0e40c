package reports

import (
	"errors"

	"github.com/gin-gonic/gin"

	"codeberg.org/docqa/server/internal/auth"
	apierrors "codeberg.org/docqa/server/internal/errors"
	reportcore "codeberg.org/docqa/server/internal/reports"
)

// DownloadHandler godoc
// @Summary Download a comparison report
// @Description Streams the PDF report. The token query parameter must carry a download token issued for exactly this report.
// @Tags reports
// @Produce application/pdf
// @Param id path string true "report id"
// @Param token query string true "download token"
// @Success 200 {file} binary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/reports/{id}/download [get]
func DownloadHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		reportID := c.Param("id")

		// tokens are minted per report, a valid token for another one does not count
		tokenReportID, ok := auth.ReportID(c)
		if !ok || tokenReportID != reportID {
			apierrors.Unauthorized(c, "token does not grant access to this report")
			return
		}

		report, err := store.Get(reportID)
		if err != nil {
			if errors.Is(err, reportcore.ErrReportNotFound) {
				apierrors.ReportNotFound(c)
				return
			}

			apierrors.InternalError(c, "failed to load report", err)

			return
		}

		c.FileAttachment(report.Path, report.Filename)
	}
}
