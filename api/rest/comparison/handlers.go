package comparison

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	documentcore "codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/auth"
	comparisoncore "codeberg.org/docqa/server/internal/comparison"
	apierrors "codeberg.org/docqa/server/internal/errors"
	"codeberg.org/docqa/server/internal/extractor"
	"codeberg.org/docqa/server/internal/metrics"
	"codeberg.org/docqa/server/internal/reports"
)

// documents per comparison
const (
	minDocuments = 2
	maxDocuments = 3
)

func checkDocumentCount(c *gin.Context, count int) bool {
	if count < minDocuments {
		apierrors.BadRequest(c, "at least 2 documents are required for comparison", nil)
		return false
	}

	if count > maxDocuments {
		apierrors.BadRequest(c, "Maximum 3 documents allowed", nil)
		return false
	}

	return true
}

// UploadHandler godoc
// @Summary Upload documents for comparison
// @Description Processes 2-3 uploaded files in one batch. One file's failure never aborts the rest; the result map reports per-document outcomes.
// @Tags comparison
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "2-3 document files"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/comparison/documents [post]
func UploadHandler(analyzer Analyzer, maxFileSize int64, recorder *metrics.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			apierrors.BadRequest(c, "multipart form with a files field is required", err)
			return
		}

		files := form.File["files"]
		if !checkDocumentCount(c, len(files)) {
			return
		}

		for _, fileHeader := range files {
			if !extractor.IsAllowedExtension(fileHeader.Filename) {
				apierrors.UnsupportedFile(c, fmt.Sprintf("unsupported file type %q (allowed: %s)",
					filepath.Ext(fileHeader.Filename), strings.Join(extractor.AllowedExtensions, ", ")))
				return
			}

			if err := extractor.ValidateSize(fileHeader.Size, maxFileSize); err != nil {
				apierrors.FileTooLarge(c, err.Error())
				return
			}
		}

		// uploads are staged on disk under their original names, since
		// document ids derive from the filename
		paths := make([]string, 0, len(files))

		defer func() {
			for _, path := range paths {
				os.Remove(path) //nolint:errcheck // best-effort temp cleanup
			}
		}()

		for _, fileHeader := range files {
			path := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))

			if err := c.SaveUploadedFile(fileHeader, path); err != nil {
				apierrors.InternalError(c, "failed to stage upload", err)
				return
			}

			paths = append(paths, path)
		}

		results := analyzer.ProcessBatch(c.Request.Context(), paths)

		processed := 0

		for _, result := range results {
			if result.Status == comparisoncore.StatusSuccess {
				processed++
			}
		}

		recorder.RecordComparison("batch")

		c.JSON(http.StatusOK, UploadResponse{
			Results:   results,
			Processed: processed,
		})
	}
}

// AnalyzeHandler godoc
// @Summary Compare documents aspect by aspect
// @Description Analyzes each document against each aspect (default aspects when none are given) and returns the comparison matrix.
// @Tags comparison
// @Accept json
// @Produce json
// @Param request body AnalyzeRequest true "comparison request"
// @Success 200 {object} AnalyzeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/v1/comparison/analyze [post]
func AnalyzeHandler(analyzer Analyzer, recorder *metrics.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnalyzeRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if !checkDocumentCount(c, len(req.DocumentIDs)) {
			return
		}

		aspects := req.Aspects
		if len(aspects) == 0 {
			aspects = comparisoncore.DefaultAspects()
		}

		results := analyzer.Compare(c.Request.Context(), req.DocumentIDs, aspects)

		recorder.RecordComparison("analyze")

		c.JSON(http.StatusOK, AnalyzeResponse{
			Aspects: aspects,
			Results: results,
		})
	}
}

// RecommendationHandler godoc
// @Summary Recommend between documents
// @Description Compares the documents on the default aspects and produces a structured recommendation, optionally for a specific job role.
// @Tags comparison
// @Accept json
// @Produce json
// @Param request body RecommendationRequest true "recommendation request"
// @Success 200 {object} RecommendationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/comparison/recommendation [post]
func RecommendationHandler(analyzer Analyzer, recorder *metrics.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RecommendationRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if !checkDocumentCount(c, len(req.DocumentIDs)) {
			return
		}

		recommendation, err := analyzer.Recommend(c.Request.Context(), req.DocumentIDs, req.JobRole)
		if err != nil {
			apierrors.LLMError(c, "failed to generate recommendation", err)
			return
		}

		recorder.RecordComparison("recommend")

		c.JSON(http.StatusOK, RecommendationResponse{Recommendation: recommendation})
	}
}

// ReportHandler godoc
// @Summary Generate a PDF comparison report
// @Description Renders the comparison (and optionally a recommendation) as a PDF, stores it, and returns a download URL with a short-lived token.
// @Tags comparison
// @Accept json
// @Produce json
// @Param request body ReportRequest true "report request"
// @Success 201 {object} ReportResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/comparison/report [post]
func ReportHandler(analyzer Analyzer, repo documentcore.Repository, reportStore ReportStore, tokenSecret string, recorder *metrics.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReportRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.ValidationError(c, err)
			return
		}

		if !checkDocumentCount(c, len(req.DocumentIDs)) {
			return
		}

		docs := make([]*documentcore.Document, 0, len(req.DocumentIDs))

		for _, docID := range req.DocumentIDs {
			doc, err := repo.Get(c.Request.Context(), docID)
			if err != nil {
				if errors.Is(err, documentcore.ErrNotFound) {
					apierrors.DocumentNotFound(c)
					return
				}

				apierrors.InternalError(c, "failed to load document", err)

				return
			}

			docs = append(docs, doc)
		}

		aspects := req.Aspects
		if len(aspects) == 0 {
			aspects = comparisoncore.DefaultAspects()
		}

		// an analyze response passed back in skips rerunning the model
		results := req.Results
		if results == nil {
			results = analyzer.Compare(c.Request.Context(), req.DocumentIDs, aspects)
		}

		recommendation := req.Recommendation
		if recommendation == "" && req.IncludeRecommendation {
			var err error

			recommendation, err = analyzer.Recommend(c.Request.Context(), req.DocumentIDs, req.JobRole)
			if err != nil {
				apierrors.LLMError(c, "failed to generate recommendation", err)
				return
			}
		}

		generatedAt := time.Now()

		data, err := reports.Generate(reports.Comparison{
			Documents:      docs,
			Aspects:        aspects,
			Results:        results,
			Recommendation: recommendation,
			GeneratedAt:    generatedAt,
		})
		if err != nil {
			apierrors.InternalError(c, "failed to render report", err)
			return
		}

		report, err := reportStore.Save(data, generatedAt)
		if err != nil {
			apierrors.InternalError(c, "failed to store report", err)
			return
		}

		downloadToken, err := auth.GenerateDownloadToken(tokenSecret, report.ID)
		if err != nil {
			apierrors.InternalError(c, "failed to sign download token", err)
			return
		}

		recorder.RecordComparison("report")
		recorder.RecordReport()

		c.JSON(http.StatusCreated, ReportResponse{
			ReportID:    report.ID,
			Filename:    report.Filename,
			DownloadURL: fmt.Sprintf("/api/v1/reports/%s/download", report.ID),
			Token:       downloadToken,
		})
	}
}
