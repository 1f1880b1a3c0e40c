package documents

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/docqa/server/api/rest/pagination"
	documentcore "codeberg.org/docqa/server/docqa/documents"
	apierrors "codeberg.org/docqa/server/internal/errors"
	"codeberg.org/docqa/server/internal/extractor"
	"codeberg.org/docqa/server/internal/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// UploadHandler godoc
// @Summary Upload and process a document
// @Description Extracts, chunks, embeds and indexes an uploaded PDF or text file. The document becomes the active one for question answering.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "document file (.pdf, .txt)"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/documents [post]
func UploadHandler(pipeline Pipeline, maxFileSize int64, recorder *metrics.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			apierrors.BadRequest(c, "file field is required", err)
			return
		}

		if !extractor.IsAllowedExtension(fileHeader.Filename) {
			apierrors.UnsupportedFile(c, fmt.Sprintf("unsupported file type %q (allowed: %s)",
				filepath.Ext(fileHeader.Filename), strings.Join(extractor.AllowedExtensions, ", ")))
			return
		}

		if err := extractor.ValidateSize(fileHeader.Size, maxFileSize); err != nil {
			apierrors.FileTooLarge(c, err.Error())
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			apierrors.InternalError(c, "failed to open upload", err)
			return
		}
		defer file.Close()

		extraction, err := extractor.FromUpload(file, fileHeader.Filename, fileHeader.Size)
		if err != nil {
			recorder.RecordDocumentProcessed(false)
			apierrors.BadRequest(c, "failed to extract document text", err)

			return
		}

		doc, err := pipeline.Process(c.Request.Context(), fileHeader.Filename, extraction)
		if err != nil {
			recorder.RecordDocumentProcessed(false)
			apierrors.InternalError(c, "failed to process document", err)

			return
		}

		recorder.RecordDocumentProcessed(true)

		c.JSON(http.StatusCreated, UploadResponse{
			DocumentID: doc.ID,
			Filename:   doc.Filename,
			Stats:      doc.Stats,
		})
	}
}

// ListHandler godoc
// @Summary List processed documents
// @Description Lists registered documents, newest first
// @Tags documents
// @Produce json
// @Param limit query int false "page size (default 20, max 100)"
// @Param offset query int false "page offset"
// @Success 200 {object} ListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/documents [get]
func ListHandler(repo documentcore.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.FromQuery(c, defaultPageSize, maxPageSize)

		docs, err := repo.List(c.Request.Context())
		if err != nil {
			apierrors.InternalError(c, "failed to list documents", err)
			return
		}

		summaries := make([]Summary, 0, len(docs))
		for _, doc := range pagination.Page(docs, params) {
			summaries = append(summaries, Summary{
				DocumentID: doc.ID,
				Filename:   doc.Filename,
				Stats:      doc.Stats,
				UploadedAt: doc.UploadedAt,
			})
		}

		c.JSON(http.StatusOK, ListResponse{
			Documents:  summaries,
			Pagination: pagination.NewMeta(params, len(docs)),
		})
	}
}

// GetHandler godoc
// @Summary Get a document
// @Description Returns a document's metadata and statistics
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} Summary
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/documents/{id} [get]
func GetHandler(repo documentcore.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := repo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, documentcore.ErrNotFound) {
				apierrors.DocumentNotFound(c)
				return
			}

			apierrors.InternalError(c, "failed to load document", err)

			return
		}

		c.JSON(http.StatusOK, Summary{
			DocumentID: doc.ID,
			Filename:   doc.Filename,
			Stats:      doc.Stats,
			UploadedAt: doc.UploadedAt,
		})
	}
}

// StructuredDataHandler godoc
// @Summary Extract structured data
// @Description Extracts name, contact, skills, experience, education and achievements from the document as JSON
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} StructuredDataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/documents/{id}/data [get]
func StructuredDataHandler(analyzer StructuredExtractor, recorder *metrics.Exporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		docID := c.Param("id")

		data, err := analyzer.ExtractStructured(c.Request.Context(), docID)
		if err != nil {
			if errors.Is(err, documentcore.ErrNotFound) {
				apierrors.DocumentNotFound(c)
				return
			}

			apierrors.LLMError(c, "failed to extract structured data", err)

			return
		}

		recorder.RecordComparison("extract")

		c.JSON(http.StatusOK, StructuredDataResponse{
			DocumentID: docID,
			Data:       data,
		})
	}
}

// DeleteHandler godoc
// @Summary Delete a document
// @Description Removes a document's vector index and registry entry
// @Tags documents
// @Produce json
// @Param id path string true "document id"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/documents/{id} [delete]
func DeleteHandler(pipeline Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		docID := c.Param("id")

		if err := pipeline.Remove(c.Request.Context(), docID); err != nil {
			if errors.Is(err, documentcore.ErrNotFound) {
				apierrors.DocumentNotFound(c)
				return
			}

			apierrors.InternalError(c, "failed to delete document", err)

			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "document deleted"})
	}
}

// ClearHandler godoc
// @Summary Clear all documents
// @Description Removes every document, its index and registry entry
// @Tags documents
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/documents [delete]
func ClearHandler(pipeline Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pipeline.Clear(c.Request.Context()); err != nil {
			apierrors.InternalError(c, "failed to clear documents", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "Comparison data cleared"})
	}
}
