package errors

import (
	"net/http"
	"strings"

	"codeberg.org/docqa/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes
const (
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "not_found"
	CodeValidationError  = "validation_error"
	CodeServerError      = "server_error"
	CodeBadRequest       = "bad_request"
	CodeTooManyRequests  = "too_many_requests"
	CodeDocumentNotFound = "document_not_found"
	CodeSessionNotFound  = "session_not_found"
	CodeReportNotFound   = "report_not_found"
	CodeLLMError         = "llm_error"
	CodeFileTooLarge     = "file_too_large"
	CodeUnsupportedFile  = "unsupported_file"
)

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	// add details if error provided
	if err != nil {
		info := classifyError(err)
		response.Details = info.sanitized
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		info := classifyError(err)
		details = info.sanitized
		// extract a more specific message from validation errors if available
		if strings.Contains(err.Error(), "binding") || strings.Contains(err.Error(), "validation") {
			message = "request validation failed"
		}
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
		Details: details,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	info := classifyError(err)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: info.sanitized,
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

// returns a 404 error for a missing document
func DocumentNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeDocumentNotFound,
		Message: "Document not found",
	})
}

// returns a 404 error for a missing chat session
func SessionNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeSessionNotFound,
		Message: "session not found",
	})
}

// returns a 404 error for a missing report
func ReportNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeReportNotFound,
		Message: "report not found",
	})
}

// returns a 502 error for upstream model failures
func LLMError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "language model request failed"
	}

	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	info := classifyError(err)

	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   CodeLLMError,
		Message: message,
		Details: info.sanitized,
	})
}

// returns a 400 error for uploads exceeding the size limit
func FileTooLarge(c *gin.Context, message string) {
	if message == "" {
		message = "uploaded file exceeds the size limit"
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeFileTooLarge,
		Message: message,
	})
}

// returns a 400 error for disallowed file types
func UnsupportedFile(c *gin.Context, message string) {
	if message == "" {
		message = "unsupported file type"
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeUnsupportedFile,
		Message: message,
	})
}
