package comparison

import (
	"context"
	"time"

	comparisoncore "codeberg.org/docqa/server/internal/comparison"
	"codeberg.org/docqa/server/internal/reports"
)

// runs comparison operations over processed documents
type Analyzer interface {
	Compare(ctx context.Context, docIDs, aspects []string) map[string]map[string]string
	Recommend(ctx context.Context, docIDs []string, jobRole string) (string, error)
	ProcessBatch(ctx context.Context, paths []string) map[string]comparisoncore.BatchResult
}

// persists rendered PDF reports
type ReportStore interface {
	Save(data []byte, generatedAt time.Time) (*reports.Report, error)
}

// response for the comparison batch upload
type UploadResponse struct {
	Results   map[string]comparisoncore.BatchResult `json:"results"`
	Processed int                                   `json:"processed"`
}

// AnalyzeRequest names the documents to compare and, optionally, the aspects
type AnalyzeRequest struct {
	DocumentIDs []string `json:"document_ids" binding:"required"`
	Aspects     []string `json:"aspects"`
}

// response carrying the aspect-by-document comparison matrix
type AnalyzeResponse struct {
	Aspects []string                     `json:"aspects"`
	Results map[string]map[string]string `json:"results"`
}

// RecommendationRequest asks for a recommendation between documents
type RecommendationRequest struct {
	DocumentIDs []string `json:"document_ids" binding:"required"`
	JobRole     string   `json:"job_role"`
}

type RecommendationResponse struct {
	Recommendation string `json:"recommendation"`
}

// ReportRequest configures a PDF report. Results and Recommendation may carry
// a previous analyze/recommendation response to skip rerunning the model.
type ReportRequest struct {
	DocumentIDs           []string                     `json:"document_ids" binding:"required"`
	Aspects               []string                     `json:"aspects"`
	IncludeRecommendation bool                         `json:"include_recommendation"`
	JobRole               string                       `json:"job_role"`
	Results               map[string]map[string]string `json:"results"`
	Recommendation        string                       `json:"recommendation"`
}

// response for a generated report
type ReportResponse struct {
	ReportID    string `json:"report_id"`
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
	Token       string `json:"token"`
}
