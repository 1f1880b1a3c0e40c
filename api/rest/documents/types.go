package documents

import (
	"context"
	"time"

	"codeberg.org/docqa/server/api/rest/pagination"
	documentcore "codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/comparison"
	"codeberg.org/docqa/server/internal/extractor"
)

// processes uploads into the registry and vector index
type Pipeline interface {
	Process(ctx context.Context, filename string, extraction *extractor.Extraction) (*documentcore.Document, error)
	Remove(ctx context.Context, docID string) error
	Clear(ctx context.Context) error
}

// extracts structured fields from a processed document
type StructuredExtractor interface {
	ExtractStructured(ctx context.Context, docID string) (*comparison.StructuredData, error)
}

// response for a processed upload
type UploadResponse struct {
	DocumentID string             `json:"document_id"`
	Filename   string             `json:"filename"`
	Stats      documentcore.Stats `json:"stats"`
}

// one document in a listing
type Summary struct {
	DocumentID string             `json:"document_id"`
	Filename   string             `json:"filename"`
	Stats      documentcore.Stats `json:"stats"`
	UploadedAt time.Time          `json:"uploaded_at"`
}

// response for the document listing
type ListResponse struct {
	Documents  []Summary       `json:"documents"`
	Pagination pagination.Meta `json:"pagination"`
}

// response carrying extracted structured fields
type StructuredDataResponse struct {
	DocumentID string                     `json:"document_id"`
	Data       *comparison.StructuredData `json:"data"`
}

// generic message response
type MessageResponse struct {
	Message string `json:"message"`
}
