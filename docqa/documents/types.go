package documents

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// reported when a document id is not in the registry
var ErrNotFound = errors.New("document not found")

// statistics computed once at processing time
type Stats struct {
	TotalWords      int `json:"total_words"`
	TotalCharacters int `json:"total_characters"`
	TotalChunks     int `json:"total_chunks"`
	TotalPages      int `json:"total_pages"`
}

// a processed document with its extracted text and chunk contents
// Text and Chunks stay server-side and never serialize into API responses
type Document struct {
	ID         string    `json:"doc_id"`
	Filename   string    `json:"filename"`
	Stats      Stats     `json:"stats"`
	Text       string    `json:"-"`
	Chunks     []string  `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// repository interface for document registry operations
type Repository interface {
	Save(ctx context.Context, doc *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	// returns the most recently saved document
	Active(ctx context.Context) (*Document, error)
	// returns all documents, newest first
	List(ctx context.Context) ([]*Document, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

// derives a registry id from an uploaded filename:
// base name, ".pdf" removed, spaces replaced with underscores
func DeriveID(filename string) string {
	id := strings.ReplaceAll(filepath.Base(filename), ".pdf", "")
	return strings.ReplaceAll(id, " ", "_")
}
