package comparison

import (
	"context"

	"codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/store"
)

// batch entry states
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// aspects analyzed when the caller does not name any
var defaultAspects = []string{
	"skills and technologies",
	"work experience and roles",
	"education and certifications",
	"key achievements",
	"overall strengths",
	"potential areas for growth",
}

// DefaultAspects returns a copy of the aspect list used when none is given.
func DefaultAspects() []string {
	return append([]string(nil), defaultAspects...)
}

// interface for similarity search over document indexes
type Searcher interface {
	Search(ctx context.Context, docID, query string, k int) ([]store.Result, error)
}

// interface for the document ingestion pipeline
type Pipeline interface {
	ProcessFile(ctx context.Context, path string) (*documents.Document, error)
	Clear(ctx context.Context) error
}

// analyzes documents side by side and recommends between them
type Analyzer struct {
	searcher  Searcher
	generator llm.TextGenerator
	registry  documents.Repository
	pipeline  Pipeline
}

// outcome of one file in a batch upload
type BatchResult struct {
	Status   string           `json:"status"`
	Filename string           `json:"filename,omitempty"`
	Stats    *documents.Stats `json:"stats,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// fields extracted from a document, "N/A" where the model found nothing
type StructuredData struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experience_years"`
	Education       []string `json:"education"`
	Certifications  []string `json:"certifications"`
	KeyAchievements []string `json:"key_achievements"`
}
