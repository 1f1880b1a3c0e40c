package assistant

import (
	"context"

	"codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/sessions"
	"codeberg.org/docqa/server/internal/store"
)

// interface for similarity search over document indexes
type Searcher interface {
	Search(ctx context.Context, docID, query string, k int) ([]store.Result, error)
}

// orchestrates retrieval-augmented question answering
type Assistant struct {
	searcher  Searcher
	generator llm.TextGenerator
	sessions  *sessions.Manager
	registry  documents.Repository
}

// contains all inputs for answering a question
type AskRequest struct {
	Question   string
	SessionID  string
	DocumentID string // empty targets the most recently processed document
}

// contains the answer and its supporting chunks
type AskResponse struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	SessionID string   `json:"session_id"`
}

// extends AskResponse with conversation memory metadata
type MemoryAskResponse struct {
	AskResponse
	MemoryUsed         bool `json:"memory_used"`
	ConversationLength int  `json:"conversation_length"`
}
