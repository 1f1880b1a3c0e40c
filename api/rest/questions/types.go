package questions

import (
	"context"

	"codeberg.org/docqa/server/internal/assistant"
)

// answers questions against indexed documents
type Answerer interface {
	Ask(ctx context.Context, req assistant.AskRequest) (*assistant.AskResponse, error)
	AskWithMemory(ctx context.Context, req assistant.AskRequest) (*assistant.MemoryAskResponse, error)
}

// Request represents the request body for question answering
type Request struct {
	Question   string `json:"question" binding:"required"`
	SessionID  string `json:"session_id"`
	DocumentID string `json:"document_id"`
	UseMemory  bool   `json:"use_memory"`
}
