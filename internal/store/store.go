package store

import (
	"context"
	"errors"
)

// reported when an operation references an index that was never created or
// has been deleted
var ErrIndexNotFound = errors.New("index not found")

// a chunk and its embedding, keyed by id within an index
type Entry struct {
	ID       string
	Content  string
	Vector   []float32
	Position int
}

// a search hit ordered by similarity
type Result struct {
	ID       string
	Content  string
	Score    float64
	Position int
}

// persists one vector index per document and serves similarity search
type Store interface {
	// creates an empty index, replacing any existing entries under the same name
	CreateIndex(ctx context.Context, index string) error
	Upsert(ctx context.Context, index string, entries []Entry) error
	Search(ctx context.Context, index string, vector []float32, k int) ([]Result, error)
	DeleteIndex(ctx context.Context, index string) error
	Count(ctx context.Context, index string) (int, error)
}
