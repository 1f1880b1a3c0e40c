package search

import (
	"context"
	"fmt"

	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/store"
)

// embeds queries and searches per-document vector indexes
type Client struct {
	embedder llm.Embedder
	vectors  store.Store
}

func New(embedder llm.Embedder, vectors store.Store) *Client {
	return &Client{
		embedder: embedder,
		vectors:  vectors,
	}
}

// embeds the query and returns the top-k most similar chunks from the
// document's index
func (c *Client) Search(ctx context.Context, docID, query string, k int) ([]store.Result, error) {
	embedding, err := c.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := c.vectors.Search(ctx, docID, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	return results, nil
}
