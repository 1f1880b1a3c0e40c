package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// keeps vector indexes in process memory
// brute-force cosine search is plenty for per-document collections
type MemoryStore struct {
	mu      sync.RWMutex
	indexes map[string]map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		indexes: make(map[string]map[string]Entry),
	}
}

func (s *MemoryStore) CreateIndex(_ context.Context, index string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.indexes[index] = make(map[string]Entry)

	return nil
}

func (s *MemoryStore) Upsert(_ context.Context, index string, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.indexes[index]
	if !ok {
		return fmt.Errorf("upsert into %q: %w", index, ErrIndexNotFound)
	}

	for _, entry := range entries {
		byID[entry.ID] = entry
	}

	return nil
}

func (s *MemoryStore) Search(_ context.Context, index string, vector []float32, k int) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID, ok := s.indexes[index]
	if !ok {
		return nil, fmt.Errorf("search in %q: %w", index, ErrIndexNotFound)
	}

	if k <= 0 || len(byID) == 0 {
		return nil, nil
	}

	results := make([]Result, 0, len(byID))

	for _, entry := range byID {
		results = append(results, Result{
			ID:       entry.ID,
			Content:  entry.Content,
			Score:    cosineSimilarity(vector, entry.Vector),
			Position: entry.Position,
		})
	}

	// ties resolve in document order so repeated searches stay deterministic
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}

		return results[i].Position < results[j].Position
	})

	if k > len(results) {
		k = len(results)
	}

	return results[:k], nil
}

func (s *MemoryStore) DeleteIndex(_ context.Context, index string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[index]; !ok {
		return fmt.Errorf("delete %q: %w", index, ErrIndexNotFound)
	}

	delete(s.indexes, index)

	return nil
}

func (s *MemoryStore) Count(_ context.Context, index string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID, ok := s.indexes[index]
	if !ok {
		return 0, fmt.Errorf("count %q: %w", index, ErrIndexNotFound)
	}

	return len(byID), nil
}

// calculates the cosine similarity between two vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64

	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
