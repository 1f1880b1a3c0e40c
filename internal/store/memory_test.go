package store

import (
	"context"
	"errors"
	"math"
	"testing"
)

func seedIndex(t *testing.T, s *MemoryStore, index string, entries []Entry) {
	t.Helper()

	ctx := context.Background()

	if err := s.CreateIndex(ctx, index); err != nil {
		t.Fatalf("CreateIndex failed: %v", err)
	}

	if err := s.Upsert(ctx, index, entries); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
}

func TestMemoryStoreSearchOrdersBySimilarity(t *testing.T) {
	s := NewMemoryStore()
	seedIndex(t, s, "doc", []Entry{
		{ID: "a", Content: "exact match", Vector: []float32{1, 0}, Position: 0},
		{ID: "b", Content: "orthogonal", Vector: []float32{0, 1}, Position: 1},
		{ID: "c", Content: "diagonal", Vector: []float32{1, 1}, Position: 2},
	})

	results, err := s.Search(context.Background(), "doc", []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].ID != "a" || results[1].ID != "c" {
		t.Errorf("expected order [a c], got [%s %s]", results[0].ID, results[1].ID)
	}

	if math.Abs(results[0].Score-1.0) > 1e-9 {
		t.Errorf("expected top score 1.0, got %f", results[0].Score)
	}
}

func TestMemoryStoreSearchBreaksTiesByPosition(t *testing.T) {
	s := NewMemoryStore()
	seedIndex(t, s, "doc", []Entry{
		{ID: "second", Content: "later chunk", Vector: []float32{1, 0}, Position: 5},
		{ID: "first", Content: "earlier chunk", Vector: []float32{1, 0}, Position: 2},
	})

	results, err := s.Search(context.Background(), "doc", []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if results[0].ID != "first" || results[1].ID != "second" {
		t.Errorf("expected tie broken by position, got [%s %s]", results[0].ID, results[1].ID)
	}
}

func TestMemoryStoreSearchCapsAtIndexSize(t *testing.T) {
	s := NewMemoryStore()
	seedIndex(t, s, "doc", []Entry{
		{ID: "only", Content: "lone chunk", Vector: []float32{1, 0}, Position: 0},
	})

	results, err := s.Search(context.Background(), "doc", []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestMemoryStoreSearchUnknownIndex(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Search(context.Background(), "missing", []float32{1, 0}, 3)
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestMemoryStoreUpsertUnknownIndex(t *testing.T) {
	s := NewMemoryStore()

	err := s.Upsert(context.Background(), "missing", []Entry{{ID: "a"}})
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestMemoryStoreCreateIndexReplacesExisting(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seedIndex(t, s, "doc", []Entry{
		{ID: "stale", Content: "old content", Vector: []float32{1, 0}, Position: 0},
	})

	if err := s.CreateIndex(ctx, "doc"); err != nil {
		t.Fatalf("CreateIndex failed: %v", err)
	}

	count, err := s.Count(ctx, "doc")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	if count != 0 {
		t.Errorf("expected recreated index to be empty, got %d entries", count)
	}
}

func TestMemoryStoreUpsertOverwritesByID(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seedIndex(t, s, "doc", []Entry{
		{ID: "a", Content: "original", Vector: []float32{1, 0}, Position: 0},
	})

	if err := s.Upsert(ctx, "doc", []Entry{
		{ID: "a", Content: "updated", Vector: []float32{0, 1}, Position: 0},
	}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	count, err := s.Count(ctx, "doc")
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}

	if count != 1 {
		t.Errorf("expected 1 entry after overwrite, got %d", count)
	}

	results, err := s.Search(ctx, "doc", []float32{0, 1}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if results[0].Content != "updated" {
		t.Errorf("expected updated content, got %q", results[0].Content)
	}
}

func TestMemoryStoreDeleteIndex(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	seedIndex(t, s, "doc", []Entry{
		{ID: "a", Content: "chunk", Vector: []float32{1, 0}, Position: 0},
	})

	if err := s.DeleteIndex(ctx, "doc"); err != nil {
		t.Fatalf("DeleteIndex failed: %v", err)
	}

	if err := s.DeleteIndex(ctx, "doc"); !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound on second delete, got %v", err)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0.0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity() = %f, want %f", got, tt.want)
			}
		})
	}
}
