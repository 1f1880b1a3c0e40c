package documents

import (
	"context"
	"sort"
	"sync"
)

// keeps the registry in process memory
type memoryRepository struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewMemoryRepository() Repository {
	return &memoryRepository{docs: make(map[string]*Document)}
}

func (r *memoryRepository) Save(_ context.Context, doc *Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[doc.ID] = doc

	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}

	return doc, nil
}

func (r *memoryRepository) Active(_ context.Context) (*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *Document

	for _, doc := range r.docs {
		if latest == nil || doc.UploadedAt.After(latest.UploadedAt) {
			latest = doc
		}
	}

	if latest == nil {
		return nil, ErrNotFound
	}

	return latest, nil
}

func (r *memoryRepository) List(_ context.Context) ([]*Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*Document, 0, len(r.docs))
	for _, doc := range r.docs {
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})

	return docs, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}

	delete(r.docs, id)

	return nil
}

func (r *memoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs = make(map[string]*Document)

	return nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.docs), nil
}
