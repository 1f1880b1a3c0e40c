package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/chunker"
	"codeberg.org/docqa/server/internal/extractor"
	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/logger"
	"codeberg.org/docqa/server/internal/store"
)

// orchestrates the document pipeline: extract, chunk, embed, index, register
type Processor struct {
	embedder llm.Embedder
	vectors  store.Store
	registry documents.Repository
	opts     chunker.Options
}

func New(embedder llm.Embedder, vectors store.Store, registry documents.Repository, opts chunker.Options) *Processor {
	return &Processor{
		embedder: embedder,
		vectors:  vectors,
		registry: registry,
		opts:     opts,
	}
}

// runs the full pipeline for a document on disk
func (p *Processor) ProcessFile(ctx context.Context, path string) (*documents.Document, error) {
	filename := filepath.Base(path)

	extraction, err := extractor.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %q: %w", filename, err)
	}

	return p.Process(ctx, filename, extraction)
}

// runs the pipeline for already-extracted text
func (p *Processor) Process(ctx context.Context, filename string, extraction *extractor.Extraction) (*documents.Document, error) {
	var (
		chunks []chunker.Chunk
		err    error
	)

	if len(extraction.Pages) > 0 {
		chunks, err = chunker.SplitPages(extraction.Pages, p.opts)
	} else {
		chunks, err = chunker.SplitText(extraction.Text, p.opts)
	}

	if err != nil {
		return nil, err
	}

	logger.Debug("generated chunks", "filename", filename, "count", len(chunks))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := p.embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	docID := documents.DeriveID(filename)

	if err := p.vectors.CreateIndex(ctx, docID); err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	entries := make([]store.Entry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = store.Entry{
			ID:       fmt.Sprintf("chunk-%d", chunk.Index),
			Content:  chunk.Content,
			Vector:   embeddings[i],
			Position: chunk.Index,
		}
	}

	if err := p.vectors.Upsert(ctx, docID, entries); err != nil {
		return nil, fmt.Errorf("failed to index chunks: %w", err)
	}

	joined := chunker.JoinContents(chunks)

	pages := len(extraction.Pages)
	if pages == 0 {
		pages = 1
	}

	doc := &documents.Document{
		ID:       docID,
		Filename: filename,
		Stats: documents.Stats{
			TotalWords:      len(strings.Fields(joined)),
			TotalCharacters: utf8.RuneCountInString(joined),
			TotalChunks:     len(chunks),
			TotalPages:      pages,
		},
		Text:       joined,
		Chunks:     texts,
		UploadedAt: time.Now(),
	}

	if err := p.registry.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to register document: %w", err)
	}

	logger.Info("document processed",
		"doc_id", docID,
		"chunks", len(chunks),
		"words", doc.Stats.TotalWords,
	)

	return doc, nil
}

// removes a document's index and registry entry
func (p *Processor) Remove(ctx context.Context, docID string) error {
	if err := p.registry.Delete(ctx, docID); err != nil {
		return err
	}

	if err := p.vectors.DeleteIndex(ctx, docID); err != nil && !errors.Is(err, store.ErrIndexNotFound) {
		return err
	}

	return nil
}

// removes every document and its index
func (p *Processor) Clear(ctx context.Context) error {
	docs, err := p.registry.List(ctx)
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := p.vectors.DeleteIndex(ctx, doc.ID); err != nil && !errors.Is(err, store.ErrIndexNotFound) {
			return err
		}
	}

	return p.registry.Clear(ctx)
}
