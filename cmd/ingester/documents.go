package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/chunker"
	"codeberg.org/docqa/server/internal/config"
	"codeberg.org/docqa/server/internal/extractor"
	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/logger"
	"codeberg.org/docqa/server/internal/processor"
	"codeberg.org/docqa/server/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
)

// chunks and embeds every supported document below the specified path
func IngestDocuments(cfg *config.Config, db *pgxpool.Pool, flags config.Flags) error {
	ctx := context.Background()
	logger.Info("starting documents ingestion", "path", flags.Path, "clear", flags.Clear)

	// use shared connection pool
	vectors, err := store.NewPostgresStore(ctx, db, cfg.EmbeddingDimensions)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %w", err)
	}

	registry, err := documents.NewPostgresRepository(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to initialize document registry: %w", err)
	}

	llmClient, err := llm.NewLLM(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %w", err)
	}

	pipeline := processor.New(llmClient, vectors, registry, chunker.Options{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})

	// clear existing indexes if requested
	if flags.Clear {
		logger.Info("clearing existing document indexes")

		if err := pipeline.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear existing indexes: %w", err)
		}

		logger.Info("cleared existing indexes")
	}

	// discover supported files under the target directory
	paths := collectDocuments(flags.Path)
	if len(paths) == 0 {
		return fmt.Errorf("no ingestable documents found in %s", flags.Path)
	}

	logger.Info("found documents", "count", len(paths))

	failed := 0

	for i, path := range paths {
		fmt.Printf("[%d/%d] Processing: %s\n", i+1, len(paths), filepath.Base(path))

		doc, err := pipeline.ProcessFile(ctx, path)
		if err != nil {
			failed++

			logger.Warn("skipping document",
				"file", filepath.Base(path),
				"error", err,
			)

			continue
		}

		fmt.Printf("[%d/%d] Completed: %s (%d chunks, %d words)\n",
			i+1, len(paths), doc.Filename, doc.Stats.TotalChunks, doc.Stats.TotalWords)
	}

	if failed == len(paths) {
		return fmt.Errorf("all %d documents failed to ingest", failed)
	}

	// verify registry state
	count, err := registry.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify document count: %w", err)
	}

	logger.Info("successfully ingested documents",
		"ingested", len(paths)-failed,
		"failed", failed,
		"total_documents", count,
	)

	return nil
}

// walks the directory tree and returns supported document paths in sorted order
func collectDocuments(dir string) []string {
	var paths []string

	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error { //nolint:errcheck,gosec // G104: walk errors are logged per path and skipped
		if err != nil {
			logger.Warn("error accessing path",
				"path", path,
				"error", err,
			)
			return nil // continue walking
		}

		if info.IsDir() || !extractor.IsAllowedExtension(path) {
			return nil
		}

		paths = append(paths, path)

		return nil
	})

	sort.Strings(paths)

	return paths
}
