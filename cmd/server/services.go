package main

import (
	"fmt"

	"codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/assistant"
	"codeberg.org/docqa/server/internal/chunker"
	"codeberg.org/docqa/server/internal/comparison"
	"codeberg.org/docqa/server/internal/config"
	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/metrics"
	"codeberg.org/docqa/server/internal/processor"
	"codeberg.org/docqa/server/internal/search"
	"codeberg.org/docqa/server/internal/sessions"
	"codeberg.org/docqa/server/internal/store"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config, vectors store.Store, registry documents.Repository, sessionMgr *sessions.Manager, exporter *metrics.Exporter) (*Services, error) {
	llmClient, err := llm.NewLLM(cfg, exporter)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	processorClient := processor.New(llmClient, vectors, registry, chunker.Options{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})

	searchClient := search.New(llmClient, vectors)
	assistantClient := assistant.New(searchClient, llmClient, sessionMgr, registry)
	analyzerClient := comparison.New(searchClient, llmClient, registry, processorClient)

	return &Services{
		LLM:       llmClient,
		Processor: processorClient,
		Search:    searchClient,
		Assistant: assistantClient,
		Analyzer:  analyzerClient,
	}, nil
}
