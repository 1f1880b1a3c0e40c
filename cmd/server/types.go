package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/assistant"
	"codeberg.org/docqa/server/internal/comparison"
	"codeberg.org/docqa/server/internal/config"
	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/metrics"
	"codeberg.org/docqa/server/internal/processor"
	"codeberg.org/docqa/server/internal/reports"
	"codeberg.org/docqa/server/internal/search"
	"codeberg.org/docqa/server/internal/sessions"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	config      *config.Config
	registry    documents.Repository
	sessions    *sessions.Manager
	reportStore *reports.Store
	services    *Services
	metrics     *metrics.Exporter
	router      *gin.Engine
}

// holds all document intelligence service clients
type Services struct {
	LLM       llm.LLM
	Processor *processor.Processor
	Search    *search.Client
	Assistant *assistant.Assistant
	Analyzer  *comparison.Analyzer
}
