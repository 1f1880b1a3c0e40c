package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "codeberg.org/docqa/server/docs"
	"codeberg.org/docqa/server/internal/config"
	"codeberg.org/docqa/server/internal/logger"
)

const serverVersion = "1.0.0"

// @title Document QA API
// @version 1.0
// @description Retrieval-augmented document question answering and comparison service
// @description
// @description Features:
// @description - PDF and text ingestion: extraction, chunking, embeddings, per-document vector indexes
// @description - Question answering over the active document, with optional conversation memory
// @description - Side-by-side comparison of 2-3 documents with structured data extraction
// @description - PDF comparison reports with token-gated downloads

// @contact.name API Support
// @contact.url https://codeberg.org/docqa/server

// @license.name GPL-3.0
// @license.url https://www.gnu.org/licenses/gpl-3.0.html

// @BasePath /

func main() {
	logger.Info("starting docqa server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// create server with all dependencies
	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening",
			"port", cfg.Port,
			"store", cfg.StoreDriver,
			"llm_provider", cfg.LLMProvider,
		)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// keep the active-sessions gauge current
	gaugeCtx, gaugeCancel := context.WithCancel(context.Background())
	go srv.trackSessions(gaugeCtx)

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	gaugeCancel()

	logger.Info("shutting down server")

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// stop session cleanup
	srv.sessions.Stop()

	// close database connection
	if srv.db != nil {
		srv.db.Close()
	}

	logger.Info("server stopped")
}
