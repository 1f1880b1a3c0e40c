package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/docqa/server/internal/config"
	"codeberg.org/docqa/server/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ingester <command> [options]")
		fmt.Println("Commands:")
		fmt.Println("  documents - ingest PDF and text files into the vector store")
		fmt.Println("\nOptions:")
		fmt.Println("  --path <path>  - Directory of documents to ingest")
		fmt.Println("  --clear        - Clear existing indexes before ingesting")
		os.Exit(1)
	}

	command := os.Args[1]

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	// ingested vectors must outlive the process, so the memory driver is no use here
	if !cfg.UsesPostgres() {
		logger.Fatal("ingester requires postgres storage", "store", cfg.StoreDriver)
	}

	// connect to database
	ctx := context.Background()
	db, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to create database pool", "error", err)
	}

	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Fatal("failed to ping database", "error", err)
	}

	logger.Info("connected to database")

	// route to appropriate command
	switch command {
	case "documents":
		flags := config.ParseDocumentsFlags()
		if err := IngestDocuments(cfg, db, flags); err != nil {
			logger.Fatal("failed to ingest documents", "error", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}
