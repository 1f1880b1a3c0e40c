package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/config"
	"codeberg.org/docqa/server/internal/metrics"
	"codeberg.org/docqa/server/internal/reports"
	"codeberg.org/docqa/server/internal/sessions"
	"codeberg.org/docqa/server/internal/store"
)

// how often the active-sessions gauge is refreshed
const sessionGaugeInterval = 30 * time.Second

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	var (
		db       *pgxpool.Pool
		vectors  store.Store
		registry documents.Repository
	)

	if cfg.UsesPostgres() {
		poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse database config: %w", err)
		}

		// hosted poolers hand out few connections, keep our pool small
		poolConfig.MaxConns = 5
		poolConfig.MinConns = 1
		poolConfig.MaxConnLifetime = 30 * time.Minute
		poolConfig.MaxConnIdleTime = 5 * time.Minute
		poolConfig.HealthCheckPeriod = 1 * time.Minute

		// pgBouncer in transaction mode doesn't support prepared statements,
		// which causes connections to hang on subsequent queries
		poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

		db, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create database pool: %w", err)
		}

		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		vectors, err = store.NewPostgresStore(ctx, db, cfg.EmbeddingDimensions)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize vector store: %w", err)
		}

		registry, err = documents.NewPostgresRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize document registry: %w", err)
		}
	} else {
		vectors = store.NewMemoryStore()
		registry = documents.NewMemoryRepository()
	}

	sessionMgr := sessions.NewManager(cfg.SessionTTL)

	reportStore, err := reports.NewStore(cfg.DataDir)
	if err != nil {
		sessionMgr.Stop()

		if db != nil {
			db.Close()
		}

		return nil, fmt.Errorf("failed to initialize report store: %w", err)
	}

	exporter := metrics.NewExporter(metrics.DefaultConfig())

	services, err := InitializeServices(cfg, vectors, registry, sessionMgr, exporter)
	if err != nil {
		sessionMgr.Stop()

		if db != nil {
			db.Close()
		}

		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RequestLogger(exporter), Recovery())

	server := &Server{
		db:          db,
		config:      cfg,
		registry:    registry,
		sessions:    sessionMgr,
		reportStore: reportStore,
		services:    services,
		metrics:     exporter,
		router:      router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// keeps the active-sessions gauge in sync with the session manager
func (s *Server) trackSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionGaugeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.metrics.SetActiveSessions(s.sessions.Count())
		case <-ctx.Done():
			return
		}
	}
}
