package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"codeberg.org/docqa/server/internal/logger"
)

// persists vector indexes in PostgreSQL with pgvector
// the connection pool is shared and closed by its owner
type PostgresStore struct {
	pool       *pgxpool.Pool
	dimensions int
}

func NewPostgresStore(ctx context.Context, db *pgxpool.Pool, dimensions int) (*PostgresStore, error) {
	store := &PostgresStore{pool: db, dimensions: dimensions}

	if err := store.initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// creates the required extension and tables if they don't exist
func (s *PostgresStore) initialize(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createExtensionQuery); err != nil {
		return fmt.Errorf("failed to create vector extension: %w", err)
	}

	if _, err := s.pool.Exec(ctx, fmt.Sprintf(createSchemaQuery, s.dimensions)); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

func (s *PostgresStore) CreateIndex(ctx context.Context, index string) error {
	if _, err := s.pool.Exec(ctx, upsertIndexQuery, index); err != nil {
		return fmt.Errorf("failed to create index %q: %w", index, err)
	}

	if _, err := s.pool.Exec(ctx, clearIndexChunksQuery, index); err != nil {
		return fmt.Errorf("failed to clear index %q: %w", index, err)
	}

	return nil
}

// inserts all entries in a single transaction
func (s *PostgresStore) Upsert(ctx context.Context, index string, entries []Entry) error {
	exists, err := s.indexExists(ctx, index)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("upsert into %q: %w", index, ErrIndexNotFound)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for _, entry := range entries {
		batch.Queue(upsertChunkQuery,
			index,
			entry.ID,
			entry.Content,
			pgvector.NewVector(entry.Vector),
			entry.Position,
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(entries) {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	// must close batch results before committing, otherwise connection is still "busy"
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *PostgresStore) Search(ctx context.Context, index string, vector []float32, k int) ([]Result, error) {
	exists, err := s.indexExists(ctx, index)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("search in %q: %w", index, ErrIndexNotFound)
	}

	if k <= 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, searchChunksQuery, index, pgvector.NewVector(vector), k)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var results []Result

	for rows.Next() {
		var result Result

		if err := rows.Scan(&result.ID, &result.Content, &result.Score, &result.Position); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}

func (s *PostgresStore) DeleteIndex(ctx context.Context, index string) error {
	tag, err := s.pool.Exec(ctx, deleteIndexQuery, index)
	if err != nil {
		return fmt.Errorf("failed to delete index %q: %w", index, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %q: %w", index, ErrIndexNotFound)
	}

	return nil
}

func (s *PostgresStore) Count(ctx context.Context, index string) (int, error) {
	exists, err := s.indexExists(ctx, index)
	if err != nil {
		return 0, err
	}

	if !exists {
		return 0, fmt.Errorf("count %q: %w", index, ErrIndexNotFound)
	}

	var count int

	if err := s.pool.QueryRow(ctx, countChunksQuery, index).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}

	return count, nil
}

func (s *PostgresStore) indexExists(ctx context.Context, index string) (bool, error) {
	var exists bool

	if err := s.pool.QueryRow(ctx, indexExistsQuery, index).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check index %q: %w", index, err)
	}

	return exists, nil
}
