package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// persists the registry in PostgreSQL so documents survive restarts
type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(ctx context.Context, db *pgxpool.Pool) (Repository, error) {
	repo := &postgresRepository{db: db}

	if _, err := db.Exec(ctx, queryCreateTable); err != nil {
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return repo, nil
}

func (r *postgresRepository) Save(ctx context.Context, doc *Document) error {
	_, err := r.db.Exec(ctx, querySaveDocument,
		doc.ID,
		doc.Filename,
		doc.Stats.TotalWords,
		doc.Stats.TotalCharacters,
		doc.Stats.TotalChunks,
		doc.Stats.TotalPages,
		doc.Text,
		doc.Chunks,
		doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %q: %w", doc.ID, err)
	}

	return nil
}

func (r *postgresRepository) Get(ctx context.Context, id string) (*Document, error) {
	return r.scanOne(r.db.QueryRow(ctx, queryGetDocument, id))
}

func (r *postgresRepository) Active(ctx context.Context) (*Document, error) {
	return r.scanOne(r.db.QueryRow(ctx, queryActiveDocument))
}

func (r *postgresRepository) List(ctx context.Context) ([]*Document, error) {
	rows, err := r.db.Query(ctx, queryListDocuments)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*Document

	for rows.Next() {
		var doc Document

		if err := rows.Scan(
			&doc.ID,
			&doc.Filename,
			&doc.Stats.TotalWords,
			&doc.Stats.TotalCharacters,
			&doc.Stats.TotalChunks,
			&doc.Stats.TotalPages,
			&doc.Text,
			&doc.Chunks,
			&doc.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, queryDeleteDocument, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %q: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *postgresRepository) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, queryClearDocuments); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	return nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int

	if err := r.db.QueryRow(ctx, queryCountDocuments).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) scanOne(row pgx.Row) (*Document, error) {
	var doc Document

	err := row.Scan(
		&doc.ID,
		&doc.Filename,
		&doc.Stats.TotalWords,
		&doc.Stats.TotalCharacters,
		&doc.Stats.TotalChunks,
		&doc.Stats.TotalPages,
		&doc.Text,
		&doc.Chunks,
		&doc.UploadedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	return &doc, nil
}
