package store

const (
	createExtensionQuery = "CREATE EXTENSION IF NOT EXISTS vector"

	// chunk embeddings carry a configurable dimension, filled in at startup
	createSchemaQuery = `
		CREATE TABLE IF NOT EXISTS doc_indexes (
			name TEXT PRIMARY KEY,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS doc_chunks (
			index_name TEXT NOT NULL REFERENCES doc_indexes(name) ON DELETE CASCADE,
			chunk_id TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d),
			chunk_index INTEGER NOT NULL,
			PRIMARY KEY (index_name, chunk_id)
		);
		CREATE INDEX IF NOT EXISTS idx_doc_chunks_index_name ON doc_chunks(index_name);
		CREATE INDEX IF NOT EXISTS idx_doc_chunks_embedding ON doc_chunks
			USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);
	`

	upsertIndexQuery = `
		INSERT INTO doc_indexes (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`

	indexExistsQuery = "SELECT EXISTS (SELECT 1 FROM doc_indexes WHERE name = $1)"

	clearIndexChunksQuery = "DELETE FROM doc_chunks WHERE index_name = $1"

	deleteIndexQuery = "DELETE FROM doc_indexes WHERE name = $1"

	countChunksQuery = "SELECT COUNT(*) FROM doc_chunks WHERE index_name = $1"

	upsertChunkQuery = `
		INSERT INTO doc_chunks (index_name, chunk_id, content, embedding, chunk_index)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (index_name, chunk_id) DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			chunk_index = EXCLUDED.chunk_index
	`

	searchChunksQuery = `
		SELECT
			chunk_id,
			content,
			1 - (embedding <=> $2) AS similarity,
			chunk_index
		FROM doc_chunks
		WHERE index_name = $1
		ORDER BY embedding <=> $2
		LIMIT $3
	`
)
