package documents

const (
	queryCreateTable = `
		CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			total_words INTEGER NOT NULL,
			total_characters INTEGER NOT NULL,
			total_chunks INTEGER NOT NULL,
			total_pages INTEGER NOT NULL,
			full_text TEXT NOT NULL,
			chunks TEXT[] NOT NULL,
			uploaded_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`

	querySaveDocument = `
		INSERT INTO documents (id, filename, total_words, total_characters, total_chunks, total_pages, full_text, chunks, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			total_words = EXCLUDED.total_words,
			total_characters = EXCLUDED.total_characters,
			total_chunks = EXCLUDED.total_chunks,
			total_pages = EXCLUDED.total_pages,
			full_text = EXCLUDED.full_text,
			chunks = EXCLUDED.chunks,
			uploaded_at = EXCLUDED.uploaded_at
	`

	documentColumns = `
		id, filename, total_words, total_characters, total_chunks, total_pages, full_text, chunks, uploaded_at
	`

	queryGetDocument = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`

	queryActiveDocument = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY uploaded_at DESC
		LIMIT 1
	`

	queryListDocuments = `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY uploaded_at DESC
	`

	queryDeleteDocument = "DELETE FROM documents WHERE id = $1"

	queryClearDocuments = "DELETE FROM documents"

	queryCountDocuments = "SELECT COUNT(*) FROM documents"
)
