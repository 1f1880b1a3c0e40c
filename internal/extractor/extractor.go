// Package extractor turns uploaded document files into plain text.
package extractor

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// file extensions accepted at upload
var AllowedExtensions = []string{".pdf", ".txt", ".docx"}

// extracted document text
type Extraction struct {
	Text  string   // full text, pages joined with newlines
	Pages []string // per-page text, one entry for plain text input
}

// reports whether the filename carries an accepted extension
func IsAllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))

	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}

	return false
}

// checks an upload against the configured size limit
func ValidateSize(size, maxSize int64) error {
	if size > maxSize {
		return fmt.Errorf("file size %d exceeds the %d byte limit", size, maxSize)
	}

	return nil
}

// extracts text from a file on disk, dispatching on extension
func FromFile(path string) (*Extraction, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FromPDF(path)
	case ".txt":
		return fromTextFile(path)
	default:
		return nil, fmt.Errorf("no text extraction available for %q files", filepath.Ext(path))
	}
}

// extracts text from an uploaded file without touching disk
// multipart files satisfy io.ReaderAt, which the PDF reader needs
func FromUpload(file multipart.File, filename string, size int64) (*Extraction, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FromPDFReader(file, size)
	case ".txt":
		return FromText(file)
	default:
		return nil, fmt.Errorf("no text extraction available for %q files", filepath.Ext(filename))
	}
}

// extracts raw text from a reader
func FromText(r io.Reader) (*Extraction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot process empty text")
	}

	return &Extraction{
		Text:  text,
		Pages: []string{text},
	}, nil
}
