package extractor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extracts per-page plain text from a PDF on disk
func FromPDF(path string) (*Extraction, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	return readPages(r)
}

// extracts per-page plain text from an in-memory PDF
func FromPDFReader(ra io.ReaderAt, size int64) (*Extraction, error) {
	r, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	return readPages(r)
}

func readPages(r *pdf.Reader) (*Extraction, error) {
	totalPages := r.NumPage()
	if totalPages == 0 {
		return nil, fmt.Errorf("pdf contains no pages")
	}

	pages := make([]string, 0, totalPages)

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}

		content, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract text from page %d: %w", pageIndex, err)
		}

		pages = append(pages, content)
	}

	joined := strings.Join(pages, "\n")
	if strings.TrimSpace(joined) == "" {
		return nil, fmt.Errorf("pdf contains no extractable text (it may be an image-based PDF requiring OCR)")
	}

	return &Extraction{
		Text:  joined,
		Pages: pages,
	}, nil
}

func fromTextFile(path string) (*Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return FromText(f)
}
