package reports

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"codeberg.org/docqa/server/docqa/documents"
	"github.com/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// cell budgets, in characters
const (
	filenameLimit       = 50
	statsFilenameLimit  = 40
	aspectLimit         = 60
	cellFilenameLimit   = 30
	cellContentLimit    = 250
	recommendationLimit = 1500
)

// vertical position past which an aspect starts on a fresh page
const pageBreakY = 250

// describes one comparison run for rendering
type Comparison struct {
	Documents      []*documents.Document
	Aspects        []string // layout order, Results keys when empty
	Results        map[string]map[string]string
	Recommendation string
	GeneratedAt    time.Time
}

// Generate renders the comparison as a PDF report.
func Generate(c Comparison) ([]byte, error) {
	if c.GeneratedAt.IsZero() {
		c.GeneratedAt = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetAutoPageBreak(true, 15)

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Document Comparison Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "Generated: "+c.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	writeDocumentList(pdf, tr, c.Documents)
	writeStatistics(pdf, tr, c.Documents)
	writeComparison(pdf, tr, c)
	writeRecommendation(pdf, tr, c.Recommendation)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	return buf.Bytes(), nil
}

// Filename returns the canonical report filename for a generation time.
func Filename(t time.Time) string {
	return "comparison_report_" + t.Format("20060102_150405") + ".pdf"
}

func writeDocumentList(pdf *fpdf.Fpdf, tr func(string) string, docs []*documents.Document) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Documents Compared:", "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 10)

	for _, doc := range docs {
		pdf.CellFormat(0, 8, tr("  - "+truncate(doc.Filename, filenameLimit)), "", 1, "", false, 0, "")
	}

	pdf.Ln(5)
}

func writeStatistics(pdf *fpdf.Fpdf, tr func(string) string, docs []*documents.Document) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Document Statistics:", "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 9)

	for _, doc := range docs {
		pdf.CellFormat(0, 6, tr(truncate(doc.Filename, statsFilenameLimit)+":"), "", 1, "", false, 0, "")
		pdf.CellFormat(0, 5, "  Words: "+formatThousands(doc.Stats.TotalWords), "", 1, "", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("  Sections: %d", doc.Stats.TotalChunks), "", 1, "", false, 0, "")
		pdf.Ln(2)
	}

	pdf.Ln(5)
}

func writeComparison(pdf *fpdf.Fpdf, tr func(string) string, c Comparison) {
	if len(c.Results) == 0 {
		return
	}

	aspects := c.Aspects
	if len(aspects) == 0 {
		aspects = make([]string, 0, len(c.Results))
		for aspect := range c.Results {
			aspects = append(aspects, aspect)
		}

		sort.Strings(aspects)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Detailed Comparison:", "", 1, "", false, 0, "")

	titleCaser := cases.Title(language.English)

	for _, aspect := range aspects {
		perDocument, ok := c.Results[aspect]
		if !ok {
			continue
		}

		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
		}

		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 8, tr("\n"+truncate(titleCaser.String(aspect), aspectLimit)+":"), "", "L", false)

		pdf.SetFont("Arial", "", 8)

		for _, doc := range c.Documents {
			content, ok := perDocument[doc.ID]
			if !ok {
				content = "N/A"
			}

			content = truncate(flatten(content), cellContentLimit)

			pdf.SetLeftMargin(15)
			pdf.MultiCell(0, 5, tr(truncate(doc.Filename, cellFilenameLimit)+": "+content), "", "L", false)
			pdf.SetLeftMargin(10)
			pdf.Ln(2)
		}
	}
}

func writeRecommendation(pdf *fpdf.Fpdf, tr func(string) string, recommendation string) {
	if recommendation == "" {
		return
	}

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "AI Recommendation:", "", 1, "", false, 0, "")

	pdf.SetFont("Arial", "", 9)

	text := strings.ReplaceAll(recommendation, "\n\n", "\n")
	text = strings.ReplaceAll(text, "\r", "")

	if runes := []rune(text); len(runes) > recommendationLimit {
		text = string(runes[:recommendationLimit])
	}

	pdf.MultiCell(0, 5, tr(text), "", "L", false)
}

// shortens a string to fit a cell, marking the cut
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit-3]) + "..."
}

// collapses newlines and runs of whitespace into single spaces
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// groups digits into thousands: 1234567 becomes "1,234,567"
func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder

	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}

	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(s[i : i+3])
	}

	return b.String()
}
