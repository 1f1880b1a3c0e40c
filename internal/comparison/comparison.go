package comparison

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/llm"
	"codeberg.org/docqa/server/internal/logger"
	"codeberg.org/docqa/server/internal/store"
)

const (
	aspectTopK         = 3
	aspectContextLimit = 1500
	aspectTemperature  = 0.1
	aspectMaxTokens    = 400

	recommendTemperature = 0.2
	recommendMaxTokens   = 1200

	extractTemperature = 0.1
	extractMaxTokens   = 800
	extractTextLimit   = 4000
	rawResponseLimit   = 200
)

func New(searcher Searcher, generator llm.TextGenerator, registry documents.Repository, pipeline Pipeline) *Analyzer {
	return &Analyzer{
		searcher:  searcher,
		generator: generator,
		registry:  registry,
		pipeline:  pipeline,
	}
}

// Compare analyzes the given documents aspect by aspect. A failure for a
// single document is embedded in its result cell instead of aborting the
// run, so one bad document never hides the others.
func (a *Analyzer) Compare(ctx context.Context, docIDs, aspects []string) map[string]map[string]string {
	if len(aspects) == 0 {
		aspects = defaultAspects
	}

	results := make(map[string]map[string]string, len(aspects))

	for _, aspect := range aspects {
		perDocument := make(map[string]string, len(docIDs))

		for _, docID := range docIDs {
			perDocument[docID] = a.analyzeAspect(ctx, docID, aspect)
		}

		results[aspect] = perDocument
	}

	return results
}

// extracts what one document says about one aspect
func (a *Analyzer) analyzeAspect(ctx context.Context, docID, aspect string) string {
	if _, err := a.registry.Get(ctx, docID); err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			return documentNotFound
		}

		return "Error: " + err.Error()
	}

	results, err := a.searcher.Search(ctx, docID, "information about "+aspect, aspectTopK)
	if err != nil {
		logger.Warn("aspect retrieval failed", "doc_id", docID, "aspect", aspect, "error", err)
		return "Error: " + err.Error()
	}

	contextText := truncateRunes(joinContents(results, "\n"), aspectContextLimit)

	answer, err := a.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: analyzerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAspectPrompt(aspect, contextText)},
		},
		MaxTokens:   aspectMaxTokens,
		Temperature: aspectTemperature,
	})
	if err != nil {
		logger.Warn("aspect analysis failed", "doc_id", docID, "aspect", aspect, "error", err)
		return "Error: " + err.Error()
	}

	return strings.TrimSpace(answer)
}

// Recommend compares the documents on the default aspects and asks the
// model for an overall recommendation, optionally targeted at a job role.
func (a *Analyzer) Recommend(ctx context.Context, docIDs []string, jobRole string) (string, error) {
	comparison := a.Compare(ctx, docIDs, nil)

	var b strings.Builder
	b.WriteString("Document Comparison Analysis:\n\n")

	for _, docID := range docIDs {
		doc, err := a.registry.Get(ctx, docID)
		if err != nil {
			continue
		}

		fmt.Fprintf(&b, "\n### Document: %s\n", doc.Filename)

		for _, aspect := range defaultAspects {
			if analysis, ok := comparison[aspect][docID]; ok {
				fmt.Fprintf(&b, "**%s:**\n%s\n\n", aspect, analysis)
			}
		}
	}

	answer, err := a.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: recommenderSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildRecommendationPrompt(b.String(), jobRole)},
		},
		MaxTokens:   recommendMaxTokens,
		Temperature: recommendTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate recommendation: %w", err)
	}

	return strings.TrimSpace(answer), nil
}

// ExtractStructured pulls a fixed set of fields out of a document's text
// as JSON.
func (a *Analyzer) ExtractStructured(ctx context.Context, docID string) (*StructuredData, error) {
	doc, err := a.registry.Get(ctx, docID)
	if err != nil {
		return nil, err
	}

	raw, err := a.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: extractorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExtractionPrompt(truncateRunes(doc.Text, extractTextLimit))},
		},
		MaxTokens:   extractMaxTokens,
		Temperature: extractTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract structured data: %w", err)
	}

	cleaned := stripCodeFences(strings.TrimSpace(raw))

	var data StructuredData
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("could not parse structured data (raw: %q): %w", truncateRunes(cleaned, rawResponseLimit), err)
	}

	return &data, nil
}

// ProcessBatch ingests several files, reporting per-file outcomes keyed by
// document id. A failed file never aborts the rest of the batch.
func (a *Analyzer) ProcessBatch(ctx context.Context, paths []string) map[string]BatchResult {
	results := make(map[string]BatchResult, len(paths))

	for i, path := range paths {
		filename := filepath.Base(path)
		docID := documents.DeriveID(filename)

		logger.Info("processing document", "file", filename, "index", i+1, "total", len(paths))

		doc, err := a.pipeline.ProcessFile(ctx, path)
		if err != nil {
			logger.Warn("batch processing failed", "file", filename, "error", err)
			results[docID] = BatchResult{Status: StatusError, Error: err.Error()}

			continue
		}

		results[docID] = BatchResult{
			Status:   StatusSuccess,
			Filename: doc.Filename,
			Stats:    &doc.Stats,
		}
	}

	return results
}

// Clear removes every ingested document and its index.
func (a *Analyzer) Clear(ctx context.Context) error {
	return a.pipeline.Clear(ctx)
}

// strips a markdown code fence the model may wrap the JSON in
func stripCodeFences(s string) string {
	const fence = "```"

	if !strings.HasPrefix(s, fence) {
		return s
	}

	s = strings.TrimPrefix(s, fence)

	if strings.HasPrefix(s, "json") {
		s = strings.TrimSpace(s[4:])
	}

	if idx := strings.Index(s, fence); idx >= 0 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

func joinContents(results []store.Result, separator string) string {
	contents := make([]string, len(results))
	for i, result := range results {
		contents[i] = result.Content
	}

	return strings.Join(contents, separator)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
