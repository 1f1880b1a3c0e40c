package comparison

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	documentcore "codeberg.org/docqa/server/docqa/documents"
	"codeberg.org/docqa/server/internal/auth"
	comparisoncore "codeberg.org/docqa/server/internal/comparison"
	"codeberg.org/docqa/server/internal/reports"
)

const testSecret = "test-report-token-secret"

// implements Analyzer for testing
type mockAnalyzer struct {
	compareFunc      func(ctx context.Context, docIDs, aspects []string) map[string]map[string]string
	recommendFunc    func(ctx context.Context, docIDs []string, jobRole string) (string, error)
	processBatchFunc func(ctx context.Context, paths []string) map[string]comparisoncore.BatchResult
}

func (m *mockAnalyzer) Compare(ctx context.Context, docIDs, aspects []string) map[string]map[string]string {
	if m.compareFunc != nil {
		return m.compareFunc(ctx, docIDs, aspects)
	}

	results := make(map[string]map[string]string, len(aspects))
	for _, aspect := range aspects {
		row := make(map[string]string, len(docIDs))
		for _, docID := range docIDs {
			row[docID] = "- solid " + aspect
		}

		results[aspect] = row
	}

	return results
}

func (m *mockAnalyzer) Recommend(ctx context.Context, docIDs []string, jobRole string) (string, error) {
	if m.recommendFunc != nil {
		return m.recommendFunc(ctx, docIDs, jobRole)
	}

	return "## Overall Recommendation\nChoose the first candidate.", nil
}

func (m *mockAnalyzer) ProcessBatch(ctx context.Context, paths []string) map[string]comparisoncore.BatchResult {
	if m.processBatchFunc != nil {
		return m.processBatchFunc(ctx, paths)
	}

	results := make(map[string]comparisoncore.BatchResult, len(paths))
	for _, path := range paths {
		filename := filepath.Base(path)
		results[documentcore.DeriveID(filename)] = comparisoncore.BatchResult{
			Status:   comparisoncore.StatusSuccess,
			Filename: filename,
			Stats:    &documentcore.Stats{TotalWords: 100, TotalChunks: 1},
		}
	}

	return results
}

// implements ReportStore for testing
type mockReportStore struct {
	saveFunc func(data []byte, generatedAt time.Time) (*reports.Report, error)
}

func (m *mockReportStore) Save(data []byte, generatedAt time.Time) (*reports.Report, error) {
	if m.saveFunc != nil {
		return m.saveFunc(data, generatedAt)
	}

	filename := reports.Filename(generatedAt)

	return &reports.Report{
		ID:        strings.TrimSuffix(filename, ".pdf"),
		Filename:  filename,
		Size:      int64(len(data)),
		CreatedAt: generatedAt,
	}, nil
}

func newTestRouter(t *testing.T, analyzer Analyzer, repo documentcore.Repository, store ReportStore) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	noLimit := func(c *gin.Context) { c.Next() }
	RegisterRoutes(router.Group("/api/v1"), analyzer, repo, store, testSecret, 1024, nil, noLimit)

	return router
}

func seedDocument(t *testing.T, repo documentcore.Repository, id, filename string) {
	t.Helper()

	err := repo.Save(context.Background(), &documentcore.Document{
		ID:         id,
		Filename:   filename,
		Stats:      documentcore.Stats{TotalWords: 100, TotalChunks: 1, TotalPages: 1},
		UploadedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("expected no error saving document, got: %v", err)
	}
}

func multipartFiles(t *testing.T, filenames ...string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, filename := range filenames {
		part, err := writer.CreateFormFile("files", filename)
		if err != nil {
			t.Fatalf("expected no error creating form file, got: %v", err)
		}

		if _, err := part.Write([]byte("document body for " + filename)); err != nil {
			t.Fatalf("expected no error writing form file, got: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("expected no error closing writer, got: %v", err)
	}

	return body, writer.FormDataContentType()
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	buf, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	return w
}

func TestBatchUpload(t *testing.T) {
	var batchPaths []string

	analyzer := &mockAnalyzer{
		processBatchFunc: func(_ context.Context, paths []string) map[string]comparisoncore.BatchResult {
			batchPaths = append([]string(nil), paths...)

			return map[string]comparisoncore.BatchResult{
				"resume_a": {Status: comparisoncore.StatusSuccess, Filename: "resume_a.txt"},
				"resume_b": {Status: comparisoncore.StatusError, Error: "no extractable text"},
			}
		},
	}

	router := newTestRouter(t, analyzer, documentcore.NewMemoryRepository(), &mockReportStore{})

	body, contentType := multipartFiles(t, "resume_a.txt", "resume_b.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparison/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(batchPaths) != 2 {
		t.Fatalf("expected 2 staged paths, got %d", len(batchPaths))
	}

	// original filenames survive staging, ids derive from them
	if filepath.Base(batchPaths[0]) != "resume_a.txt" || filepath.Base(batchPaths[1]) != "resume_b.txt" {
		t.Errorf("unexpected staged paths: %v", batchPaths)
	}

	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Processed != 1 {
		t.Errorf("expected 1 processed document, got %d", resp.Processed)
	}

	if resp.Results["resume_b"].Status != comparisoncore.StatusError {
		t.Errorf("expected the failed file in the result map, got: %+v", resp.Results)
	}
}

func TestBatchUploadTooFewFiles(t *testing.T) {
	router := newTestRouter(t, &mockAnalyzer{}, documentcore.NewMemoryRepository(), &mockReportStore{})

	body, contentType := multipartFiles(t, "resume_a.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparison/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestBatchUploadTooManyFiles(t *testing.T) {
	router := newTestRouter(t, &mockAnalyzer{}, documentcore.NewMemoryRepository(), &mockReportStore{})

	body, contentType := multipartFiles(t, "a.txt", "b.txt", "c.txt", "d.txt")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparison/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	if !strings.Contains(w.Body.String(), "Maximum 3 documents allowed") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestBatchUploadUnsupportedFile(t *testing.T) {
	analyzer := &mockAnalyzer{
		processBatchFunc: func(_ context.Context, _ []string) map[string]comparisoncore.BatchResult {
			t.Error("expected no batch processing for an unsupported file")
			return nil
		},
	}

	router := newTestRouter(t, analyzer, documentcore.NewMemoryRepository(), &mockReportStore{})

	body, contentType := multipartFiles(t, "resume_a.txt", "virus.exe")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/comparison/documents", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	if !strings.Contains(w.Body.String(), "unsupported_file") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestAnalyze(t *testing.T) {
	var comparedIDs, comparedAspects []string

	analyzer := &mockAnalyzer{
		compareFunc: func(_ context.Context, docIDs, aspects []string) map[string]map[string]string {
			comparedIDs = docIDs
			comparedAspects = aspects

			return map[string]map[string]string{
				"languages": {
					"resume_a": "- Go, Python",
					"resume_b": "Document not found",
				},
			}
		},
	}

	router := newTestRouter(t, analyzer, documentcore.NewMemoryRepository(), &mockReportStore{})

	w := postJSON(t, router, "/api/v1/comparison/analyze", AnalyzeRequest{
		DocumentIDs: []string{"resume_a", "resume_b"},
		Aspects:     []string{"languages"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(comparedIDs) != 2 || len(comparedAspects) != 1 || comparedAspects[0] != "languages" {
		t.Errorf("unexpected compare call: ids=%v aspects=%v", comparedIDs, comparedAspects)
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Results["languages"]["resume_b"] != "Document not found" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
}

func TestAnalyzeDefaultAspects(t *testing.T) {
	var comparedAspects []string

	analyzer := &mockAnalyzer{
		compareFunc: func(_ context.Context, _, aspects []string) map[string]map[string]string {
			comparedAspects = aspects
			return map[string]map[string]string{}
		},
	}

	router := newTestRouter(t, analyzer, documentcore.NewMemoryRepository(), &mockReportStore{})

	w := postJSON(t, router, "/api/v1/comparison/analyze", AnalyzeRequest{
		DocumentIDs: []string{"resume_a", "resume_b"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	want := comparisoncore.DefaultAspects()
	if len(comparedAspects) != len(want) {
		t.Fatalf("expected %d default aspects, got %d", len(want), len(comparedAspects))
	}

	for i, aspect := range want {
		if comparedAspects[i] != aspect {
			t.Errorf("aspect %d: expected %q, got %q", i, aspect, comparedAspects[i])
		}
	}
}

func TestAnalyzeTooFewDocuments(t *testing.T) {
	router := newTestRouter(t, &mockAnalyzer{}, documentcore.NewMemoryRepository(), &mockReportStore{})

	w := postJSON(t, router, "/api/v1/comparison/analyze", AnalyzeRequest{
		DocumentIDs: []string{"resume_a"},
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRecommendation(t *testing.T) {
	var recommendedRole string

	analyzer := &mockAnalyzer{
		recommendFunc: func(_ context.Context, docIDs []string, jobRole string) (string, error) {
			recommendedRole = jobRole

			if len(docIDs) != 2 {
				t.Errorf("expected 2 document ids, got %v", docIDs)
			}

			return "## Overall Recommendation\nHire candidate A.", nil
		},
	}

	router := newTestRouter(t, analyzer, documentcore.NewMemoryRepository(), &mockReportStore{})

	w := postJSON(t, router, "/api/v1/comparison/recommendation", RecommendationRequest{
		DocumentIDs: []string{"resume_a", "resume_b"},
		JobRole:     "Backend Engineer",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if recommendedRole != "Backend Engineer" {
		t.Errorf("unexpected job role: %s", recommendedRole)
	}

	var resp RecommendationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !strings.Contains(resp.Recommendation, "Hire candidate A.") {
		t.Errorf("unexpected recommendation: %s", resp.Recommendation)
	}
}

func TestRecommendationModelFailure(t *testing.T) {
	analyzer := &mockAnalyzer{
		recommendFunc: func(_ context.Context, _ []string, _ string) (string, error) {
			return "", errors.New("model overloaded")
		},
	}

	router := newTestRouter(t, analyzer, documentcore.NewMemoryRepository(), &mockReportStore{})

	w := postJSON(t, router, "/api/v1/comparison/recommendation", RecommendationRequest{
		DocumentIDs: []string{"resume_a", "resume_b"},
	})

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestGenerateReport(t *testing.T) {
	repo := documentcore.NewMemoryRepository()
	seedDocument(t, repo, "resume_a", "resume_a.pdf")
	seedDocument(t, repo, "resume_b", "resume_b.pdf")

	var savedSize int

	store := &mockReportStore{
		saveFunc: func(data []byte, generatedAt time.Time) (*reports.Report, error) {
			savedSize = len(data)
			filename := reports.Filename(generatedAt)

			return &reports.Report{
				ID:       strings.TrimSuffix(filename, ".pdf"),
				Filename: filename,
			}, nil
		},
	}

	router := newTestRouter(t, &mockAnalyzer{}, repo, store)

	w := postJSON(t, router, "/api/v1/comparison/report", ReportRequest{
		DocumentIDs:           []string{"resume_a", "resume_b"},
		IncludeRecommendation: true,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if savedSize == 0 {
		t.Error("expected rendered report bytes to be saved")
	}

	var resp ReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !strings.HasPrefix(resp.ReportID, "comparison_report_") {
		t.Errorf("unexpected report id: %s", resp.ReportID)
	}

	if resp.DownloadURL != "/api/v1/reports/"+resp.ReportID+"/download" {
		t.Errorf("unexpected download url: %s", resp.DownloadURL)
	}

	// the token must unlock exactly this report
	claims, err := auth.ValidateDownloadToken(testSecret, resp.Token)
	if err != nil {
		t.Fatalf("expected a valid download token, got: %v", err)
	}

	if claims.ReportID != resp.ReportID {
		t.Errorf("token is for %s, expected %s", claims.ReportID, resp.ReportID)
	}
}

func TestGenerateReportUnknownDocument(t *testing.T) {
	repo := documentcore.NewMemoryRepository()
	seedDocument(t, repo, "resume_a", "resume_a.pdf")

	router := newTestRouter(t, &mockAnalyzer{}, repo, &mockReportStore{})

	w := postJSON(t, router, "/api/v1/comparison/report", ReportRequest{
		DocumentIDs: []string{"resume_a", "missing"},
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGenerateReportReusesProvidedResults(t *testing.T) {
	repo := documentcore.NewMemoryRepository()
	seedDocument(t, repo, "resume_a", "resume_a.pdf")
	seedDocument(t, repo, "resume_b", "resume_b.pdf")

	analyzer := &mockAnalyzer{
		compareFunc: func(_ context.Context, _, _ []string) map[string]map[string]string {
			t.Error("expected no comparison rerun when results are provided")
			return nil
		},
		recommendFunc: func(_ context.Context, _ []string, _ string) (string, error) {
			t.Error("expected no recommendation rerun when one is provided")
			return "", nil
		},
	}

	router := newTestRouter(t, analyzer, repo, &mockReportStore{})

	w := postJSON(t, router, "/api/v1/comparison/report", ReportRequest{
		DocumentIDs: []string{"resume_a", "resume_b"},
		Aspects:     []string{"languages"},
		Results: map[string]map[string]string{
			"languages": {"resume_a": "- Go", "resume_b": "- Python"},
		},
		Recommendation:        "Hire candidate A.",
		IncludeRecommendation: true,
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}
