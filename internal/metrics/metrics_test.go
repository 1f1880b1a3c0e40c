package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExporter(t *testing.T) {
	exporter := NewExporter(DefaultConfig())

	t.Run("RecordRequest", func(t *testing.T) {
		exporter.RecordRequest("POST", "/api/v1/questions", 200, 150*time.Millisecond)
		exporter.RecordRequest("POST", "/api/v1/questions", 502, 80*time.Millisecond)
	})

	t.Run("RecordDocumentProcessed", func(t *testing.T) {
		exporter.RecordDocumentProcessed(true)
		exporter.RecordDocumentProcessed(false)
	})

	t.Run("RecordQuestion", func(t *testing.T) {
		exporter.RecordQuestion("standard", true, 900*time.Millisecond)
		exporter.RecordQuestion("memory", true, 1200*time.Millisecond)
	})

	t.Run("RecordComparison", func(t *testing.T) {
		exporter.RecordComparison("compare")
		exporter.RecordComparison("recommend")
		exporter.RecordComparison("extract")
	})

	t.Run("RecordReport", func(t *testing.T) {
		exporter.RecordReport()
	})

	t.Run("RecordLLMCall", func(t *testing.T) {
		exporter.RecordLLMCall("chat", 800*time.Millisecond, 420, 96)
		exporter.RecordLLMCall("embedding", 120*time.Millisecond, 350, 0)
	})

	t.Run("SetActiveSessions", func(t *testing.T) {
		exporter.SetActiveSessions(3)
	})
}

func TestExporterHandler(t *testing.T) {
	exporter := NewExporter(DefaultConfig())

	exporter.RecordRequest("POST", "/api/v1/questions", 200, 150*time.Millisecond)
	exporter.RecordDocumentProcessed(true)
	exporter.RecordQuestion("standard", true, 900*time.Millisecond)
	exporter.RecordComparison("compare")
	exporter.RecordLLMCall("chat", 800*time.Millisecond, 420, 96)

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	w := httptest.NewRecorder()

	exporter.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "docqa_server_http_requests_total") {
		t.Error("expected http_requests_total metric in output")
	}
	if !strings.Contains(body, "docqa_server_documents_processed_total") {
		t.Error("expected documents_processed_total metric in output")
	}
	if !strings.Contains(body, "docqa_server_questions_total") {
		t.Error("expected questions_total metric in output")
	}
	if !strings.Contains(body, "docqa_server_comparisons_total") {
		t.Error("expected comparisons_total metric in output")
	}
	if !strings.Contains(body, "docqa_server_llm_tokens_total") {
		t.Error("expected llm_tokens_total metric in output")
	}
}

func TestNilExporterIsNoOp(t *testing.T) {
	var exporter *Exporter

	// none of these may panic
	exporter.RecordRequest("GET", "/health", 200, time.Millisecond)
	exporter.RecordDocumentProcessed(true)
	exporter.RecordQuestion("standard", false, time.Millisecond)
	exporter.RecordComparison("compare")
	exporter.RecordReport()
	exporter.RecordLLMCall("chat", time.Millisecond, 10, 5)
	exporter.SetActiveSessions(0)
}

func TestExporterCustomRegistry(t *testing.T) {
	exporter := NewExporter(Config{})
	exporter.RecordRequest("GET", "/health", 200, 50*time.Millisecond)

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	w := httptest.NewRecorder()

	exporter.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}
