package reports

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"codeberg.org/docqa/server/internal/auth"
	reportcore "codeberg.org/docqa/server/internal/reports"
)

const testSecret = "test-report-token-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *reportcore.Store) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	store, err := reportcore.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("expected no error creating store, got: %v", err)
	}

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), store, testSecret)

	return router, store
}

func saveReport(t *testing.T, store *reportcore.Store, data []byte) *reportcore.Report {
	t.Helper()

	report, err := store.Save(data, time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))
	if err != nil {
		t.Fatalf("expected no error saving report, got: %v", err)
	}

	return report
}

func downloadToken(t *testing.T, reportID string) string {
	t.Helper()

	token, err := auth.GenerateDownloadToken(testSecret, reportID)
	if err != nil {
		t.Fatalf("expected no error generating token, got: %v", err)
	}

	return token
}

func TestDownloadReport(t *testing.T) {
	router, store := newTestRouter(t)

	content := []byte("%PDF-1.4 report body")
	report := saveReport(t, store, content)

	url := "/api/v1/reports/" + report.ID + "/download?token=" + downloadToken(t, report.ID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if w.Body.String() != string(content) {
		t.Errorf("expected the stored bytes to be served, got %d bytes", w.Body.Len())
	}

	disposition := w.Header().Get("Content-Disposition")
	if !strings.Contains(disposition, report.Filename) {
		t.Errorf("expected the filename in Content-Disposition, got: %s", disposition)
	}
}

func TestDownloadWithoutToken(t *testing.T) {
	router, store := newTestRouter(t)
	report := saveReport(t, store, []byte("%PDF-1.4"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+report.ID+"/download", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestDownloadWithInvalidToken(t *testing.T) {
	router, store := newTestRouter(t)
	report := saveReport(t, store, []byte("%PDF-1.4"))

	url := "/api/v1/reports/" + report.ID + "/download?token=not-a-jwt"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestDownloadWithTokenForOtherReport(t *testing.T) {
	router, store := newTestRouter(t)
	report := saveReport(t, store, []byte("%PDF-1.4"))

	// a perfectly valid token, minted for a different report
	otherToken := downloadToken(t, "comparison_report_20260101_000000")

	url := "/api/v1/reports/" + report.ID + "/download?token=" + otherToken
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestDownloadUnknownReport(t *testing.T) {
	router, _ := newTestRouter(t)

	missingID := "comparison_report_20260101_000000"
	url := "/api/v1/reports/" + missingID + "/download?token=" + downloadToken(t, missingID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	if !strings.Contains(w.Body.String(), "report_not_found") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
