package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/copyforge/backend/abtest"
	"github.com/copyforge/backend/analyzer"
	"github.com/copyforge/backend/extractor"
	"github.com/copyforge/backend/logging"
	"github.com/copyforge/backend/middleware"
	"github.com/copyforge/backend/stats"
)

// newTestServer wires the package-level dependencies against a temp
// directory and returns a router ready for httptest traffic.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()

	var err error
	usage, err = stats.NewStorage(dir)
	if err != nil {
		t.Fatalf("Failed to create stats storage: %v", err)
	}

	textAnalyzer = analyzer.New()
	pageExtractor = extractor.New(usage)
	abTests = abtest.NewStore(filepath.Join(dir, "abtests.json"))
	rateLimiter = middleware.NewRateLimiter(10000, 10000)

	return newRouter(logging.Initialize())
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestAnalyzeReadabilityEndpoint(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/analytics/readability",
		gin.H{"text": "The cat sat. The dog ran fast."})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	if body["word_count"] != float64(7) {
		t.Errorf("Expected word_count 7, got %v", body["word_count"])
	}
	if body["difficulty_level"] != "easy" {
		t.Errorf("Expected easy difficulty, got %v", body["difficulty_level"])
	}

	if got := usage.GetCurrentStats().ReadabilityRequests; got != 1 {
		t.Errorf("Expected 1 readability request recorded, got %d", got)
	}
}

func TestAnalysisEndpointsRejectBlankText(t *testing.T) {
	r := newTestServer(t)

	paths := []string{
		"/api/analytics/readability",
		"/api/analytics/sentiment",
		"/api/analytics/seo",
		"/api/analytics/engagement",
		"/api/analytics/full",
	}

	for _, path := range paths {
		for _, payload := range []gin.H{{"text": "   "}, {}} {
			w := doJSON(t, r, http.MethodPost, path, payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("%s with %v: expected 400, got %d", path, payload, w.Code)
				continue
			}
			if body := decodeBody(t, w); body["error"] != "Text cannot be empty" {
				t.Errorf("%s: unexpected error message %v", path, body["error"])
			}
		}
	}

	if got := usage.GetCurrentStats(); got.ReadabilityRequests != 0 || got.FullRequests != 0 {
		t.Errorf("Rejected requests must not be counted, got %+v", got)
	}
}

func TestAnalyzeSentimentEndpoint(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/analytics/sentiment",
		gin.H{"text": "This is the best, most amazing product ever!"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["overall_sentiment"] != "positive" {
		t.Errorf("Expected positive sentiment, got %v", body["overall_sentiment"])
	}
}

func TestAnalyzeSEOEndpointDefaultsContentType(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/analytics/seo",
		gin.H{"text": "# Title\n\nBody text.", "target_keywords": []string{"title"}})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["ideal_word_count_range"] != "1500-2500" {
		t.Errorf("Expected blog default range, got %v", body["ideal_word_count_range"])
	}
}

func TestFullAnalysisEndpoint(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/analytics/full", gin.H{
		"text":            "# Great Offer\n\nYou will love this. Get started today!",
		"target_keywords": []string{"offer"},
		"content_type":    "landing",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	for _, section := range []string{"readability", "sentiment", "seo", "engagement"} {
		if _, ok := body[section]; !ok {
			t.Errorf("Missing %s section in response", section)
		}
	}
}

func TestAnalyzeURLEndpoint(t *testing.T) {
	r := newTestServer(t)

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`<html><body><h1>Landing Page</h1><p>You will love this product. Buy now!</p></body></html>`))
	}))
	defer page.Close()

	w := doJSON(t, r, http.MethodPost, "/api/analytics/url", gin.H{"url": page.URL})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	seo, ok := body["seo"].(map[string]interface{})
	if !ok {
		t.Fatalf("Missing seo section: %v", body)
	}
	if seo["has_h1"] != true {
		t.Errorf("Expected extracted h1, got %v", seo["has_h1"])
	}

	if got := usage.GetCurrentStats().URLRequests; got != 1 {
		t.Errorf("Expected 1 url request recorded, got %d", got)
	}
}

func TestAnalyzeURLEndpointValidation(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/analytics/url", gin.H{"url": "not a url"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed URL, got %d", w.Code)
	}
}

func TestAnalyzeURLEndpointFetchFailure(t *testing.T) {
	r := newTestServer(t)

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer page.Close()

	w := doJSON(t, r, http.MethodPost, "/api/analytics/url", gin.H{"url": page.URL})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for upstream failure, got %d", w.Code)
	}
}

func TestABTestLifecycle(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/analytics/ab-tests", gin.H{
		"variant_a": "Buy now and save!",
		"variant_b": "Save big when you buy today!",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("Expected generated id, got %v", created)
	}

	w = doJSON(t, r, http.MethodGet, "/api/analytics/ab-tests/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on get, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/analytics/ab-tests", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on list, got %d", w.Code)
	}
	var list []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("Expected one listed test, got %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/api/analytics/ab-tests/"+id,
		gin.H{"winner": "B", "winner_reason": "higher engagement"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on decide, got %d: %s", w.Code, w.Body.String())
	}
	if decided := decodeBody(t, w); decided["winner"] != "B" {
		t.Errorf("Expected winner B, got %v", decided["winner"])
	}

	// Deciding twice is rejected.
	w = doJSON(t, r, http.MethodPut, "/api/analytics/ab-tests/"+id, gin.H{"winner": "A"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 on second decide, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/analytics/ab-tests-stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on stats, got %d", w.Code)
	}
	statsBody := decodeBody(t, w)
	if statsBody["total_tests"] != float64(1) || statsBody["variant_b_wins"] != float64(1) {
		t.Errorf("Unexpected stats: %v", statsBody)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/analytics/ab-tests/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on delete, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/analytics/ab-tests/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestABTestValidation(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/analytics/ab-tests", gin.H{"variant_a": "only one"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing variant, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/analytics/ab-tests",
		gin.H{"variant_a": "a", "variant_b": "b"})
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, http.MethodPut, "/api/analytics/ab-tests/"+id, gin.H{"winner": "C"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid winner, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/analytics/ab-tests/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown id, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/analytics/ab-tests?limit=0", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range limit, got %d", w.Code)
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	r := newTestServer(t)

	doJSON(t, r, http.MethodPost, "/api/analytics/sentiment", gin.H{"text": "great product"})

	w := doJSON(t, r, http.MethodGet, "/api/statistics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if _, ok := body["currentMonth"]; !ok {
		t.Errorf("Expected currentMonth in statistics, got %v", body)
	}
	if _, ok := body["totalRequests"]; !ok {
		t.Errorf("Expected totalRequests in statistics, got %v", body)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/analytics/full", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard CORS origin, got %q", got)
	}
}

func TestRateLimitExceeded(t *testing.T) {
	r := newTestServer(t)
	rateLimiter = middleware.NewRateLimiter(1, 2)
	r = newRouter(logging.Initialize())

	limited := false
	for i := 0; i < 5; i++ {
		w := doJSON(t, r, http.MethodGet, "/api/health", nil)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("Expected a 429 once the bucket drained")
	}
}
