package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

func testServer() http.Handler {
	presentation := pipeline.Presentation{
		Items: []pipeline.Item{
			{Title: "Flagged permit", Date: "2026-02-10", Flagged: true, FlagReasons: []string{"demolition"}},
			{Title: "Hearing", Date: "2026-01-15", FlagReasons: []string{}},
		},
		Stats:      pipeline.Stats{Total: 2, Flagged: 1},
		Sources:    []string{"Saint Paul DSI"},
		Categories: []string{"permit"},
	}
	return NewServer(NewHandler("<html><body>dashboard</body></html>", presentation, "1.2.3"))
}

func TestGetDashboard(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	testServer().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Unexpected content type: %s", ct)
	}
	if w.Header().Get("X-Item-Count") != "2" {
		t.Errorf("Unexpected item count header: %s", w.Header().Get("X-Item-Count"))
	}
	if !strings.Contains(w.Body.String(), "dashboard") {
		t.Errorf("Body should carry the rendered page")
	}
}

func TestGetHealth(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	testServer().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var health map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("Health response should be JSON: %v", err)
	}
	if health["items"] != float64(2) {
		t.Errorf("Unexpected item count: %v", health["items"])
	}
	if health["version"] != "1.2.3" {
		t.Errorf("Unexpected version: %v", health["version"])
	}
}

func TestGetStats(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	testServer().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Stats   pipeline.Stats `json:"stats"`
		Sources []string       `json:"sources"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Stats response should be JSON: %v", err)
	}
	if body.Stats.Total != 2 || body.Stats.Flagged != 1 {
		t.Errorf("Unexpected stats: %+v", body.Stats)
	}
	if len(body.Sources) != 1 || body.Sources[0] != "Saint Paul DSI" {
		t.Errorf("Unexpected sources: %v", body.Sources)
	}
}

func TestGetItems(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	testServer().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Items []pipeline.Item `json:"items"`
		Total int             `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Items response should be JSON: %v", err)
	}
	if body.Total != 2 || len(body.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", body.Total)
	}
	if body.Items[0].Title != "Flagged permit" {
		t.Errorf("Item order should match the pipeline, got %+v", body.Items[0])
	}
}

func TestFavicon(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favicon.ico", nil)
	testServer().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", w.Code)
	}
}
