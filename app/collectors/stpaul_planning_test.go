package collectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/config"
)

const planningPageHTML = `
<html><body>
<div>
  <h3>January 15, 2026 meeting</h3>
  <a href="/planning/agenda-jan-15.pdf">Meeting agenda</a>
</div>
<p>File #26-012-345 — Variance request for 840 Selby Ave, hearing February 5, 2026</p>
<a href="/about">About the commission</a>
</body></html>`

const bzaPageHTML = `
<html><body>
<a href="/bza/notice-feb-9">Public hearing notice — February 9, 2026</a>
</body></html>`

func TestStPaulPlanning_Fetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/planning", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(planningPageHTML))
	})
	mux.HandleFunc("/bza", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bzaPageHTML))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg, err := config.Parse([]byte("sources:\n  stpaul_planning:\n    label: Saint Paul Planning\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	source := cfg.Sources["stpaul_planning"]
	source.MeetingsURL = server.URL + "/planning"
	source.BZAURL = server.URL + "/bza"
	cfg.Sources["stpaul_planning"] = source

	collector := NewStPaulPlanning(NewClient("test-agent", 0))
	items, err := collector.Fetch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d: %+v", len(items), items)
	}

	agenda := items[0]
	if agenda.Title != "Planning Commission Agenda — 2026-01-15" {
		t.Errorf("Unexpected agenda title: %s", agenda.Title)
	}
	if agenda.Date != "2026-01-15" {
		t.Errorf("Date should come from the sibling heading, got %s", agenda.Date)
	}

	caseItem := items[1]
	if caseItem.Title != "Planning Case 26-012-345" {
		t.Errorf("Unexpected case title: %s", caseItem.Title)
	}
	if caseItem.Date != "2026-02-05" {
		t.Errorf("Case date should come from the inline text, got %s", caseItem.Date)
	}
	if !strings.Contains(caseItem.Description, "Variance request") {
		t.Errorf("Case description should carry the inline text, got %s", caseItem.Description)
	}

	bza := items[2]
	if bza.Title != "Board of Zoning Appeals — 2026-02-09" {
		t.Errorf("Unexpected BZA title: %s", bza.Title)
	}
}

func TestIsAgendaLink(t *testing.T) {
	tests := []struct {
		text     string
		href     string
		expected bool
	}{
		{"Meeting agenda", "/x", true},
		{"Download", "/planning/agenda.pdf", true},
		{"Public hearing notice", "/x", true},
		{"Contact us", "/contact", false},
		{"a", "/agenda", false}, // too short
	}

	for _, tt := range tests {
		if got := isAgendaLink(tt.text, tt.href); got != tt.expected {
			t.Errorf("isAgendaLink(%q, %q) = %v, expected %v", tt.text, tt.href, got, tt.expected)
		}
	}
}
