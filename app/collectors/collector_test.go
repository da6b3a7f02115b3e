package collectors

import (
	"context"
	"errors"
	"testing"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/config"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

type stubCollector struct {
	name  string
	items []pipeline.Item
	err   error
	runs  int
}

func (s *stubCollector) Name() string {
	return s.name
}

func (s *stubCollector) Fetch(_ context.Context, _ *config.Config) ([]pipeline.Item, error) {
	s.runs++
	return s.items, s.err
}

func TestRunAll_FailureIsolation(t *testing.T) {
	cfg, err := config.Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	first := &stubCollector{name: "first", items: []pipeline.Item{{Title: "A", URL: "https://x/a"}}}
	broken := &stubCollector{name: "broken", err: errors.New("connection refused")}
	last := &stubCollector{name: "last", items: []pipeline.Item{{Title: "B", URL: "https://x/b"}}}

	items := RunAll(context.Background(), []Collector{first, broken, last}, cfg, "")

	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].Title != "A" || items[1].Title != "B" {
		t.Errorf("Items should keep execution order, got %+v", items)
	}
	if broken.runs != 1 {
		t.Errorf("Broken collector should still have run once, ran %d times", broken.runs)
	}
}

func TestRunAll_OnlyFilter(t *testing.T) {
	cfg, err := config.Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	first := &stubCollector{name: "first", items: []pipeline.Item{{Title: "A"}}}
	second := &stubCollector{name: "second", items: []pipeline.Item{{Title: "B"}}}

	items := RunAll(context.Background(), []Collector{first, second}, cfg, "second")

	if len(items) != 1 || items[0].Title != "B" {
		t.Fatalf("Expected only the selected collector's items, got %+v", items)
	}
	if first.runs != 0 {
		t.Errorf("Filtered-out collector should not run")
	}
}

func TestRunAll_DisabledSource(t *testing.T) {
	cfg, err := config.Parse([]byte("sources:\n  off:\n    enabled: false\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	disabled := &stubCollector{name: "off", items: []pipeline.Item{{Title: "A"}}}
	enabled := &stubCollector{name: "on", items: []pipeline.Item{{Title: "B"}}}

	items := RunAll(context.Background(), []Collector{disabled, enabled}, cfg, "")

	if disabled.runs != 0 {
		t.Errorf("Disabled collector should be skipped")
	}
	if len(items) != 1 || items[0].Title != "B" {
		t.Fatalf("Expected the enabled collector's items only, got %+v", items)
	}
}

func TestRegistry_Order(t *testing.T) {
	collectors := Registry(NewClient("test-agent", 0))

	expected := []string{
		"stpaul_permits",
		"stpaul_planning",
		"legistar",
		"granicus",
		"ramsey_county",
		"mndot",
	}
	if len(collectors) != len(expected) {
		t.Fatalf("Expected %d collectors, got %d", len(expected), len(collectors))
	}
	for i, name := range expected {
		if collectors[i].Name() != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, collectors[i].Name())
		}
	}
}

func TestDedupByURL(t *testing.T) {
	items := []pipeline.Item{
		{Title: "First", URL: "https://x/1"},
		{Title: "Second", URL: "https://x/1"},
		{Title: "Third", URL: "https://x/2"},
	}

	out := dedupByURL(items)

	if len(out) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(out))
	}
	if out[0].Title != "First" || out[1].Title != "Third" {
		t.Errorf("First occurrence should win, got %+v", out)
	}
}
