package pipeline

import (
	"testing"
)

func TestOrderer_Run_FlaggedGroupFirstNewestFirst(t *testing.T) {
	orderer := NewOrderer()

	items := []Item{
		{Title: "U1", Date: "2026-02-01", Category: CategoryHearing},
		{Title: "F1", Date: "2026-01-15", Flagged: true, FlagReasons: []string{"demolition"}, Category: CategoryPermit},
		{Title: "U2", Date: "2026-03-01", Category: CategoryRoad},
		{Title: "F2", Date: "2026-02-20", Flagged: true, FlagReasons: []string{"variance"}, Category: CategoryHearing},
	}

	p := orderer.Run(items)

	want := []string{"F2", "F1", "U2", "U1"}
	for i, title := range want {
		if p.Items[i].Title != title {
			t.Fatalf("Position %d: expected %s, got %s (order %v)", i, title, p.Items[i].Title, titles(p.Items))
		}
	}

	// Grouping invariant: every flagged item precedes every unflagged item
	sawUnflagged := false
	for _, item := range p.Items {
		if !item.Flagged {
			sawUnflagged = true
		} else if sawUnflagged {
			t.Errorf("Flagged item %s appears after an unflagged item", item.Title)
		}
	}
}

func TestOrderer_Run_StableWithinEqualDates(t *testing.T) {
	orderer := NewOrderer()

	items := []Item{
		{Title: "A", Date: "2026-02-01"},
		{Title: "B", Date: "2026-02-01"},
		{Title: "C", Date: "2026-02-01"},
	}

	p := orderer.Run(items)

	if p.Items[0].Title != "A" || p.Items[1].Title != "B" || p.Items[2].Title != "C" {
		t.Errorf("Equal dates should keep relative input order, got %v", titles(p.Items))
	}
}

func TestOrderer_Run_Stats(t *testing.T) {
	orderer := NewOrderer()

	items := []Item{
		{Title: "P", Date: "2026-01-01", Category: CategoryPermit, Flagged: true, FlagReasons: []string{"x"}},
		{Title: "H", Date: "2026-01-02", Category: CategoryHearing},
		{Title: "R", Date: "2026-01-03", Category: CategoryRoad},
		{Title: "F", Date: "2026-01-04", Category: CategoryFunding},
		{Title: "Unknown", Date: "2026-01-05", Category: "mystery"},
	}

	p := orderer.Run(items)

	if p.Stats.Total != 5 {
		t.Errorf("Expected total 5, got %d", p.Stats.Total)
	}
	if p.Stats.Flagged != 1 {
		t.Errorf("Expected flagged 1, got %d", p.Stats.Flagged)
	}
	if p.Stats.Permits != 1 || p.Stats.Hearings != 1 || p.Stats.Roads != 1 || p.Stats.Funding != 1 {
		t.Errorf("Unexpected category counts: %+v", p.Stats)
	}
	// Items with an unknown category are excluded from all four named counts
	if sum := p.Stats.Permits + p.Stats.Hearings + p.Stats.Roads + p.Stats.Funding; sum > p.Stats.Total {
		t.Errorf("Category counts %d exceed total %d", sum, p.Stats.Total)
	}
}

func TestOrderer_Run_DistinctSourcesAndCategories(t *testing.T) {
	orderer := NewOrderer()

	items := []Item{
		{Title: "1", Source: "Saint Paul Legistar", Category: CategoryHearing},
		{Title: "2", Source: "Ramsey County", Category: CategoryRoad},
		{Title: "3", Source: "Saint Paul Legistar", Category: CategoryHearing},
		{Title: "4", Source: "", Category: ""},
	}

	p := orderer.Run(items)

	if len(p.Sources) != 2 || p.Sources[0] != "Ramsey County" || p.Sources[1] != "Saint Paul Legistar" {
		t.Errorf("Expected sorted distinct sources, got %v", p.Sources)
	}
	if len(p.Categories) != 2 || p.Categories[0] != CategoryHearing || p.Categories[1] != CategoryRoad {
		t.Errorf("Expected sorted distinct categories, got %v", p.Categories)
	}
}

func TestOrderer_Run_EmptyInput(t *testing.T) {
	orderer := NewOrderer()

	p := orderer.Run(nil)

	if p.Stats.Total != 0 || p.Stats.Flagged != 0 {
		t.Errorf("Expected zero stats, got %+v", p.Stats)
	}
	if len(p.Items) != 0 || len(p.Sources) != 0 || len(p.Categories) != 0 {
		t.Errorf("Expected empty lists for empty input")
	}
}

func titles(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}
