package pipeline

import (
	"log/slog"
	"sort"
)

// Orderer produces the final display order and the aggregate statistics the
// renderer consumes.
type Orderer struct{}

func NewOrderer() *Orderer {
	return &Orderer{}
}

// Run partitions items into flagged and unflagged groups (flagged first),
// sorts each group by date descending with ties keeping input order, and
// computes aggregate counts plus the distinct source and category lists for
// the dashboard's filter controls.
func (o *Orderer) Run(items []Item) Presentation {
	flagged := make([]Item, 0, len(items))
	unflagged := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Flagged {
			flagged = append(flagged, item)
		} else {
			unflagged = append(unflagged, item)
		}
	}

	// Dates are YYYY-MM-DD strings, so lexical order is chronological.
	byDateDesc := func(group []Item) func(i, j int) bool {
		return func(i, j int) bool { return group[i].Date > group[j].Date }
	}
	sort.SliceStable(flagged, byDateDesc(flagged))
	sort.SliceStable(unflagged, byDateDesc(unflagged))

	ordered := make([]Item, 0, len(items))
	ordered = append(ordered, flagged...)
	ordered = append(ordered, unflagged...)

	stats := Stats{Total: len(ordered), Flagged: len(flagged)}
	for _, item := range ordered {
		switch item.Category {
		case CategoryPermit:
			stats.Permits++
		case CategoryHearing:
			stats.Hearings++
		case CategoryRoad:
			stats.Roads++
		case CategoryFunding:
			stats.Funding++
		}
	}

	slog.Info("Ordering completed", "total", stats.Total, "flagged", stats.Flagged)

	return Presentation{
		Items:      ordered,
		Stats:      stats,
		Sources:    distinct(ordered, func(i Item) string { return i.Source }),
		Categories: distinct(ordered, func(i Item) string { return i.Category }),
	}
}

// distinct collects the sorted set of non-empty values of one field.
func distinct(items []Item, field func(Item) string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, item := range items {
		v := field(item)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
