package pipeline

import (
	"log/slog"
)

// KeyMode selects the identity key shape used for a source's items. Most
// sources key on (url, title); sources whose items frequently lack titles
// key on url alone. The choice is per-collector configuration, never
// inferred by the pipeline.
type KeyMode int

const (
	KeyURLTitle KeyMode = iota
	KeyURL
)

// Deduper removes items that refer to the same real-world notice, keeping
// the first occurrence in collector execution order.
type Deduper struct {
	modes map[string]KeyMode
}

// NewDeduper creates a deduplicator with the per-source-key identity key
// modes. Sources not present in the map use KeyURLTitle.
func NewDeduper(modes map[string]KeyMode) *Deduper {
	if modes == nil {
		modes = make(map[string]KeyMode)
	}
	return &Deduper{modes: modes}
}

// Run returns a new sequence with at most one item per identity key,
// preserving first-occurrence order. Inputs are not mutated. Running it
// twice on its own output yields the same sequence.
func (d *Deduper) Run(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	deduped := make([]Item, 0, len(items))

	for _, item := range items {
		key := d.key(item)
		if _, ok := seen[key]; ok {
			slog.Debug("Duplicate item dropped", "title", item.Title, "url", item.URL, "source_key", item.SourceKey)
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, item)
	}

	slog.Info("Deduplication completed", "input", len(items), "output", len(deduped))
	return deduped
}

func (d *Deduper) key(item Item) string {
	if d.modes[item.SourceKey] == KeyURL {
		return item.URL
	}
	return item.URL + "|" + item.Title
}
