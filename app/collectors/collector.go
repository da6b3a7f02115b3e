package collectors

import (
	"context"
	"log/slog"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/config"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

// Collector is one per-source producer of canonical items. Fetch returns
// the source's items or an error; it never partially fails silently.
type Collector interface {
	Name() string
	Fetch(ctx context.Context, cfg *config.Config) ([]pipeline.Item, error)
}

// Registry returns all collectors in execution order. The order is stable
// so the dedup stage's first-occurrence rule is deterministic across runs.
func Registry(client *Client) []Collector {
	return []Collector{
		NewStPaulPermits(client),
		NewStPaulPlanning(client),
		NewLegistar(client),
		NewGranicus(client),
		NewRamseyCounty(client),
		NewMnDOT(client),
	}
}

// RunAll executes collectors sequentially, concatenating their output in
// execution order. A failing collector contributes zero items and the run
// continues: one unreachable government site must never empty the dashboard
// for the others. When only is non-empty, all other collectors are skipped.
func RunAll(ctx context.Context, collectors []Collector, cfg *config.Config, only string) []pipeline.Item {
	var all []pipeline.Item

	for _, collector := range collectors {
		name := collector.Name()
		if only != "" && name != only {
			continue
		}

		source, ok := cfg.Sources[name]
		if ok && !source.IsEnabled() {
			slog.Debug("Collector disabled, skipping", "collector", name)
			continue
		}

		slog.Info("Running collector", "collector", name)
		items, err := collector.Fetch(ctx, cfg)
		if err != nil {
			slog.Error("Collector failed", "collector", name, "error", err)
			continue
		}

		slog.Info("Collector completed", "collector", name, "items", len(items))
		all = append(all, items...)
	}

	slog.Info("All collectors completed", "total", len(all))
	return all
}

// sourceLabel returns the configured display label for a source, falling
// back to the given default.
func sourceLabel(cfg *config.Config, key, fallback string) string {
	if source, ok := cfg.Sources[key]; ok && source.Label != "" {
		return source.Label
	}
	return fallback
}

// dedupByURL removes items sharing a URL, keeping first occurrence. Several
// collectors scan overlapping page regions and need a local cleanup pass
// before their items enter the shared pipeline.
func dedupByURL(items []pipeline.Item) []pipeline.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]pipeline.Item, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		out = append(out, item)
	}
	return out
}
