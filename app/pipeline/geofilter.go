package pipeline

import (
	"log/slog"
	"regexp"
)

// Trust is the per-source relevance policy applied after the text patterns
// fail to match. Sources already scoped to the monitored jurisdiction (an
// API-level ZIP query, or a body that only governs the monitored area) are
// fully trusted; broad-coverage sources get one extra acceptance pattern;
// everything else relies on text matching alone.
type Trust int

const (
	TrustPatternOnly Trust = iota
	TrustFull
	TrustBroadSignal
)

// GeoPolicy is the configured trust policy for one source key.
type GeoPolicy struct {
	Trust        Trust
	BroadSignals []string
}

type sourcePolicy struct {
	trust Trust
	broad *regexp.Regexp
}

// GeoFilter decides which items fall inside the monitored area. All patterns
// and the trust table are resolved once at construction; Run never compiles
// anything per item.
type GeoFilter struct {
	zips          *regexp.Regexp
	neighborhoods *regexp.Regexp
	corridors     *regexp.Regexp
	policies      map[string]sourcePolicy
	warned        map[string]bool
}

// NewGeoFilter builds the filter from the configured ZIP codes, neighborhood
// names and corridor names, plus the per-source-key trust table. Empty lists
// yield patterns that never match; a configuration with all three lists
// empty degrades to pure trust-table filtering.
func NewGeoFilter(zipCodes, neighborhoods, corridors []string, policies map[string]GeoPolicy) *GeoFilter {
	resolved := make(map[string]sourcePolicy, len(policies))
	for key, policy := range policies {
		resolved[key] = sourcePolicy{
			trust: policy.Trust,
			broad: CompileWordPattern(policy.BroadSignals),
		}
	}

	// Corridor terms get the same suffix normalization as item text, so a
	// "Selby Avenue" configuration matches both "Selby Avenue" and "Selby Ave"
	// in sources.
	normalizedCorridors := make([]string, len(corridors))
	for i, corridor := range corridors {
		normalizedCorridors[i] = NormalizeSuffixes(corridor)
	}

	return &GeoFilter{
		zips:          CompileWordPattern(zipCodes),
		neighborhoods: CompileWordPattern(neighborhoods),
		corridors:     CompileWordPattern(normalizedCorridors),
		policies:      resolved,
		warned:        make(map[string]bool),
	}
}

// Run returns the items considered geographically relevant, in input order.
// Dropped items are a normal outcome and logged at debug level only.
func (g *GeoFilter) Run(items []Item) []Item {
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if g.relevant(item) {
			kept = append(kept, item)
			continue
		}
		slog.Debug("Item outside monitored area", "title", item.Title, "source_key", item.SourceKey)
	}

	slog.Info("Geographic filter completed", "input", len(items), "output", len(kept))
	return kept
}

// relevant evaluates the acceptance signals in order, short-circuiting on
// the first match: ZIP, neighborhood, corridor, then the source trust tier.
func (g *GeoFilter) relevant(item Item) bool {
	text := NormalizeSuffixes(SearchText(item))

	if matches(g.zips, text) || matches(g.neighborhoods, text) || matches(g.corridors, text) {
		return true
	}

	policy, ok := g.policies[item.SourceKey]
	if !ok {
		// A source nobody configured a trust tier for drops everything once
		// text matching fails. Warn once per key so a newly added collector
		// is visible in the run log instead of silently vanishing.
		if !g.warned[item.SourceKey] {
			g.warned[item.SourceKey] = true
			slog.Warn("No trust policy configured for source, dropping unmatched items", "source_key", item.SourceKey)
		}
		return false
	}

	switch policy.trust {
	case TrustFull:
		return true
	case TrustBroadSignal:
		return matches(policy.broad, text)
	default:
		return false
	}
}

func matches(pattern *regexp.Regexp, text string) bool {
	return pattern != nil && pattern.MatchString(text)
}
