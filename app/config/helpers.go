package config

import (
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

// Trust tier values accepted in source configuration.
const (
	TrustPattern = "pattern"
	TrustFull    = "full"
	TrustBroad   = "broad"
)

// Dedup key shapes accepted in source configuration.
const (
	DedupKeyURLTitle = "url_title"
	DedupKeyURL      = "url"
)

// IsEnabled reports whether a source should run; sources are enabled unless
// explicitly disabled.
func (s SourceConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// GeoPolicies resolves the per-source trust table into the pipeline's policy
// variants. Resolution happens once at configuration load, not per item.
func (c *Config) GeoPolicies() map[string]pipeline.GeoPolicy {
	policies := make(map[string]pipeline.GeoPolicy, len(c.Sources))
	for key, source := range c.Sources {
		policy := pipeline.GeoPolicy{Trust: pipeline.TrustPatternOnly}
		switch source.Trust {
		case TrustFull:
			policy.Trust = pipeline.TrustFull
		case TrustBroad:
			policy.Trust = pipeline.TrustBroadSignal
			policy.BroadSignals = source.BroadSignals
		}
		policies[key] = policy
	}
	return policies
}

// DedupKeyModes resolves the per-source dedup key configuration for the
// deduplicator.
func (c *Config) DedupKeyModes() map[string]pipeline.KeyMode {
	modes := make(map[string]pipeline.KeyMode, len(c.Sources))
	for key, source := range c.Sources {
		if source.DedupKey == DedupKeyURL {
			modes[key] = pipeline.KeyURL
		} else {
			modes[key] = pipeline.KeyURLTitle
		}
	}
	return modes
}
