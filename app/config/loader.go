package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of the monitor configuration file.
type Loader struct {
	path string
}

// NewLoader creates a configuration loader for the given file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, parses and validates the YAML configuration document.
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", l.path, err)
	}

	slog.Info("Configuration loaded",
		"path", l.path,
		"zip_codes", len(config.ZipCodes),
		"neighborhoods", len(config.Neighborhoods),
		"corridors", len(config.Corridors),
		"flag_keywords", len(config.FlagKeywords),
		"sources", len(config.Sources))

	return config, nil
}

// Parse unmarshals and validates a configuration document.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(config *Config) {
	if config.Sources == nil {
		config.Sources = make(map[string]SourceConfig)
	}
	for key, source := range config.Sources {
		if source.Trust == "" {
			source.Trust = TrustPattern
		}
		if source.DedupKey == "" {
			source.DedupKey = DedupKeyURLTitle
		}
		if source.Limit == 0 {
			source.Limit = 500
		}
		config.Sources[key] = source
	}
	if config.Dashboard.Title == "" {
		config.Dashboard.Title = "Neighborhood Monitor"
	}
}

func validate(config *Config) error {
	for key, source := range config.Sources {
		switch source.Trust {
		case TrustPattern, TrustFull, TrustBroad:
		default:
			return fmt.Errorf("source %s: invalid trust tier %q", key, source.Trust)
		}

		if source.Trust == TrustBroad && len(source.BroadSignals) == 0 {
			return fmt.Errorf("source %s: trust tier %q requires broad_signals", key, source.Trust)
		}

		switch source.DedupKey {
		case DedupKeyURLTitle, DedupKeyURL:
		default:
			return fmt.Errorf("source %s: invalid dedup_key %q", key, source.DedupKey)
		}
	}

	return nil
}
