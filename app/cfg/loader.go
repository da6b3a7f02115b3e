package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Run configuration
	ConfigPath string `long:"config" env:"CONFIG_PATH" default:"./config.yml" description:"Path to the monitor configuration file"`
	OutputDir  string `long:"output-dir" env:"OUTPUT_DIR" default:"./docs" description:"Directory the dashboard HTML is written to"`
	Source     string `long:"source" env:"SOURCE" description:"Run only a single collector (for testing)"`
	DryRun     bool   `long:"dry-run" env:"DRY_RUN" description:"Fetch and process items but do not write the dashboard"`
	NoFilter   bool   `long:"no-filter" env:"NO_FILTER" description:"Skip the geographic filter and show all fetched items"`

	// Serve mode
	Serve bool   `long:"serve" env:"SERVE" description:"Serve the dashboard and item API over HTTP after the run"`
	Port  string `long:"port" env:"PORT" default:"8080" description:"HTTP server port for serve mode"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (compatible; SUPC-NeighborhoodMonitor/1.0; +https://github.com/summituniversityplanningcouncil/neighborhood-monitor)" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/Chicago)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		ConfigPath: raw.ConfigPath,
		OutputDir:  raw.OutputDir,
		Source:     raw.Source,
		DryRun:     raw.DryRun,
		NoFilter:   raw.NoFilter,
		Serve:      raw.Serve,
		Port:       raw.Port,
		UserAgent:  raw.UserAgent,
		Timezone:   raw.Timezone,
		Debug:      raw.Debug,
		Version:    GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
