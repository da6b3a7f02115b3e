package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		ConfigPath: "./config.yml",
		OutputDir:  "./docs",
		Source:     "legistar",
		DryRun:     true,
		NoFilter:   true,
		Serve:      true,
		Port:       "8080",
		UserAgent:  "Test Agent",
		Timezone:   "UTC",
		Debug:      true,
		Version:    "test-version",
	}

	if cfg.ConfigPath != "./config.yml" {
		t.Errorf("Expected config path './config.yml', got '%s'", cfg.ConfigPath)
	}
	if cfg.OutputDir != "./docs" {
		t.Errorf("Expected output dir './docs', got '%s'", cfg.OutputDir)
	}
	if cfg.Source != "legistar" {
		t.Errorf("Expected source 'legistar', got '%s'", cfg.Source)
	}
	if !cfg.DryRun {
		t.Error("Expected dry run to be enabled")
	}
	if !cfg.NoFilter {
		t.Error("Expected no-filter to be enabled")
	}
	if !cfg.Serve {
		t.Error("Expected serve mode to be enabled")
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
