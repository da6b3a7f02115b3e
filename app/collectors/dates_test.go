package collectors

import (
	"testing"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"Planning Commission Meeting - Feb 20, 2026", "2026-02-20"},
		{"Hearing on March 4, 2026 at 3:30 PM", "2026-03-04"},
		{"Posted 3/4/2026", "2026-03-04"},
		{"Updated 2026-02-01 by staff", "2026-02-01"},
		{"Reconstruction planned for 20 February 2026", "2026-02-20"},
		// Bare year fallback, bounded to the project horizon
		{"Construction season 2026 overview", "2026-01-01"},
		{"Founded in 1887", ""},
		{"No dates here", ""},
	}

	for _, tt := range tests {
		if got := extractDate(tt.text); got != tt.expected {
			t.Errorf("extractDate(%q) = %q, expected %q", tt.text, got, tt.expected)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"2024-01-15T00:00:00.000", "2024-01-15"}, // Socrata ISO
		{"2024-01-15T08:30:00", "2024-01-15"},
		{"3/4/2026", "2026-03-04"}, // Legistar calendar cell
		{"March 4, 2026", "2026-03-04"},
		{"2026-03-04", "2026-03-04"},
		{"Fri, 06 Feb 2026 06:30:00 -0800", "2026-02-06"}, // RSS pubDate via dateparse
		{"", ""},
		{"not a date", ""},
	}

	for _, tt := range tests {
		if got := parseDate(tt.raw); got != tt.expected {
			t.Errorf("parseDate(%q) = %q, expected %q", tt.raw, got, tt.expected)
		}
	}
}

func TestExtractRouteOrAddress(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"I-94 resurfacing between downtown exits", "I-94"},
		{"TH 5 bridge replacement", "TH 5"},
		{"MN-36 interchange work", "MN-36"},
		{"US-52 corridor study", "US-52"},
		{"Work at 123 Selby Ave starting soon", "123 Selby Ave"},
		{"No location given", ""},
	}

	for _, tt := range tests {
		if got := extractRouteOrAddress(tt.text); got != tt.expected {
			t.Errorf("extractRouteOrAddress(%q) = %q, expected %q", tt.text, got, tt.expected)
		}
	}
}

func TestExtractAddress(t *testing.T) {
	if got := extractAddress("Permit issued for 1060 Summit Blvd last week"); got != "1060 Summit Blvd" {
		t.Errorf("Unexpected address: %q", got)
	}
	if got := extractAddress("General county business"); got != "" {
		t.Errorf("Expected no address, got %q", got)
	}
}
