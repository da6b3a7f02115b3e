package config

// Config is the monitor configuration document. The pattern lists drive the
// geographic filter and the flagger; Sources carries the per-source-key
// settings every collector and the trust table read. Absent lists are
// treated as empty, not as errors.
type Config struct {
	ZipCodes      []string                `yaml:"zip_codes"`
	Neighborhoods []string                `yaml:"neighborhoods"`
	Corridors     []string                `yaml:"corridors"`
	FlagKeywords  []string                `yaml:"flag_keywords"`
	Sources       map[string]SourceConfig `yaml:"sources"`
	Dashboard     DashboardConfig         `yaml:"dashboard"`
}

// SourceConfig holds one collector's settings: enablement, display label,
// trust tier, dedup key shape, and the endpoints/fields the collector needs.
type SourceConfig struct {
	Enabled *bool  `yaml:"enabled"` // nil means enabled
	Label   string `yaml:"label"`

	// Trust is one of "full", "broad", "pattern" (default "pattern").
	// "broad" sources list the extra acceptance signals tried before an
	// unmatched item is dropped.
	Trust        string   `yaml:"trust"`
	BroadSignals []string `yaml:"broad_signals"`

	// DedupKey is "url_title" (default) or "url" for sources whose items
	// frequently lack a usable title.
	DedupKey string `yaml:"dedup_key"`

	// Socrata API sources
	BaseURL      string `yaml:"base_url"`
	DatasetID    string `yaml:"dataset_id"`
	Limit        int    `yaml:"limit"`
	ZipField     string `yaml:"zip_field"`
	DateField    string `yaml:"date_field"`
	AddressField string `yaml:"address_field"`
	TypeField    string `yaml:"type_field"`

	// HTML / RSS sources
	CalendarURL     string `yaml:"calendar_url"`
	MeetingsURL     string `yaml:"meetings_url"`
	BZAURL          string `yaml:"bza_url"`
	RSSURL          string `yaml:"rss_url"`
	ListingURL      string `yaml:"listing_url"`
	BoardURL        string `yaml:"board_url"`
	RoadsURL        string `yaml:"roads_url"`
	ProjectsURL     string `yaml:"projects_url"`
	MetroTransitURL string `yaml:"metro_transit_url"`
}

// DashboardConfig contains presentation settings passed through to the
// renderer untouched.
type DashboardConfig struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}
