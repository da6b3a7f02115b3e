package pipeline

// Item categories form a closed set. Collectors map source-specific record
// types into these; anything unmapped falls back to CategoryHearing.
const (
	CategoryPermit  = "permit"
	CategoryHearing = "hearing"
	CategoryRoad    = "road"
	CategoryFunding = "funding"
)

// Item is the canonical record every collector produces and every pipeline
// stage consumes. Title, Date, SourceKey and Category are set once by the
// originating collector and never mutated downstream; later stages only drop
// items or add the flag annotations.
type Item struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD, always set (collectors fall back to the current date)
	Source      string `json:"source"`
	SourceKey   string `json:"source_key"`
	Category    string `json:"category"`
	Address     string `json:"address"`
	URL         string `json:"url"`

	Flagged     bool     `json:"flagged"`
	FlagReasons []string `json:"flag_reasons"`

	// Raw carries source-specific fields for diagnostics only. No stage other
	// than the originating collector reads it.
	Raw map[string]string `json:"-"`
}

// Stats holds the aggregate counts computed by the ordering stage.
type Stats struct {
	Total    int `json:"total"`
	Flagged  int `json:"flagged"`
	Permits  int `json:"permits"`
	Hearings int `json:"hearings"`
	Roads    int `json:"roads"`
	Funding  int `json:"funding"`
}

// Presentation is the final pipeline output handed to the renderer: the
// display-ordered items plus everything the dashboard's filter controls need.
type Presentation struct {
	Items      []Item   `json:"items"`
	Stats      Stats    `json:"stats"`
	Sources    []string `json:"sources"`
	Categories []string `json:"categories"`
}

// NormalizeCategory maps an arbitrary category string into the closed set,
// defaulting to CategoryHearing for anything unrecognized.
func NormalizeCategory(category string) string {
	switch category {
	case CategoryPermit, CategoryHearing, CategoryRoad, CategoryFunding:
		return category
	default:
		return CategoryHearing
	}
}
