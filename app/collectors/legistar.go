package collectors

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/config"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

const legistarBaseURL = "https://stpaul.legistar.com/"

// meetingBodyCategories maps keywords in Legistar meeting body names to item
// categories. Bodies matching none of these default to hearings, which is
// what most municipal meetings are from the dashboard's perspective.
var meetingBodyCategories = []struct {
	keyword  string
	category string
}{
	{"zoning", pipeline.CategoryPermit},
	{"licens", pipeline.CategoryPermit},
	{"public works", pipeline.CategoryRoad},
	{"transportation", pipeline.CategoryRoad},
	{"hra", pipeline.CategoryFunding},
	{"housing", pipeline.CategoryFunding},
	{"budget", pipeline.CategoryFunding},
}

// Legistar collects the Saint Paul municipal meeting calendar. The calendar
// page renders a Telerik RadGrid table; plain HTML, no JavaScript needed for
// the initial load.
type Legistar struct {
	client *Client
}

func NewLegistar(client *Client) *Legistar {
	return &Legistar{client: client}
}

func (l *Legistar) Name() string {
	return "legistar"
}

func (l *Legistar) Fetch(ctx context.Context, cfg *config.Config) ([]pipeline.Item, error) {
	source := cfg.Sources[l.Name()]
	if source.CalendarURL == "" {
		return nil, fmt.Errorf("legistar requires calendar_url")
	}

	doc, err := l.client.GetDocument(ctx, source.CalendarURL)
	if err != nil {
		return nil, fmt.Errorf("legistar calendar: %w", err)
	}

	table := findCalendarTable(doc)
	if table == nil {
		return nil, fmt.Errorf("legistar: could not find calendar table in page")
	}

	colMap := parseColumnMap(table)
	slog.Debug("Legistar column map parsed", "columns", len(colMap))

	label := sourceLabel(cfg, l.Name(), "Saint Paul Legistar")
	var items []pipeline.Item

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		if item, ok := l.parseRow(row, colMap, source.CalendarURL, label); ok {
			items = append(items, item)
		}
	})

	return items, nil
}

// findCalendarTable locates the RadGrid calendar table, falling back to any
// table whose headers look like a meeting calendar.
func findCalendarTable(doc *goquery.Document) *goquery.Selection {
	table := doc.Find(`table[id*="gridCalendar"]`).First()
	if table.Length() > 0 {
		return table
	}

	var fallback *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		looksLikeCalendar := false
		t.Find("th").Each(func(_ int, th *goquery.Selection) {
			header := strings.ToLower(th.Text())
			if strings.Contains(header, "date") || strings.Contains(header, "meeting") || strings.Contains(header, "name") {
				looksLikeCalendar = true
			}
		})
		if looksLikeCalendar {
			fallback = t
			return false
		}
		return true
	})
	return fallback
}

// parseColumnMap maps column roles to index positions from the header row.
func parseColumnMap(table *goquery.Selection) map[string]int {
	colMap := make(map[string]int)
	headerRow := table.Find("tr").First()

	headerRow.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(cell.Text()))
		assign := func(key string) {
			if _, ok := colMap[key]; !ok {
				colMap[key] = i
			}
		}
		switch {
		case strings.Contains(text, "name"):
			assign("name")
		case strings.Contains(text, "date"):
			assign("date")
		case strings.Contains(text, "time"):
			assign("time")
		case strings.Contains(text, "location"):
			assign("location")
		case strings.Contains(text, "agenda"):
			assign("agenda")
		case strings.Contains(text, "minutes"):
			assign("minutes")
		case strings.Contains(text, "detail"):
			assign("details")
		}
	})

	return colMap
}

func (l *Legistar) parseRow(row *goquery.Selection, colMap map[string]int, calendarURL, label string) (pipeline.Item, bool) {
	cells := row.Find("td")
	if cells.Length() < 2 {
		return pipeline.Item{}, false
	}

	cellText := func(key string, fallback int) string {
		idx, ok := colMap[key]
		if !ok {
			idx = fallback
		}
		if idx < 0 || idx >= cells.Length() {
			return ""
		}
		return strings.TrimSpace(cells.Eq(idx).Text())
	}

	cellLink := func(key string) string {
		idx, ok := colMap[key]
		if !ok || idx >= cells.Length() {
			return ""
		}
		href, exists := cells.Eq(idx).Find("a[href]").First().Attr("href")
		if !exists {
			return ""
		}
		return absoluteURL(href, legistarBaseURL)
	}

	name := cellText("name", 0)
	dateRaw := cellText("date", 1)
	timeRaw := cellText("time", 2)
	location := cellText("location", 3)

	if name == "" || dateRaw == "" {
		return pipeline.Item{}, false
	}

	date := parseDate(dateRaw)
	if date == "" {
		slog.Debug("Legistar: unparseable meeting date", "raw", dateRaw, "body", name)
		return pipeline.Item{}, false
	}

	agendaURL := firstNonEmpty(cellLink("agenda"), cellLink("details"), calendarURL)

	title := fmt.Sprintf("%s — %s", name, dateRaw)
	if timeRaw != "" {
		title += " at " + timeRaw
	}

	descParts := []string{"Meeting body: " + name}
	if timeRaw != "" {
		descParts = append(descParts, "Time: "+timeRaw)
	}
	if location != "" {
		descParts = append(descParts, "Location: "+location)
	}

	return pipeline.Item{
		Title:       title,
		Description: strings.Join(descParts, " | "),
		Date:        date,
		Source:      label,
		SourceKey:   l.Name(),
		Category:    categoryForBody(name),
		Address:     location,
		URL:         agendaURL,
		Raw: map[string]string{
			"name":     name,
			"date":     dateRaw,
			"time":     timeRaw,
			"location": location,
		},
	}, true
}

// categoryForBody classifies a meeting by its body name via the static
// keyword table; unmapped bodies are hearings.
func categoryForBody(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range meetingBodyCategories {
		if strings.Contains(lower, entry.keyword) {
			return entry.category
		}
	}
	return pipeline.CategoryHearing
}
