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

var (
	highwayWords = []string{"project", "construction", "highway", "interchange", "bridge",
		"th ", "mn-", "i-94", "i-35", "resurfac", "reconstruct"}
	transitWords = []string{"line", "corridor", "brt", "bus rapid", "light rail", "streetcar",
		"station", "route", "extension", "transitway"}
)

// MnDOT collects active highway projects from the MnDOT Metro District pages
// and capital projects from Metro Transit. Both cover far more than the
// monitored neighborhoods, which is why the source is configured with the
// broad-signal trust tier and filtered downstream.
type MnDOT struct {
	client *Client
}

func NewMnDOT(client *Client) *MnDOT {
	return &MnDOT{client: client}
}

func (m *MnDOT) Name() string {
	return "mndot"
}

func (m *MnDOT) Fetch(ctx context.Context, cfg *config.Config) ([]pipeline.Item, error) {
	source := cfg.Sources[m.Name()]
	if source.ProjectsURL == "" && source.MetroTransitURL == "" {
		return nil, fmt.Errorf("mndot requires projects_url or metro_transit_url")
	}

	label := sourceLabel(cfg, m.Name(), "MnDOT / Metro")
	var items []pipeline.Item

	if source.ProjectsURL != "" {
		projects, err := m.scrapeProjects(ctx, source.ProjectsURL, label)
		if err != nil {
			slog.Error("MnDOT projects page failed", "error", err)
		} else {
			items = append(items, projects...)
		}
	}

	if source.MetroTransitURL != "" {
		transit, err := m.scrapeMetroTransit(ctx, source.MetroTransitURL, label)
		if err != nil {
			slog.Error("Metro Transit projects page failed", "error", err)
		} else {
			items = append(items, transit...)
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("mndot: no pages could be scraped")
	}

	return items, nil
}

// scrapeProjects parses the MnDOT project listing: table rows first, then a
// link scan when the page carries no tables.
func (m *MnDOT) scrapeProjects(ctx context.Context, pageURL, label string) ([]pipeline.Item, error) {
	doc, err := m.client.GetDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var items []pipeline.Item

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		link := row.Find("a[href]").First()
		title := strings.TrimSpace(cells.First().Text())
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if len(title) < 5 {
			return
		}

		var descParts []string
		cells.Slice(1, cells.Length()).Each(func(_ int, cell *goquery.Selection) {
			descParts = append(descParts, strings.TrimSpace(cell.Text()))
		})
		description := truncate(strings.Join(descParts, " | "), 300)

		href := pageURL
		if h, exists := link.Attr("href"); exists {
			href = h
		}

		items = append(items, m.makeProjectItem(title, description, href, pageURL, label))
	})

	if len(items) == 0 {
		doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			text := strings.TrimSpace(link.Text())
			if len(text) < 8 || !containsAny(strings.ToLower(text+" "+href), highwayWords) {
				return
			}
			items = append(items, m.makeProjectItem(text, "", href, pageURL, label))
		})
	}

	items = dedupByURL(items)
	slog.Debug("MnDOT projects scraped", "items", len(items))
	return items, nil
}

func (m *MnDOT) makeProjectItem(title, description, href, pageURL, label string) pipeline.Item {
	searchable := title + " " + description
	return pipeline.Item{
		Title:       "MnDOT Project — " + truncate(title, 80),
		Description: firstNonEmpty(description, title),
		Date:        firstNonEmpty(extractDate(searchable), currentDate()),
		Source:      label,
		SourceKey:   m.Name(),
		Category:    pipeline.CategoryRoad,
		Address:     extractRouteOrAddress(searchable),
		URL:         absoluteURL(href, pageURL),
		Raw:         map[string]string{"title": title, "description": description},
	}
}

// scrapeMetroTransit parses the Metro Transit capital project cards, falling
// back to a transit-keyword link scan.
func (m *MnDOT) scrapeMetroTransit(ctx context.Context, pageURL, label string) ([]pipeline.Item, error) {
	doc, err := m.client.GetDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var items []pipeline.Item

	blocks := doc.Find("article")
	if blocks.Length() == 0 {
		blocks = doc.Find(`div[class*="project"], div[class*="card"], div[class*="feature"]`)
	}

	if blocks.Length() > 0 {
		blocks.Each(func(_ int, block *goquery.Selection) {
			heading := block.Find("h2, h3, h4, h5").First()
			title := strings.TrimSpace(heading.Text())
			if title == "" {
				return
			}

			description := ""
			if p := block.Find("p").First(); p.Length() > 0 {
				description = truncate(strings.TrimSpace(p.Text()), 300)
			}

			href := pageURL
			if h, exists := block.Find("a[href]").First().Attr("href"); exists {
				href = h
			}

			searchable := title + " " + description
			items = append(items, pipeline.Item{
				Title:       "Metro Transit — " + truncate(title, 80),
				Description: description,
				Date:        firstNonEmpty(extractDate(searchable), currentDate()),
				Source:      label,
				SourceKey:   m.Name(),
				Category:    pipeline.CategoryRoad,
				Address:     extractRouteOrAddress(searchable),
				URL:         absoluteURL(href, pageURL),
				Raw:         map[string]string{"title": title, "description": description},
			})
		})
	} else {
		doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			text := strings.TrimSpace(link.Text())
			if len(text) < 10 || !containsAny(strings.ToLower(text), transitWords) {
				return
			}
			items = append(items, pipeline.Item{
				Title:       "Metro Transit — " + truncate(text, 80),
				Description: text,
				Date:        currentDate(),
				Source:      label,
				SourceKey:   m.Name(),
				Category:    pipeline.CategoryRoad,
				URL:         absoluteURL(href, pageURL),
				Raw:         map[string]string{"link_text": text},
			})
		})
	}

	items = dedupByURL(items)
	slog.Debug("Metro Transit projects scraped", "items", len(items))
	return items, nil
}
