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
	boardWords = []string{"agenda", "minutes", "board", "meeting"}
	roadWords  = []string{"project", "construction", "resurfac", "reconstruct", "utility", "trail"}
)

// RamseyCounty collects county board meeting agendas and public works road
// project listings from ramseycounty.us.
type RamseyCounty struct {
	client *Client
}

func NewRamseyCounty(client *Client) *RamseyCounty {
	return &RamseyCounty{client: client}
}

func (r *RamseyCounty) Name() string {
	return "ramsey_county"
}

func (r *RamseyCounty) Fetch(ctx context.Context, cfg *config.Config) ([]pipeline.Item, error) {
	source := cfg.Sources[r.Name()]
	if source.BoardURL == "" && source.RoadsURL == "" {
		return nil, fmt.Errorf("ramsey_county requires board_url or roads_url")
	}

	label := sourceLabel(cfg, r.Name(), "Ramsey County")
	var items []pipeline.Item

	if source.BoardURL != "" {
		board, err := r.scrapeBoardAgendas(ctx, source.BoardURL, label)
		if err != nil {
			slog.Error("Ramsey County board page failed", "error", err)
		} else {
			items = append(items, board...)
		}
	}

	if source.RoadsURL != "" {
		roads, err := r.scrapeRoadProjects(ctx, source.RoadsURL, label)
		if err != nil {
			slog.Error("Ramsey County roads page failed", "error", err)
		} else {
			items = append(items, roads...)
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("ramsey_county: no pages could be scraped")
	}

	return items, nil
}

func (r *RamseyCounty) scrapeBoardAgendas(ctx context.Context, pageURL, label string) ([]pipeline.Item, error) {
	doc, err := r.client.GetDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var items []pipeline.Item

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		text := strings.TrimSpace(link.Text())
		if len(text) < 4 || !containsAny(strings.ToLower(text+" "+href), boardWords) {
			return
		}

		date := extractDate(text)
		if date == "" {
			date = dateFromContext(link)
		}

		items = append(items, pipeline.Item{
			Title: "Ramsey County Board — " + firstNonEmpty(date, "Upcoming"),
			Description: "Ramsey County Board of Commissioners meeting. " +
				"Review agenda for items affecting Saint Paul neighborhoods. Link: " + text,
			Date:      firstNonEmpty(date, currentDate()),
			Source:    label,
			SourceKey: r.Name(),
			Category:  pipeline.CategoryHearing,
			URL:       absoluteURL(href, pageURL),
			Raw:       map[string]string{"link_text": text, "href": href},
		})
	})

	items = dedupByURL(items)
	slog.Debug("Ramsey County board agendas scraped", "items", len(items))
	return items, nil
}

func (r *RamseyCounty) scrapeRoadProjects(ctx context.Context, pageURL, label string) ([]pipeline.Item, error) {
	doc, err := r.client.GetDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var items []pipeline.Item

	blocks := doc.Find("article")
	if blocks.Length() == 0 {
		blocks = doc.Find(`div[class*="project"], div[class*="card"], div[class*="item"]`)
	}

	if blocks.Length() > 0 {
		blocks.Each(func(_ int, block *goquery.Selection) {
			if item, ok := r.parseProjectBlock(block, pageURL, label); ok {
				items = append(items, item)
			}
		})
	} else {
		// Fallback: grab all links on the page that look like project links
		doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			text := strings.TrimSpace(link.Text())
			if len(text) < 10 || !containsAny(strings.ToLower(text+" "+href), roadWords) {
				return
			}
			items = append(items, pipeline.Item{
				Title:       "Ramsey County Road Project — " + truncate(text, 80),
				Description: truncate(text, 300),
				Date:        currentDate(),
				Source:      label,
				SourceKey:   r.Name(),
				Category:    pipeline.CategoryRoad,
				Address:     extractAddress(text),
				URL:         absoluteURL(href, pageURL),
				Raw:         map[string]string{"link_text": text, "href": href},
			})
		})
	}

	items = dedupByURL(items)
	slog.Debug("Ramsey County road projects scraped", "items", len(items))
	return items, nil
}

func (r *RamseyCounty) parseProjectBlock(block *goquery.Selection, pageURL, label string) (pipeline.Item, bool) {
	heading := block.Find("h2, h3, h4, h5, h6, strong").First()
	title := strings.TrimSpace(heading.Text())
	if title == "" {
		return pipeline.Item{}, false
	}

	description := title
	if p := block.Find("p").First(); p.Length() > 0 {
		if text := strings.TrimSpace(p.Text()); text != "" {
			description = truncate(text, 300)
		}
	}

	url := pageURL
	if href, exists := block.Find("a[href]").First().Attr("href"); exists {
		url = absoluteURL(href, pageURL)
	}

	return pipeline.Item{
		Title:       "Road Project — " + truncate(title, 80),
		Description: description,
		Date:        firstNonEmpty(extractDate(block.Text()), currentDate()),
		Source:      label,
		SourceKey:   r.Name(),
		Category:    pipeline.CategoryRoad,
		Address:     extractAddress(title + " " + description),
		URL:         url,
		Raw:         map[string]string{"block_text": truncate(strings.TrimSpace(block.Text()), 300)},
	}, true
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
