package collectors

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/config"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

var (
	clipIDExpr    = regexp.MustCompile(`clip_id=(\d+)`)
	titleDateExpr = regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\w*\s+\d{1,2},?\s*\d{4}`)
)

// Granicus collects Saint Paul Planning Commission meetings from the
// Granicus publisher. The RSS agenda feed is clean and structured; the HTML
// listing page catches upcoming meetings whose agendas have not been
// published yet (they appear on the listing but not in the feed).
type Granicus struct {
	client *Client
	parser *gofeed.Parser
}

func NewGranicus(client *Client) *Granicus {
	return &Granicus{
		client: client,
		parser: gofeed.NewParser(),
	}
}

func (g *Granicus) Name() string {
	return "granicus"
}

func (g *Granicus) Fetch(ctx context.Context, cfg *config.Config) ([]pipeline.Item, error) {
	source := cfg.Sources[g.Name()]
	if source.RSSURL == "" {
		return nil, fmt.Errorf("granicus requires rss_url")
	}

	label := sourceLabel(cfg, g.Name(), "Saint Paul Planning Commission")

	items, seenClips, err := g.fetchRSS(ctx, source, label)
	if err != nil {
		return nil, err
	}

	if source.ListingURL != "" {
		listed, err := g.scrapeListing(ctx, source, label, seenClips)
		if err != nil {
			// The feed succeeded; a broken listing page only loses not-yet-
			// published agendas.
			slog.Error("Granicus listing page failed", "error", err)
		} else {
			items = append(items, listed...)
		}
	}

	return items, nil
}

func (g *Granicus) fetchRSS(ctx context.Context, source config.SourceConfig, label string) ([]pipeline.Item, map[string]struct{}, error) {
	body, err := g.client.Get(ctx, source.RSSURL)
	if err != nil {
		return nil, nil, fmt.Errorf("granicus RSS: %w", err)
	}

	feed, err := g.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("granicus RSS parse: %w", err)
	}

	seenClips := make(map[string]struct{})
	items := make([]pipeline.Item, 0, len(feed.Items))

	for _, entry := range feed.Items {
		rawTitle := strings.TrimSpace(entry.Title)
		if rawTitle == "" {
			continue
		}

		link := strings.TrimSpace(entry.Link)
		if clip := clipID(link); clip != "" {
			seenClips[clip] = struct{}{}
		}

		date := extractDate(rawTitle)
		if date == "" && entry.PublishedParsed != nil {
			date = entry.PublishedParsed.Format(DateFormat)
		}
		if date == "" {
			date = currentDate()
		}

		canceled := strings.Contains(strings.ToLower(rawTitle), "cancel")
		special := strings.Contains(strings.ToLower(rawTitle), "special")

		descParts := []string{"Saint Paul Planning Commission meeting."}
		if canceled {
			descParts = append(descParts, "This meeting was canceled.")
		}
		if link != "" {
			descParts = append(descParts, "Agenda PDF available at the link.")
		}

		items = append(items, pipeline.Item{
			Title:       formatMeetingTitle(rawTitle, canceled, special),
			Description: strings.Join(descParts, " "),
			Date:        date,
			Source:      label,
			SourceKey:   g.Name(),
			Category:    pipeline.CategoryHearing,
			URL:         link,
			Raw: map[string]string{
				"rss_title": rawTitle,
				"pub_date":  entry.Published,
			},
		})
	}

	slog.Debug("Granicus RSS parsed", "items", len(items))
	return items, seenClips, nil
}

// scrapeListing scans the publisher listing table for agenda links whose
// clip ids did not appear in the RSS feed.
func (g *Granicus) scrapeListing(ctx context.Context, source config.SourceConfig, label string, seenClips map[string]struct{}) ([]pipeline.Item, error) {
	doc, err := g.client.GetDocument(ctx, source.ListingURL)
	if err != nil {
		return nil, err
	}

	var items []pipeline.Item
	rows := doc.Find(`tr[class*="listing"], tr[class*="Listing"]`)
	if rows.Length() == 0 {
		rows = doc.Find("table tr")
	}

	rows.Each(func(_ int, row *goquery.Selection) {
		if item, ok := g.parseListingRow(row, source.ListingURL, label, seenClips); ok {
			items = append(items, item)
		}
	})

	slog.Debug("Granicus listing page scanned", "new_items", len(items))
	return items, nil
}

func (g *Granicus) parseListingRow(row *goquery.Selection, listingURL, label string, seenClips map[string]struct{}) (pipeline.Item, bool) {
	var agendaLink string
	row.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.Contains(href, "AgendaViewer") || strings.Contains(href, "clip_id") {
			agendaLink = href
			return false
		}
		return true
	})
	if agendaLink == "" {
		return pipeline.Item{}, false
	}

	agendaLink = absoluteURL(agendaLink, listingURL)

	// Already covered by the RSS feed
	if clip := clipID(agendaLink); clip != "" {
		if _, ok := seenClips[clip]; ok {
			return pipeline.Item{}, false
		}
	}

	rowText := strings.Join(strings.Fields(row.Text()), " ")
	date := extractDate(rowText)
	canceled := strings.Contains(strings.ToLower(rowText), "cancel")
	special := strings.Contains(strings.ToLower(rowText), "special")

	rawTitle := "Planning Commission Meeting — " + firstNonEmpty(date, "Upcoming")

	return pipeline.Item{
		Title:       formatMeetingTitle(rawTitle, canceled, special),
		Description: "Saint Paul Planning Commission upcoming meeting. Agenda link available.",
		Date:        firstNonEmpty(date, currentDate()),
		Source:      label,
		SourceKey:   g.Name(),
		Category:    pipeline.CategoryHearing,
		URL:         agendaLink,
		Raw:         map[string]string{"row_text": truncate(rowText, 200)},
	}, true
}

// formatMeetingTitle builds the clean display title, carrying cancellation
// and special-session markers as prefixes.
func formatMeetingTitle(raw string, canceled, special bool) string {
	base := "Planning Commission Meeting"
	if datePart := titleDateExpr.FindString(raw); datePart != "" {
		base = "Planning Commission — " + datePart
	}

	switch {
	case canceled:
		return "[CANCELED] " + base
	case special:
		return "[SPECIAL] " + base
	default:
		return base
	}
}

func clipID(url string) string {
	if match := clipIDExpr.FindStringSubmatch(url); match != nil {
		return match[1]
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
