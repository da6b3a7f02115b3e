package collectors

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/config"
	"github.com/summituniversityplanningcouncil/neighborhood-monitor/app/pipeline"
)

var (
	agendaWords = []string{"agenda", "minutes", "hearing", "meeting", "notice"}
	caseExpr    = regexp.MustCompile(`(?i)(file|case|petition|app(?:lication)?)[.\s#]*(\d[\d\-]+)`)
)

// StPaulPlanning collects Planning Commission and Board of Zoning Appeals
// pages from stpaul.gov: agenda links plus any case numbers listed inline.
type StPaulPlanning struct {
	client *Client
}

func NewStPaulPlanning(client *Client) *StPaulPlanning {
	return &StPaulPlanning{client: client}
}

func (s *StPaulPlanning) Name() string {
	return "stpaul_planning"
}

func (s *StPaulPlanning) Fetch(ctx context.Context, cfg *config.Config) ([]pipeline.Item, error) {
	source := cfg.Sources[s.Name()]
	if source.MeetingsURL == "" && source.BZAURL == "" {
		return nil, fmt.Errorf("stpaul_planning requires meetings_url or bza_url")
	}

	label := sourceLabel(cfg, s.Name(), "Saint Paul Planning")
	var items []pipeline.Item

	if source.MeetingsURL != "" {
		planning, err := s.scrapeBoard(ctx, source.MeetingsURL, "Planning Commission Agenda",
			"Saint Paul Planning Commission meeting agenda. Review for items in target neighborhoods.", label)
		if err != nil {
			slog.Error("Planning Commission page failed", "error", err)
		} else {
			items = append(items, planning...)
		}
	}

	if source.BZAURL != "" {
		bza, err := s.scrapeBoard(ctx, source.BZAURL, "Board of Zoning Appeals",
			"Saint Paul Board of Zoning Appeals hearing. Review for variances and appeals in target neighborhoods.", label)
		if err != nil {
			slog.Error("BZA page failed", "error", err)
		} else {
			items = append(items, bza...)
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("stpaul_planning: no pages could be scraped")
	}

	return dedupByURL(items), nil
}

func (s *StPaulPlanning) scrapeBoard(ctx context.Context, pageURL, titlePrefix, description, label string) ([]pipeline.Item, error) {
	doc, err := s.client.GetDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var items []pipeline.Item

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		text := strings.TrimSpace(link.Text())
		if !isAgendaLink(text, href) {
			return
		}

		date := extractDate(text)
		if date == "" {
			date = dateFromContext(link)
		}

		items = append(items, pipeline.Item{
			Title:       fmt.Sprintf("%s — %s", titlePrefix, firstNonEmpty(date, "Upcoming")),
			Description: description,
			Date:        firstNonEmpty(date, currentDate()),
			Source:      label,
			SourceKey:   s.Name(),
			Category:    pipeline.CategoryHearing,
			URL:         absoluteURL(href, pageURL),
			Raw:         map[string]string{"link_text": text, "href": href},
		})
	})

	items = append(items, s.extractInlineCases(doc, pageURL, label)...)

	slog.Debug("Planning page scraped", "url", pageURL, "items", len(items))
	return items, nil
}

// extractInlineCases finds individual case/petition numbers listed directly
// on the page ("File #12-345-678", "Case 12-345").
func (s *StPaulPlanning) extractInlineCases(doc *goquery.Document, pageURL, label string) []pipeline.Item {
	var items []pipeline.Item

	doc.Find("p, li, td, div").Each(func(_ int, tag *goquery.Selection) {
		// Only leaf-ish nodes; deep containers would repeat every nested case
		if tag.Children().Is("p, li, td, div") {
			return
		}

		text := strings.TrimSpace(tag.Text())
		match := caseExpr.FindStringSubmatch(text)
		if match == nil {
			return
		}

		caseNum := match[2]
		fullText := truncate(text, 200)
		url := pageURL
		if href, exists := tag.Find("a[href]").First().Attr("href"); exists {
			url = absoluteURL(href, pageURL)
		}

		items = append(items, pipeline.Item{
			Title:       "Planning Case " + caseNum,
			Description: fullText,
			Date:        firstNonEmpty(extractDate(fullText), currentDate()),
			Source:      label,
			SourceKey:   s.Name(),
			Category:    pipeline.CategoryHearing,
			URL:         url,
			Raw:         map[string]string{"case_num": caseNum, "text": fullText},
		})
	})

	return items
}

func isAgendaLink(text, href string) bool {
	textL := strings.ToLower(text)
	hrefL := strings.ToLower(href)
	if len(text) < 4 {
		return false
	}
	for _, word := range agendaWords {
		if strings.Contains(textL, word) || strings.Contains(hrefL, word) {
			return true
		}
	}
	return false
}

// dateFromContext walks up the DOM from a link to find a nearby date in a
// heading or parent element.
func dateFromContext(tag *goquery.Selection) string {
	for parent := tag.Parent(); parent.Length() > 0; parent = parent.Parent() {
		if parent.Is("body") {
			break
		}
		if !parent.Is("li, div, section, article, tr, td") {
			continue
		}
		heading := parent.Find("h2, h3, h4, h5, h6, strong, b").First()
		if heading.Length() > 0 {
			if date := extractDate(heading.Text()); date != "" {
				return date
			}
		}
		if date := extractDate(parent.Text()); date != "" {
			return date
		}
	}
	return ""
}
