package collectors

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateFormat is the canonical item date form.
const DateFormat = "2006-01-02"

// datePatterns are tried in order against free text. Each pattern pairs a
// capture regexp with the layouts its captures may use. The bare-year
// pattern is a last resort guarded to a plausible range so page footers and
// phone numbers don't turn into dates.
var datePatterns = []struct {
	expr    *regexp.Regexp
	layouts []string
}{
	{
		regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\w*\.?\s+\d{1,2},?\s*\d{4})`),
		[]string{"January 2, 2006", "January 2 2006", "Jan 2, 2006", "Jan 2 2006", "Jan. 2, 2006"},
	},
	{
		regexp.MustCompile(`(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})`),
		[]string{"2 January 2006"},
	},
	{
		regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
		[]string{"2006-01-02"},
	},
	{
		regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`),
		[]string{"1/2/2006"},
	},
}

var bareYearExpr = regexp.MustCompile(`\b(\d{4})\b`)

// currentDate returns today's date in canonical form; collectors substitute
// it whenever a record carries no determinable date so every item stays
// sortable.
func currentDate() string {
	return time.Now().UTC().Format(DateFormat)
}

// extractDate finds the first recognizable date mention in free text and
// returns it in canonical form, or "" when nothing parses.
func extractDate(text string) string {
	for _, candidate := range datePatterns {
		match := candidate.expr.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		raw := strings.TrimSuffix(strings.TrimSpace(match[1]), ",")
		for _, layout := range candidate.layouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed.Format(DateFormat)
			}
		}
	}

	// Bare year as last resort, bounded to a plausible project horizon
	if match := bareYearExpr.FindStringSubmatch(text); match != nil {
		if year, err := strconv.Atoi(match[1]); err == nil && year >= 2020 && year <= 2035 {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(DateFormat)
		}
	}

	return ""
}

// parseDate parses a date string a source returned as a dedicated field
// (Socrata ISO timestamps, Legistar calendar cells, RSS pubDates). Explicit
// layouts are tried first; dateparse covers the long tail of formats
// government systems emit.
func parseDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	layouts := []string{
		"2006-01-02T15:04:05.000",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"1/2/2006",
		"January 2, 2006",
		"Jan 2, 2006",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format(DateFormat)
		}
	}

	if parsed, err := dateparse.ParseAny(raw); err == nil {
		return parsed.Format(DateFormat)
	}

	return ""
}

var (
	routeExprs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(I-\d+[A-Z]?)\b`),
		regexp.MustCompile(`(?i)\b(TH\s*\d+)\b`),
		regexp.MustCompile(`(?i)\b(MN-\d+)\b`),
		regexp.MustCompile(`(?i)\b(US-\d+)\b`),
	}
	streetAddressExpr = regexp.MustCompile(`\b\d{2,5}\s+[A-Za-z][A-Za-z\s]+(Ave|St|Blvd|Dr|Rd|Pkwy|Ln|Way|Ct)\b`)
)

// extractRouteOrAddress pulls a highway designator or street address out of
// free text, preferring route designators since road project text rarely
// carries a full street address.
func extractRouteOrAddress(text string) string {
	for _, expr := range routeExprs {
		if match := expr.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return extractAddress(text)
}

// extractAddress pulls a street-number + street-name address out of free
// text, or "" when none is present.
func extractAddress(text string) string {
	return streetAddressExpr.FindString(text)
}
