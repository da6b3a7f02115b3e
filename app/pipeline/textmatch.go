package pipeline

import (
	"regexp"
	"strings"
)

// suffixAbbreviations maps spelled-out street suffixes to the abbreviated
// forms used in corridor configuration entries. Source text often spells
// suffixes out ("Selby Avenue") while corridors are configured abbreviated
// ("Selby Ave"), so the searchable text is normalized before matching.
var suffixAbbreviations = []struct {
	full   string
	abbrev string
}{
	{"Avenue", "Ave"},
	{"Boulevard", "Blvd"},
	{"Street", "St"},
	{"Drive", "Dr"},
	{"Road", "Rd"},
	{"Parkway", "Pkwy"},
	{"Lane", "Ln"},
	{"Court", "Ct"},
	{"Place", "Pl"},
	{"Highway", "Hwy"},
}

var suffixPatterns = compileSuffixPatterns()

func compileSuffixPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(suffixAbbreviations))
	for i, pair := range suffixAbbreviations {
		patterns[i] = regexp.MustCompile(`(?i)\b` + pair.full + `\b`)
	}
	return patterns
}

// SearchText builds the single searchable string both the geo filter and the
// flagger match against: title, description and address joined by spaces.
func SearchText(item Item) string {
	return strings.Join([]string{item.Title, item.Description, item.Address}, " ")
}

// NormalizeSuffixes rewrites spelled-out street suffixes into abbreviation
// form. Both the searchable item text and the configured corridor terms are
// normalized, so either spelling on either side matches.
func NormalizeSuffixes(text string) string {
	for i, pattern := range suffixPatterns {
		text = pattern.ReplaceAllString(text, suffixAbbreviations[i].abbrev)
	}
	return text
}

// CompileWordPattern builds one case-insensitive whole-word pattern matching
// any of the given terms. Returns nil for an empty list, which callers treat
// as "never matches".
func CompileWordPattern(terms []string) *regexp.Regexp {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
