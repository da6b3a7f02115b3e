package pipeline

import (
	"log/slog"
	"regexp"
)

type keywordPattern struct {
	keyword string
	pattern *regexp.Regexp
}

// Flagger marks items that mention operator-supplied keywords as needing
// human attention. It annotates; it never removes or reorders items.
type Flagger struct {
	keywords []keywordPattern
}

// NewFlagger compiles one whole-word, case-insensitive pattern per keyword.
// Keeping one pattern per keyword (rather than a single alternation) lets
// the flag reasons report the literal configured keywords that matched.
func NewFlagger(keywords []string) *Flagger {
	compiled := make([]keywordPattern, 0, len(keywords))
	for _, keyword := range keywords {
		pattern := CompileWordPattern([]string{keyword})
		if pattern == nil {
			continue
		}
		compiled = append(compiled, keywordPattern{keyword: keyword, pattern: pattern})
	}
	return &Flagger{keywords: compiled}
}

// Run returns a new sequence with Flagged and FlagReasons set on every item,
// in configuration keyword order. With no keywords configured every item is
// explicitly marked unflagged with an empty reasons list.
func (f *Flagger) Run(items []Item) []Item {
	annotated := make([]Item, 0, len(items))
	flaggedCount := 0

	for _, item := range items {
		text := SearchText(item)
		reasons := []string{}
		for _, kw := range f.keywords {
			if kw.pattern.MatchString(text) {
				reasons = append(reasons, kw.keyword)
			}
		}

		item.Flagged = len(reasons) > 0
		item.FlagReasons = reasons
		if item.Flagged {
			flaggedCount++
			slog.Debug("Item flagged for attention", "title", item.Title, "reasons", reasons)
		}
		annotated = append(annotated, item)
	}

	slog.Info("Flagging completed", "flagged", flaggedCount, "total", len(annotated))
	return annotated
}
