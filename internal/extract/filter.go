package extract

import (
	"regexp"
	"strings"
)

// KeywordFilter retains records whose title contains one of the configured
// keywords, matched case-insensitively on word boundaries.
type KeywordFilter struct {
	re *regexp.Regexp
}

// NewKeywordFilter builds a filter from a keyword set. An empty set yields a
// filter that matches nothing.
func NewKeywordFilter(keywords []string) *KeywordFilter {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}
	if len(quoted) == 0 {
		return &KeywordFilter{}
	}
	return &KeywordFilter{
		re: regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`),
	}
}

// Match reports whether the title contains any configured keyword.
func (f *KeywordFilter) Match(title string) bool {
	if f == nil || f.re == nil {
		return false
	}
	return f.re.MatchString(title)
}
