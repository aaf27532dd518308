package matcher

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultThreshold is the minimum partial-ratio score considered a
// match when no threshold is configured.
const DefaultThreshold = 80

// Matcher fuzzy-compares a stated name against OCR-extracted text.
type Matcher struct {
	threshold int
}

// New creates a matcher with the given threshold. Values outside
// (0, 100] fall back to DefaultThreshold.
func New(threshold int) *Matcher {
	if threshold <= 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Score returns the partial-ratio similarity in [0, 100] between the
// normalized name and extracted text. Partial ratio scores the
// best-aligning substring, so a short name embedded anywhere in a long
// text blob can still score 100.
func (m *Matcher) Score(name, extractedText string) int {
	name = normalize(name)
	extractedText = normalize(extractedText)
	return fuzzy.PartialRatio(name, extractedText)
}

// Matches reports whether the similarity score meets the threshold.
func (m *Matcher) Matches(name, extractedText string) bool {
	return m.Score(name, extractedText) >= m.threshold
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
