package lexicon

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is one entry of an ordered (pattern, category, weight) table.
// Plain entries match as case-insensitive substrings; regex entries compile
// with (?i) at construction time.
type Pattern struct {
	Expr     string
	Category string
	Weight   float64
	IsRegex  bool

	lowered string
	re      *regexp.Regexp
}

// Match is one pattern hit in a text. A text may hit several patterns and
// several categories; every pattern is tested independently.
type Match struct {
	Expr     string
	Category string
	Weight   float64
}

// PatternSet is an immutable ordered pattern table. Construction compiles
// every entry; an invalid pattern is a configuration error, never a runtime
// failure.
type PatternSet struct {
	name     string
	patterns []Pattern
}

// NewPatternSet compiles an ordered pattern table.
func NewPatternSet(name string, patterns []Pattern) (*PatternSet, error) {
	compiled := make([]Pattern, len(patterns))
	for i, p := range patterns {
		if p.Expr == "" {
			return nil, fmt.Errorf("pattern set %q: empty pattern at index %d", name, i)
		}
		if p.Weight == 0 {
			p.Weight = 1
		}
		if p.IsRegex {
			re, err := regexp.Compile("(?i)" + p.Expr)
			if err != nil {
				return nil, fmt.Errorf("pattern set %q: invalid pattern %q: %w", name, p.Expr, err)
			}
			p.re = re
		} else {
			p.lowered = strings.ToLower(p.Expr)
		}
		compiled[i] = p
	}
	return &PatternSet{name: name, patterns: compiled}, nil
}

// Keywords builds a plain substring pattern set with uniform weight.
func Keywords(name, category string, words []string) (*PatternSet, error) {
	patterns := make([]Pattern, 0, len(words))
	for _, w := range words {
		patterns = append(patterns, Pattern{Expr: w, Category: category})
	}
	return NewPatternSet(name, patterns)
}

// Name returns the set's name.
func (ps *PatternSet) Name() string { return ps.name }

// Len returns the number of patterns in the set.
func (ps *PatternSet) Len() int { return len(ps.patterns) }

// Match tests every pattern against the text independently and returns the
// hits in table order. Stateless across calls.
func (ps *PatternSet) Match(text string) []Match {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)

	var matches []Match
	for _, p := range ps.patterns {
		hit := false
		if p.IsRegex {
			hit = p.re.MatchString(text)
		} else {
			hit = strings.Contains(lowered, p.lowered)
		}
		if hit {
			matches = append(matches, Match{Expr: p.Expr, Category: p.Category, Weight: p.Weight})
		}
	}
	return matches
}

// Matches reports whether the text hits at least one pattern.
func (ps *PatternSet) Matches(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, p := range ps.patterns {
		if p.IsRegex {
			if p.re.MatchString(text) {
				return true
			}
		} else if strings.Contains(lowered, p.lowered) {
			return true
		}
	}
	return false
}

// Count returns the number of patterns the text hits.
func (ps *PatternSet) Count(text string) int {
	return len(ps.Match(text))
}
