// Package analysis implements the keyword heuristics run over extracted
// resume text: normalization, summary, improvement suggestions, category
// prediction and keyword match score.
package analysis

import (
	"strings"
	"unicode"
)

const (
	noSummary = "Could not extract any meaningful summary."
	allGood   = "Resume looks good!"

	minWordCount = 100
)

var defaultTable = DefaultKeywordTable()

// Normalize drops every character that is not an ASCII letter, digit or
// whitespace and lower-cases the rest. Whitespace is kept as is.
func Normalize(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			return r
		case 'A' <= r && r <= 'Z':
			return r + ('a' - 'A')
		case unicode.IsSpace(r):
			return r
		}
		return -1
	}, text)
}

// Summarize keeps the lines of raw that mention a section keyword, trimmed,
// in their original order, up to SummaryMaxLines of them.
func (t *KeywordTable) Summarize(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if len(lines) == t.SummaryMaxLines {
			break
		}
		if containsAny(strings.ToLower(line), t.SummaryKeywords) {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	if len(lines) == 0 {
		return noSummary
	}
	return strings.Join(lines, "\n")
}

func Summarize(raw string) string {
	return defaultTable.Summarize(raw)
}

type check struct {
	missing bool
	message string
}

// Suggest returns improvement hints in a fixed order, or a single all-clear
// message when none apply.
func Suggest(text string) []string {
	lower := strings.ToLower(text)
	checks := []check{
		{!strings.Contains(lower, "objective"), "Consider adding a career objective."},
		{!strings.Contains(lower, "experience"), "Include your professional experience."},
		{!strings.Contains(lower, "skills"), "Highlight your technical or soft skills."},
		{len(strings.Fields(text)) < minWordCount, "Add more details to strengthen your resume."},
	}
	var out []string
	for _, c := range checks {
		if c.missing {
			out = append(out, c.message)
		}
	}
	if len(out) == 0 {
		return []string{allGood}
	}
	return out
}

// Predict walks the rules in order over normalized text and falls back to
// DefaultCategory.
func (t *KeywordTable) Predict(normalized string) Category {
	for _, rule := range t.Rules {
		if containsAny(normalized, rule.Triggers) {
			return rule.Label
		}
	}
	return t.DefaultCategory
}

func Predict(normalized string) Category {
	return defaultTable.Predict(normalized)
}

// Score is the share of the category's keywords found in text, as a
// percentage truncated toward zero. Categories without keywords get
// UnknownCategoryScore.
func (t *KeywordTable) Score(text string, category Category) int {
	keywords := t.ScoreKeywords[category]
	if len(keywords) == 0 {
		return t.UnknownCategoryScore
	}
	lower := strings.ToLower(text)
	matched := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			matched++
		}
	}
	return matched * 100 / len(keywords)
}

func Score(text string, category Category) int {
	return defaultTable.Score(text, category)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
