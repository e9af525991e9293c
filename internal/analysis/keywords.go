package analysis

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Category string

const (
	SoftwareEngineer Category = "Software Engineer"
	DataScientist    Category = "Data Scientist"
	ProjectManager   Category = "Project Manager"
)

// CategoryRule assigns Label when any trigger occurs in the normalized text.
type CategoryRule struct {
	Label    Category `yaml:"label"`
	Triggers []string `yaml:"triggers"`
}

// KeywordTable holds every hand-authored keyword list used by the heuristics.
// Rules are evaluated in order and the first match wins.
type KeywordTable struct {
	SummaryKeywords      []string              `yaml:"summary_keywords"`
	SummaryMaxLines      int                   `yaml:"summary_max_lines"`
	Rules                []CategoryRule        `yaml:"rules"`
	DefaultCategory      Category              `yaml:"default_category"`
	ScoreKeywords        map[Category][]string `yaml:"score_keywords"`
	UnknownCategoryScore int                   `yaml:"unknown_category_score"`
}

func DefaultKeywordTable() *KeywordTable {
	return &KeywordTable{
		SummaryKeywords: []string{"education", "experience", "skills", "project", "internship", "certification"},
		SummaryMaxLines: 10,
		Rules: []CategoryRule{
			{Label: DataScientist, Triggers: []string{"machine", "data", "analysis"}},
			{Label: ProjectManager, Triggers: []string{"project", "lead", "timeline"}},
		},
		DefaultCategory: SoftwareEngineer,
		ScoreKeywords: map[Category][]string{
			SoftwareEngineer: {"python", "java", "c++", "software", "api", "backend", "frontend"},
			DataScientist:    {"python", "machine learning", "data", "model", "pandas", "numpy"},
			ProjectManager:   {"project", "budget", "timeline", "agile", "scrum", "lead"},
		},
		UnknownCategoryScore: 50,
	}
}

// LoadKeywordTable reads a YAML file over the built-in table. Sections present
// in the file replace the defaults; score_keywords entries replace the list of
// the category they name.
func LoadKeywordTable(path string) (*KeywordTable, error) {
	table := DefaultKeywordTable()
	if path == "" {
		return table, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword table: %w", err)
	}
	if err := yaml.Unmarshal(raw, table); err != nil {
		return nil, fmt.Errorf("parse keyword table %s: %w", path, err)
	}
	table.lowerKeywords()
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("keyword table %s: %w", path, err)
	}
	return table, nil
}

func (t *KeywordTable) Validate() error {
	if t.SummaryMaxLines <= 0 {
		return errors.New("summary_max_lines must be positive")
	}
	if t.DefaultCategory == "" {
		return errors.New("default_category is required")
	}
	if t.UnknownCategoryScore < 0 || t.UnknownCategoryScore > 100 {
		return fmt.Errorf("unknown_category_score %d out of range [0,100]", t.UnknownCategoryScore)
	}
	for i, rule := range t.Rules {
		if rule.Label == "" {
			return fmt.Errorf("rule %d has no label", i)
		}
		for _, trigger := range rule.Triggers {
			// triggers are matched against normalized text
			if trigger == "" || Normalize(trigger) != trigger {
				return fmt.Errorf("rule %q: trigger %q must be lower-case letters, digits and spaces", rule.Label, trigger)
			}
		}
	}
	for _, kw := range t.SummaryKeywords {
		if kw == "" {
			return errors.New("summary_keywords contains an empty keyword")
		}
	}
	for label, kws := range t.ScoreKeywords {
		for _, kw := range kws {
			if kw == "" {
				return fmt.Errorf("score_keywords %q contains an empty keyword", label)
			}
		}
	}
	return nil
}

// lowerKeywords trims and lower-cases every keyword so that hand-written
// tables match the lower-cased text they are compared with.
func (t *KeywordTable) lowerKeywords() {
	lower := func(kws []string) {
		for i, kw := range kws {
			kws[i] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	lower(t.SummaryKeywords)
	for _, rule := range t.Rules {
		lower(rule.Triggers)
	}
	for _, kws := range t.ScoreKeywords {
		lower(kws)
	}
}

// Categories lists every label the table knows about, sorted.
func (t *KeywordTable) Categories() []Category {
	seen := map[Category]bool{t.DefaultCategory: true}
	for _, rule := range t.Rules {
		seen[rule.Label] = true
	}
	for label := range t.ScoreKeywords {
		seen[label] = true
	}
	out := make([]Category, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
