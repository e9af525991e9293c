package analysis

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Outputs struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
	Category    Category `json:"category"`
	Score       int      `json:"score"`
	Language    string   `json:"language,omitempty"`
}

type Analyzer struct {
	table     *KeywordTable
	predictor Predictor
	rules     RulePredictor
	language  LanguageDetector
}

type Option func(*Analyzer)

// WithPredictor replaces the keyword rules as the category source.
func WithPredictor(p Predictor) Option {
	return func(a *Analyzer) {
		if p != nil {
			a.predictor = p
		}
	}
}

func WithLanguageDetector(d LanguageDetector) Option {
	return func(a *Analyzer) { a.language = d }
}

func NewAnalyzer(table *KeywordTable, opts ...Option) *Analyzer {
	if table == nil {
		table = DefaultKeywordTable()
	}
	rules := NewRulePredictor(table)
	a := &Analyzer{table: table, predictor: rules, rules: rules}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) Table() *KeywordTable {
	return a.table
}

// Analyze runs every heuristic over one extracted text. The analyses are
// independent and run concurrently; the only error is ctx being done.
func (a *Analyzer) Analyze(ctx context.Context, raw string) (Outputs, error) {
	normalized := Normalize(raw)
	var out Outputs

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Summary = a.table.Summarize(raw)
		return nil
	})
	g.Go(func() error {
		out.Suggestions = Suggest(normalized)
		return nil
	})
	g.Go(func() error {
		out.Category = a.predict(ctx, normalized)
		out.Score = a.table.Score(raw, out.Category)
		return ctx.Err()
	})
	if a.language != nil {
		g.Go(func() error {
			out.Language, _ = a.language.Detect(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Outputs{}, err
	}
	return out, nil
}

func (a *Analyzer) predict(ctx context.Context, normalized string) Category {
	category, err := a.predictor.Predict(ctx, normalized)
	if err == nil && category != "" {
		return category
	}
	if err == nil {
		err = ErrUnknownLabel
	}
	log.Warn().Err(err).Msg("category predictor failed; using keyword rules")
	category, _ = a.rules.Predict(ctx, normalized)
	return category
}
