package analysis

import (
	"context"
	"errors"
)

var ErrUnknownLabel = errors.New("classifier returned no label")

// Predictor assigns a job category to resume text. Implementations backed by
// an external model may return labels outside the keyword table.
type Predictor interface {
	Predict(ctx context.Context, text string) (Category, error)
}

// RulePredictor is the keyword-rule Predictor. It never fails.
type RulePredictor struct {
	table *KeywordTable
}

func NewRulePredictor(table *KeywordTable) RulePredictor {
	if table == nil {
		table = defaultTable
	}
	return RulePredictor{table: table}
}

func (p RulePredictor) Predict(_ context.Context, normalized string) (Category, error) {
	return p.table.Predict(normalized), nil
}
