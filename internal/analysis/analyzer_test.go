package analysis

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type predictorFake struct {
	label Category
	err   error
	got   string
}

func (f *predictorFake) Predict(_ context.Context, text string) (Category, error) {
	f.got = text
	return f.label, f.err
}

type languageFake struct {
	lang string
}

func (f languageFake) Detect(string) (string, bool) {
	return f.lang, f.lang != ""
}

const projectLine = "My experience includes project leadership on a tight timeline, with strong Python skills and a clear objective."

func TestAnalyzeProjectManagerResume(t *testing.T) {
	out, err := NewAnalyzer(nil).Analyze(context.Background(), projectLine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Outputs{
		Summary:     projectLine,
		Suggestions: []string{"Add more details to strengthen your resume."},
		Category:    ProjectManager,
		Score:       50,
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("expected %+v, got %+v", want, out)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	out, err := NewAnalyzer(nil).Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Summary != "Could not extract any meaningful summary." {
		t.Fatalf("unexpected summary %q", out.Summary)
	}
	if len(out.Suggestions) != 4 {
		t.Fatalf("expected all four suggestions, got %q", out.Suggestions)
	}
	if out.Category != SoftwareEngineer || out.Score != 0 {
		t.Fatalf("expected Software Engineer/0, got %q/%d", out.Category, out.Score)
	}
}

func TestAnalyzeUsesConfiguredPredictorOnNormalizedText(t *testing.T) {
	pred := &predictorFake{label: "Chef"}
	out, err := NewAnalyzer(nil, WithPredictor(pred)).Analyze(context.Background(), "Sous-Chef, Paris!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.got != "souschef paris" {
		t.Fatalf("predictor got %q", pred.got)
	}
	if out.Category != "Chef" {
		t.Fatalf("expected external label, got %q", out.Category)
	}
	if out.Score != 50 {
		t.Fatalf("expected unknown category score 50, got %d", out.Score)
	}
}

func TestAnalyzeFallsBackToRulesWhenPredictorFails(t *testing.T) {
	for _, pred := range []*predictorFake{
		{err: errors.New("model unavailable")},
		{label: ""},
	} {
		out, err := NewAnalyzer(nil, WithPredictor(pred)).Analyze(context.Background(), "machine learning engineer")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category != DataScientist {
			t.Fatalf("expected rule fallback Data Scientist, got %q", out.Category)
		}
	}
}

func TestAnalyzeDetectsLanguage(t *testing.T) {
	out, err := NewAnalyzer(nil, WithLanguageDetector(languageFake{lang: "English"})).Analyze(context.Background(), "skills")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Language != "English" {
		t.Fatalf("expected English, got %q", out.Language)
	}
}

func TestAnalyzeReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewAnalyzer(nil).Analyze(ctx, "skills"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWithPredictorIgnoresNil(t *testing.T) {
	a := NewAnalyzer(nil, WithPredictor(nil))
	if _, ok := a.predictor.(RulePredictor); !ok {
		t.Fatalf("expected rule predictor, got %T", a.predictor)
	}
}
