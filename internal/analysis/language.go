package analysis

import "github.com/pemistahl/lingua-go"

// LanguageDetector names the natural language a text is written in.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}

var defaultLanguages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector restricted to languages. Fewer than two
// languages selects the default European set.
func NewLinguaDetector(languages ...lingua.Language) LanguageDetector {
	if len(languages) < 2 {
		languages = defaultLanguages
	}
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()
	return linguaDetector{detector: detector}
}

func (d linguaDetector) Detect(text string) (string, bool) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.String(), true
}
