package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/muhammadolammi/resumeworker/internal/analysis"
	"github.com/muhammadolammi/resumeworker/internal/extract"
	"github.com/rs/zerolog/log"
)

// buildPipeline wires the extractor and analyzer selected by cfg.
func buildPipeline(ctx context.Context, cfg Config) (*extract.Extractor, *analysis.Analyzer, error) {
	table, err := analysis.LoadKeywordTable(cfg.KeywordsFile)
	if err != nil {
		return nil, nil, err
	}

	engine, err := extract.PDFEngineByName(cfg.PDFEngine)
	if err != nil {
		return nil, nil, err
	}

	opts := extract.Options{PDFEngine: engine, PageSeparator: cfg.PageSeparator}
	if cfg.GoogleAPIKey != "" {
		recognizer, err := newGeminiRecognizer(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		opts.Recognizer = recognizer
	} else {
		log.Warn().Msg("GOOGLE_API_KEY not set; image resumes will fail extraction")
	}

	var analyzerOpts []analysis.Option
	switch strings.ToLower(cfg.Classifier) {
	case "", "rules":
	case "gemini":
		if cfg.GoogleAPIKey == "" {
			return nil, nil, fmt.Errorf("classifier %q needs GOOGLE_API_KEY", cfg.Classifier)
		}
		predictor, err := newAgentPredictor(ctx, cfg.GoogleAPIKey, cfg.GeminiModel, table.Categories())
		if err != nil {
			return nil, nil, err
		}
		analyzerOpts = append(analyzerOpts, analysis.WithPredictor(predictor))
	default:
		return nil, nil, fmt.Errorf("unknown classifier %q", cfg.Classifier)
	}
	if cfg.DetectLanguage {
		analyzerOpts = append(analyzerOpts, analysis.WithLanguageDetector(analysis.NewLinguaDetector()))
	}

	log.Debug().
		Str("pdf_engine", engine.Name()).
		Str("classifier", cfg.Classifier).
		Bool("language", cfg.DetectLanguage).
		Msg("pipeline ready")
	return extract.New(opts), analysis.NewAnalyzer(table, analyzerOpts...), nil
}
