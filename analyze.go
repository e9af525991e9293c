package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadolammi/resumeworker/internal/analysis"
	"github.com/muhammadolammi/resumeworker/internal/extract"
	"github.com/muhammadolammi/resumeworker/internal/report"
	"github.com/spf13/cobra"
)

type extractionReport struct {
	Format extract.Format `json:"format"`
	Status extract.Status `json:"status"`
	Pages  int            `json:"pages,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type fileReport struct {
	Filename   string            `json:"filename"`
	Extraction extractionReport  `json:"extraction"`
	Outputs    *analysis.Outputs `json:"outputs,omitempty"`
}

func analyzeFile(ctx context.Context, ex *extract.Extractor, an *analysis.Analyzer, path string) fileReport {
	name := filepath.Base(path)
	rep := fileReport{Filename: name}

	f, err := os.Open(path)
	if err != nil {
		rep.Extraction = extractionReport{Format: extract.DetectFormat(name), Status: extract.StatusFailure, Error: err.Error()}
		return rep
	}
	defer f.Close()

	doc, err := extract.ReadDocument(name, f)
	if err != nil {
		rep.Extraction = extractionReport{Format: extract.DetectFormat(name), Status: extract.StatusFailure, Error: err.Error()}
		return rep
	}

	res := ex.Extract(ctx, doc)
	rep.Extraction = extractionReport{Format: res.Format, Status: res.Status, Pages: res.Pages}
	if !res.OK() {
		rep.Extraction.Error = res.Message()
		return rep
	}
	if strings.TrimSpace(res.Text) == "" {
		rep.Extraction.Error = errNoText.Error()
		return rep
	}

	outputs, err := an.Analyze(ctx, res.Text)
	if err != nil {
		rep.Extraction.Error = fmt.Sprintf("analysis error: %v", err)
		return rep
	}
	rep.Outputs = &outputs
	return rep
}

func reportRows(reports []fileReport) []report.Row {
	rows := make([]report.Row, 0, len(reports))
	for _, r := range reports {
		row := report.Row{
			Filename:   r.Filename,
			Extraction: string(r.Extraction.Status),
			Error:      r.Extraction.Error,
		}
		if r.Outputs != nil {
			row.Category = string(r.Outputs.Category)
			row.Score = r.Outputs.Score
			row.Language = r.Outputs.Language
			row.Summary = r.Outputs.Summary
			row.Suggestions = r.Outputs.Suggestions
		}
		rows = append(rows, row)
	}
	return rows
}

func runAnalyze(ctx context.Context, out io.Writer, ex *extract.Extractor, an *analysis.Analyzer, paths []string, xlsxPath string) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	reports := make([]fileReport, 0, len(paths))
	for _, path := range paths {
		rep := analyzeFile(ctx, ex, an, path)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		reports = append(reports, rep)
	}

	if xlsxPath == "" {
		return nil
	}
	f, err := os.Create(xlsxPath)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return report.WriteXLSX(f, reportRows(reports))
}

func analyzeCmd() *cobra.Command {
	var classifier string
	var pdfEngine string
	var keywords string
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Extract and analyze resume files (pdf, docx, jpg, jpeg, png)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if cmd.Flags().Changed("classifier") {
				cfg.Classifier = classifier
			}
			if cmd.Flags().Changed("pdf-engine") {
				cfg.PDFEngine = pdfEngine
			}
			if cmd.Flags().Changed("keywords") {
				cfg.KeywordsFile = keywords
			}

			ex, an, err := buildPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), ex, an, args, xlsxPath)
		},
	}
	cmd.Flags().StringVar(&classifier, "classifier", "rules", "category predictor: rules|gemini")
	cmd.Flags().StringVar(&pdfEngine, "pdf-engine", "ledongthuc", "PDF text engine: ledongthuc|rsc")
	cmd.Flags().StringVar(&keywords, "keywords", "", "YAML keyword table overriding the built-in one")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write an XLSX report to this path")
	return cmd
}
