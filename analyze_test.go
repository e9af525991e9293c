package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/muhammadolammi/resumeworker/internal/analysis"
	"github.com/muhammadolammi/resumeworker/internal/extract"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func decodeReports(t *testing.T, r io.Reader) []fileReport {
	t.Helper()
	dec := json.NewDecoder(r)
	var reports []fileReport
	for {
		var rep fileReport
		err := dec.Decode(&rep)
		if errors.Is(err, io.EOF) {
			return reports
		}
		if err != nil {
			t.Fatalf("decode report: %v", err)
		}
		reports = append(reports, rep)
	}
}

func TestRunAnalyzeReportsEachFile(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "pm.docx", testDOCX(t, projectLine)),
		writeFile(t, dir, "notes.txt", []byte("hello")),
		filepath.Join(dir, "missing.pdf"),
	}
	xlsxPath := filepath.Join(dir, "report.xlsx")

	var out bytes.Buffer
	err := runAnalyze(context.Background(), &out, extract.New(extract.Options{}), analysis.NewAnalyzer(nil), paths, xlsxPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reports := decodeReports(t, &out)
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}

	pm := reports[0]
	if pm.Filename != "pm.docx" || pm.Extraction.Status != extract.StatusSuccess || pm.Extraction.Format != extract.FormatDOCX {
		t.Fatalf("unexpected docx report %+v", pm)
	}
	if pm.Outputs == nil {
		t.Fatalf("expected outputs for docx")
	}
	if pm.Outputs.Category != analysis.ProjectManager || pm.Outputs.Score != 50 {
		t.Fatalf("expected Project Manager/50, got %q/%d", pm.Outputs.Category, pm.Outputs.Score)
	}

	txt := reports[1]
	if txt.Extraction.Status != extract.StatusUnsupported || txt.Extraction.Error != "unsupported file type" || txt.Outputs != nil {
		t.Fatalf("unexpected txt report %+v", txt)
	}

	missing := reports[2]
	if missing.Extraction.Status != extract.StatusFailure || missing.Extraction.Error == "" || missing.Outputs != nil {
		t.Fatalf("unexpected missing file report %+v", missing)
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "pm.docx" || rows[1][2] != string(analysis.ProjectManager) {
		t.Fatalf("unexpected first row %q", rows[1])
	}
}

func TestRunAnalyzeWithoutXLSX(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pm.docx", testDOCX(t, projectLine))

	var out bytes.Buffer
	if err := runAnalyze(context.Background(), &out, extract.New(extract.Options{}), analysis.NewAnalyzer(nil), []string{path}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(decodeReports(t, &out)); got != 1 {
		t.Fatalf("expected 1 report, got %d", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no report file to be written, found %d entries", len(entries))
	}
}

func TestAnalyzeFileBlankDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "blank.docx", testDOCX(t, " "))

	rep := analyzeFile(context.Background(), extract.New(extract.Options{}), analysis.NewAnalyzer(nil), path)
	if rep.Extraction.Status != extract.StatusSuccess || rep.Extraction.Error != "no text extracted" || rep.Outputs != nil {
		t.Fatalf("unexpected report %+v", rep)
	}
}

func TestReportRows(t *testing.T) {
	rows := reportRows([]fileReport{
		{
			Filename:   "a.pdf",
			Extraction: extractionReport{Status: extract.StatusSuccess},
			Outputs: &analysis.Outputs{
				Summary:     "line",
				Suggestions: []string{"Resume looks good!"},
				Category:    analysis.SoftwareEngineer,
				Score:       42,
				Language:    "English",
			},
		},
		{
			Filename:   "b.txt",
			Extraction: extractionReport{Status: extract.StatusUnsupported, Error: "unsupported file type"},
		},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Category != string(analysis.SoftwareEngineer) || rows[0].Score != 42 || rows[0].Language != "English" || rows[0].Summary != "line" {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Extraction != "unsupported" || rows[1].Error != "unsupported file type" || rows[1].Category != "" {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
}
