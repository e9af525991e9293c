package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, []Row{
		{
			Filename:    "cv.docx",
			Extraction:  "success",
			Category:    "Project Manager",
			Score:       50,
			Summary:     "My experience includes project leadership",
			Suggestions: []string{"Add more details to strengthen your resume."},
		},
		{Filename: "scan.png", Extraction: "failure", Error: "text extraction error: no ocr engine configured"},
	})
	if err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Filename" || rows[0][7] != "Error" {
		t.Fatalf("unexpected header %q", rows[0])
	}
	if rows[1][2] != "Project Manager" || rows[1][3] != "50" {
		t.Fatalf("unexpected first row %q", rows[1])
	}
	if rows[2][1] != "failure" || rows[2][7] == "" {
		t.Fatalf("unexpected second row %q", rows[2])
	}
}
