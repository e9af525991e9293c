// Package report writes batch analysis results to a spreadsheet.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

var header = []interface{}{"Filename", "Extraction", "Category", "Score", "Language", "Summary", "Suggestions", "Error"}

type Row struct {
	Filename    string
	Extraction  string
	Category    string
	Score       int
	Language    string
	Summary     string
	Suggestions []string
	Error       string
}

// WriteXLSX writes one header row followed by one row per analyzed file.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.Filename,
			r.Extraction,
			r.Category,
			r.Score,
			r.Language,
			r.Summary,
			strings.Join(r.Suggestions, "\n"),
			r.Error,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
