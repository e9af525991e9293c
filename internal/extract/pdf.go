package extract

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	rpdf "rsc.io/pdf"
)

// PDFEngine turns PDF bytes into the plain text of each page, in page order.
type PDFEngine interface {
	Name() string
	Pages(data []byte) ([]string, error)
}

// PDFEngineByName returns the engine registered under name. An empty name
// selects the ledongthuc engine.
func PDFEngineByName(name string) (PDFEngine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ledongthuc":
		return LedongthucPDF{}, nil
	case "rsc":
		return RSCPDF{}, nil
	default:
		return nil, fmt.Errorf("unknown pdf engine %q", name)
	}
}

// LedongthucPDF lays out each page from the positioned glyphs of its
// content stream.
type LedongthucPDF struct{}

func (LedongthucPDF) Name() string { return "ledongthuc" }

func (LedongthucPDF) Pages(data []byte) ([]string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	numPages := pdfReader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		glyphs := make([]glyph, 0, len(content.Text))
		for _, t := range content.Text {
			glyphs = append(glyphs, glyph{x: t.X, y: t.Y, w: t.W, size: t.FontSize, s: t.S})
		}
		pages = append(pages, layoutText(glyphs))
	}
	return pages, nil
}

// RSCPDF reads pages with rsc.io/pdf. The library drops space glyphs, so word
// breaks are recovered from horizontal gaps.
type RSCPDF struct{}

func (RSCPDF) Name() string { return "rsc" }

func (RSCPDF) Pages(data []byte) ([]string, error) {
	doc, err := rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}
	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		glyphs := make([]glyph, 0, len(content.Text))
		for _, t := range content.Text {
			glyphs = append(glyphs, glyph{x: t.X, y: t.Y, w: t.W, size: t.FontSize, s: t.S})
		}
		pages = append(pages, layoutText(glyphs))
	}
	return pages, nil
}

type glyph struct {
	x, y, w, size float64
	s             string
}

// layoutText rebuilds text lines from glyphs in content stream order. A
// baseline move starts a new line and a horizontal gap wider than a fraction
// of the font size becomes a space. Every line, the last included, ends
// with a newline.
func layoutText(glyphs []glyph) string {
	var b strings.Builder
	var prev glyph
	started := false
	for _, g := range glyphs {
		if g.s == "" {
			continue
		}
		if started {
			switch {
			case math.Abs(g.y-prev.y) > scaled(prev.size, 0.5):
				b.WriteByte('\n')
			case g.s != " " && prev.s != " " && g.x > prev.x+prev.w+scaled(prev.size, 0.15):
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.s)
		prev = g
		started = true
	}
	if started {
		b.WriteByte('\n')
	}
	return b.String()
}

func scaled(size, factor float64) float64 {
	if size <= 0 {
		return 1
	}
	return size * factor
}
