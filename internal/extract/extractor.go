// Package extract turns uploaded resume files into plain text.
//
// Dispatch is by file extension. Every call returns a Result whose Status
// tells success, failure and unsupported input apart; extraction errors are
// never folded into the text.
package extract

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Recognizer transcribes the text of an image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, mimeType string) (string, error)
}

type Document struct {
	Filename string
	Data     []byte
}

// ReadDocument reads r once into a Document.
func ReadDocument(filename string, r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", filename, err)
	}
	return Document{Filename: filename, Data: data}, nil
}

type Options struct {
	PDFEngine PDFEngine
	// PageSeparator is written between consecutive PDF pages.
	PageSeparator string
	Recognizer    Recognizer
}

type Extractor struct {
	pdf           PDFEngine
	pageSeparator string
	recognizer    Recognizer
}

func New(opts Options) *Extractor {
	engine := opts.PDFEngine
	if engine == nil {
		engine = LedongthucPDF{}
	}
	return &Extractor{
		pdf:           engine,
		pageSeparator: opts.PageSeparator,
		recognizer:    opts.Recognizer,
	}
}

// Extract runs exactly one extraction attempt for doc.
func (e *Extractor) Extract(ctx context.Context, doc Document) (res Result) {
	format := DetectFormat(doc.Filename)
	if format == FormatUnknown {
		return Unsupported()
	}

	defer func() {
		if r := recover(); r != nil {
			res = Failure(format, fmt.Errorf("%s parser panic: %v", format, r))
		}
	}()

	switch format {
	case FormatPDF:
		pages, err := e.pdf.Pages(doc.Data)
		if err != nil {
			return Failure(format, err)
		}
		res = Success(format, strings.Join(pages, e.pageSeparator))
		res.Pages = len(pages)
		return res
	case FormatDOCX:
		text, err := extractDOCX(doc.Data)
		if err != nil {
			return Failure(format, err)
		}
		return Success(format, text)
	default:
		if e.recognizer == nil {
			return Failure(format, ErrNoRecognizer)
		}
		text, err := e.recognizer.Recognize(ctx, doc.Data, imageMime(doc.Filename))
		if err != nil {
			return Failure(format, fmt.Errorf("ocr: %w", err))
		}
		return Success(format, text)
	}
}
