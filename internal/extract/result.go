package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoRecognizer      = errors.New("no ocr engine configured")
)

type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatImage   Format = "image"
	FormatUnknown Format = "unknown"
)

// DetectFormat maps a filename to its format tag by extension, ignoring case.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".jpg", ".jpeg", ".png":
		return FormatImage
	default:
		return FormatUnknown
	}
}

func imageMime(filename string) string {
	if strings.ToLower(filepath.Ext(filename)) == ".png" {
		return "image/png"
	}
	return "image/jpeg"
}

type Status string

const (
	StatusSuccess     Status = "success"
	StatusFailure     Status = "failure"
	StatusUnsupported Status = "unsupported"
)

// Result is the outcome of one extraction. Text is only meaningful when
// Status is StatusSuccess; Err is only set when Status is StatusFailure.
type Result struct {
	Format Format
	Status Status
	Text   string
	Pages  int
	Err    error
}

func Success(format Format, text string) Result {
	return Result{Format: format, Status: StatusSuccess, Text: text}
}

func Failure(format Format, err error) Result {
	return Result{Format: format, Status: StatusFailure, Err: err}
}

func Unsupported() Result {
	return Result{Format: FormatUnknown, Status: StatusUnsupported, Err: ErrUnsupportedFormat}
}

func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Message is what a caller shows for a non-successful result.
func (r Result) Message() string {
	switch r.Status {
	case StatusSuccess:
		return ""
	case StatusUnsupported:
		return "unsupported file type"
	default:
		return fmt.Sprintf("text extraction error: %v", r.Err)
	}
}
