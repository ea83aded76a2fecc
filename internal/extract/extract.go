// Package extract converts uploaded resume documents into plain text.
package extract

import (
	"strings"

	apperrors "github.com/ziplai/ziplai/internal/errors"
)

// Supported upload MIME types.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// SupportedMime reports whether mimeType can be extracted.
func SupportedMime(mimeType string) bool {
	return mimeType == MimePDF || mimeType == MimeDOCX
}

// Extractor converts document bytes into normalized text.
type Extractor interface {
	Extract(data []byte, mimeType string) (string, error)
}

type extractor struct{}

// New creates a document text extractor.
func New() Extractor {
	return extractor{}
}

// Extract dispatches on MIME type. Output is trimmed; a document that yields
// no text at all is an error, not an empty success.
func (extractor) Extract(data []byte, mimeType string) (string, error) {
	var (
		text string
		err  error
	)
	switch mimeType {
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	default:
		return "", apperrors.ErrUnsupportedFormat
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.ErrEmptyDocument
	}
	return text, nil
}
