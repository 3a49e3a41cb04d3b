// Package selectable extracts text from PDFs that carry an embedded
// text layer. It is the preferred, cheapest extraction strategy.
package selectable

import (
	"context"
	"strings"

	"github.com/claridad-labs/claridad/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor reads the embedded text of each page and joins pages with
// newlines.
type Extractor struct {
	reader driven.PDFReader
}

// New creates a selectable-text extractor on top of a PDF reader.
func New(reader driven.PDFReader) *Extractor {
	return &Extractor{reader: reader}
}

// Name identifies the strategy.
func (e *Extractor) Name() string { return "selectable" }

// Extract returns the trimmed embedded text of every page, newline
// separated. A PDF without a text layer yields an empty string, which
// signals the caller to fall back to OCR.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	pages, err := e.reader.PageTexts(ctx, path)
	if err != nil {
		return "", err
	}

	trimmed := make([]string, 0, len(pages))
	for _, page := range pages {
		trimmed = append(trimmed, strings.TrimSpace(page))
	}

	return strings.Join(trimmed, "\n"), nil
}
