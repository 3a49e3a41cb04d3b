// Package scanned extracts text from scanned PDFs by rasterising each
// page and running it through an OCR engine.
package scanned

import (
	"context"
	"fmt"
	"strings"

	"github.com/claridad-labs/claridad/internal/core/ports/driven"
	"github.com/claridad-labs/claridad/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// DefaultDPI is the rasterisation resolution for OCR.
const DefaultDPI = 300

// MinConfidence is the minimum OCR confidence for a span to be kept.
const MinConfidence = 0.8

// Extractor rasterises pages and recognises them with OCR.
type Extractor struct {
	reader driven.PDFReader
	engine driven.OCREngine
	dpi    int
}

// Option configures the extractor.
type Option func(*Extractor)

// WithDPI overrides the rasterisation resolution.
func WithDPI(dpi int) Option {
	return func(e *Extractor) {
		if dpi > 0 {
			e.dpi = dpi
		}
	}
}

// New creates an OCR extractor from a PDF reader and an OCR engine.
func New(reader driven.PDFReader, engine driven.OCREngine, opts ...Option) *Extractor {
	e := &Extractor{
		reader: reader,
		engine: engine,
		dpi:    DefaultDPI,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name identifies the strategy.
func (e *Extractor) Name() string { return "ocr" }

// Extract rasterises every page, recognises it and keeps spans with
// confidence >= MinConfidence. Spans are newline-joined per page and
// pages newline-joined into the result. An OCR failure on any page
// aborts the extraction with an error naming the page; per-page
// failures are never swallowed.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	images, err := e.reader.PageImages(ctx, path, e.dpi)
	if err != nil {
		return "", err
	}

	pages := make([]string, 0, len(images))
	for i, img := range images {
		logger.Debug("OCR page %d/%d", i+1, len(images))

		spans, err := e.engine.Recognise(ctx, img)
		if err != nil {
			return "", fmt.Errorf("ocr page %d: %w", i, err)
		}

		kept := make([]string, 0, len(spans))
		for _, span := range spans {
			if span.Confidence >= MinConfidence {
				kept = append(kept, span.Text)
			}
		}
		pages = append(pages, strings.Join(kept, "\n"))
	}

	return strings.Join(pages, "\n"), nil
}
