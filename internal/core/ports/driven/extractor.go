package driven

import (
	"context"
	"image"
)

// PDFReader gives page-level access to a PDF file: the embedded text of
// each page, and rasterised page images for OCR.
type PDFReader interface {
	// PageTexts returns the embedded text of each page in order.
	// PDFs without a text layer yield empty strings.
	PageTexts(ctx context.Context, path string) ([]string, error)

	// PageImages rasterises each page at the given DPI, in order.
	PageImages(ctx context.Context, path string, dpi int) ([]image.Image, error)
}

// OCRSpan is one recognised text span with its confidence in [0,1].
type OCRSpan struct {
	Text       string
	Confidence float64
}

// OCREngine recognises text in a page image.
type OCREngine interface {
	// Recognise returns the detected text spans for the image.
	Recognise(ctx context.Context, img image.Image) ([]OCRSpan, error)
}

// TextExtractor converts a PDF into a single plain-text string.
// Implementations are extraction strategies: embedded-text readout for
// digital PDFs, OCR for scanned ones.
type TextExtractor interface {
	// Name identifies the strategy ("selectable", "ocr").
	Name() string

	// Extract returns the document's full text.
	Extract(ctx context.Context, path string) (string, error)
}
