// Package fitz provides a PDF reader adapter backed by go-fitz (MuPDF).
// It serves both extraction strategies: embedded text for digital PDFs
// and rasterised page images for scanned ones.
package fitz

import (
	"context"
	"fmt"
	"image"

	gofitz "github.com/gen2brain/go-fitz"

	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.PDFReader = (*Reader)(nil)

// Reader reads PDF pages through MuPDF.
type Reader struct{}

// NewReader creates a new PDF reader.
func NewReader() *Reader {
	return &Reader{}
}

// PageTexts returns the embedded text of each page in order.
func (r *Reader) PageTexts(ctx context.Context, path string) ([]string, error) {
	doc, err := gofitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", path, domain.ErrExtractionFailed, err)
	}
	defer doc.Close()

	texts := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w: %v", i, domain.ErrExtractionFailed, err)
		}
		texts = append(texts, text)
	}

	return texts, nil
}

// PageImages rasterises each page at the given DPI, in order.
func (r *Reader) PageImages(ctx context.Context, path string, dpi int) ([]image.Image, error) {
	doc, err := gofitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %v", path, domain.ErrExtractionFailed, err)
	}
	defer doc.Close()

	images := make([]image.Image, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(i, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("page %d: %w: %v", i, domain.ErrExtractionFailed, err)
		}
		images = append(images, img)
	}

	return images, nil
}
