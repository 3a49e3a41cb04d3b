// Package tesseract provides an OCR engine adapter that shells out to
// the tesseract binary. TSV output carries per-word confidences, which
// are aggregated into per-line spans.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"

	"github.com/claridad-labs/claridad/internal/core/domain"
	"github.com/claridad-labs/claridad/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.OCREngine = (*Engine)(nil)

// DefaultLanguage is the tesseract language model used when none is
// configured. Regulatory documents in scope are Spanish.
const DefaultLanguage = "spa"

// Engine runs tesseract over rasterised pages.
type Engine struct {
	binary   string
	language string
}

// Option configures the engine.
type Option func(*Engine)

// WithBinary overrides the tesseract executable path.
func WithBinary(path string) Option {
	return func(e *Engine) {
		if path != "" {
			e.binary = path
		}
	}
}

// WithLanguage sets the recognition language.
func WithLanguage(lang string) Option {
	return func(e *Engine) {
		if lang != "" {
			e.language = lang
		}
	}
}

// NewEngine creates a tesseract-backed OCR engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		binary:   "tesseract",
		language: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recognise runs tesseract on the image and returns one span per
// detected line, with the line confidence averaged over its words and
// scaled to [0,1].
func (e *Engine) Recognise(ctx context.Context, img image.Image) ([]driven.OCRSpan, error) {
	var input bytes.Buffer
	if err := png.Encode(&input, img); err != nil {
		return nil, fmt.Errorf("encode page image: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.binary, "stdin", "stdout", "-l", e.language, "tsv")
	cmd.Stdin = &input

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("tesseract: %w: %v (%s)",
			domain.ErrExtractionFailed, err, strings.TrimSpace(stderr.String()))
	}

	return parseTSV(stdout.String()), nil
}

// tsvWord is one word row of tesseract's TSV output.
type tsvWord struct {
	lineKey    string
	text       string
	confidence float64
}

// parseTSV extracts word rows from tesseract TSV output and groups them
// into lines. Column layout:
//
//	level page_num block_num par_num line_num word_num left top width height conf text
//
// Word rows have level 5 and a non-negative confidence.
func parseTSV(output string) []driven.OCRSpan {
	var words []tsvWord

	for i, line := range strings.Split(output, "\n") {
		if i == 0 || strings.TrimSpace(line) == "" {
			// Header row or trailing newline.
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 12 {
			continue
		}
		if fields[0] != "5" {
			continue
		}
		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		text := strings.TrimSpace(fields[11])
		if text == "" {
			continue
		}
		words = append(words, tsvWord{
			// block_num/par_num/line_num identify the line.
			lineKey:    fields[2] + ":" + fields[3] + ":" + fields[4],
			text:       text,
			confidence: conf / 100,
		})
	}

	return groupLines(words)
}

// groupLines joins consecutive words sharing a line key into one span,
// averaging the word confidences.
func groupLines(words []tsvWord) []driven.OCRSpan {
	var spans []driven.OCRSpan
	var texts []string
	var confSum float64
	currentKey := ""

	flush := func() {
		if len(texts) == 0 {
			return
		}
		spans = append(spans, driven.OCRSpan{
			Text:       strings.Join(texts, " "),
			Confidence: confSum / float64(len(texts)),
		})
		texts = nil
		confSum = 0
	}

	for _, w := range words {
		if w.lineKey != currentKey {
			flush()
			currentKey = w.lineKey
		}
		texts = append(texts, w.text)
		confSum += w.confidence
	}
	flush()

	return spans
}
