// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs images through OCR, question extraction and
// formatting, one at a time, and writes a single document at the end.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/quizdoc/internal/docx"
	"github.com/pdiddy/quizdoc/internal/format"
	"github.com/pdiddy/quizdoc/internal/ocr"
	"github.com/pdiddy/quizdoc/internal/qa"
	"github.com/pdiddy/quizdoc/pkg/types"
)

// Pipeline holds the collaborators of a run.
type Pipeline struct {
	OCR       ocr.Engine
	Formatter format.Backend

	// Document is the output path, replaced at the end of every run.
	Document string

	// Out receives per-image progress lines. Nil discards them.
	Out io.Writer

	// Verbose also prints the OCR text and formatted text of each image.
	Verbose bool

	now func() time.Time
}

// Run processes images in order. A failing image is recorded in the report
// and skipped; it never stops the run. The document is written once after
// the last image, and only a failure to write it is returned as an error.
func (p *Pipeline) Run(ctx context.Context, images []types.Image) (*types.RunReport, error) {
	now := p.now
	if now == nil {
		now = time.Now
	}
	w := p.Out
	if w == nil {
		w = io.Discard
	}

	report := &types.RunReport{
		ID:        uuid.NewString(),
		StartedAt: now(),
		Document:  p.Document,
	}

	var paragraphs []string
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := p.processImage(ctx, img, w)
		report.Results = append(report.Results, res)

		if res.Status == types.StatusFailed {
			fmt.Fprintf(w, "failed  %s: %s\n", res.Name, res.Error)
			continue
		}
		fmt.Fprintf(w, "formatted %s (%d records)\n", res.Name, len(res.Records))
		paragraphs = append(paragraphs, Paragraph(res.Name, res.FinalText))
	}

	if err := docx.Write(p.Document, paragraphs); err != nil {
		return report, fmt.Errorf("writing document: %w", err)
	}
	report.FinishedAt = now()

	fmt.Fprintf(w, "\nformatted: %d, failed: %d, document: %s\n",
		report.Formatted(), report.Failed(), p.Document)

	return report, nil
}

// Paragraph labels final text with the image it came from.
func Paragraph(name, final string) string {
	return fmt.Sprintf("Formatted text from %s:\n%s", name, final)
}

func (p *Pipeline) processImage(ctx context.Context, img types.Image, w io.Writer) types.ImageResult {
	res := types.ImageResult{Name: img.Name, Status: types.StatusFailed}

	content, err := loadImage(img)
	if err != nil {
		return fail(res, types.KindInput, err)
	}

	text, err := p.OCR.DetectText(ctx, content)
	if err != nil {
		return fail(res, types.KindOCR, err)
	}
	res.OCRText = text
	if p.Verbose {
		fmt.Fprintf(w, "extracted text from %s:\n%s\n", img.Name, text)
	}

	res.Block, res.Records = qa.Extract(text)

	final, err := p.Formatter.Format(ctx, res.Block)
	if err != nil {
		return fail(res, types.KindFormat, err)
	}
	res.FinalText = final
	if p.Verbose {
		fmt.Fprintf(w, "formatted text from %s:\n%s\n", img.Name, final)
	}

	res.Status = types.StatusFormatted
	return res
}

func fail(res types.ImageResult, kind types.ErrorKind, err error) types.ImageResult {
	res.Status = types.StatusFailed
	res.ErrorKind = kind
	res.Error = err.Error()
	res.Retryable = Retryable(err)
	return res
}

func loadImage(img types.Image) ([]byte, error) {
	if !Supported(img.Name) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, img.Name)
	}
	if img.Content != nil {
		return img.Content, nil
	}
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return data, nil
}

// Retryable reports whether err, or an error it wraps, is marked transient.
// Errors without a Retryable method are permanent.
func Retryable(err error) bool {
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}
