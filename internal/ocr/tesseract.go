// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build tesseract

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/pdiddy/quizdoc/pkg/types"
)

// TesseractEngine runs OCR locally through libtesseract.
type TesseractEngine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine builds an engine for cfg.Languages (tesseract's default
// language when empty).
func NewTesseractEngine(cfg types.OCRConfig) (*TesseractEngine, error) {
	return &TesseractEngine{languages: cfg.Languages, clientFactory: gosseract.NewClient}, nil
}

// DetectText recognizes content with a fresh client per image.
func (e *TesseractEngine) DetectText(ctx context.Context, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := e.clientFactory()
	defer c.Close()

	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("setting languages: %w", err)
		}
	}
	if err := c.SetImageFromBytes(content); err != nil {
		return "", &ServiceError{Message: fmt.Sprintf("loading image: %v", err)}
	}

	text, err := c.Text()
	if err != nil {
		return "", &ServiceError{Message: err.Error()}
	}
	return strings.TrimSpace(text), nil
}
