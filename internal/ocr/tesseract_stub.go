// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !tesseract

package ocr

import (
	"context"

	"github.com/pdiddy/quizdoc/pkg/types"
)

// TesseractEngine is unavailable in this build.
type TesseractEngine struct{}

// NewTesseractEngine always fails with ErrTesseractNotEnabled.
func NewTesseractEngine(types.OCRConfig) (*TesseractEngine, error) {
	return nil, ErrTesseractNotEnabled
}

func (*TesseractEngine) DetectText(context.Context, []byte) (string, error) {
	return "", ErrTesseractNotEnabled
}
