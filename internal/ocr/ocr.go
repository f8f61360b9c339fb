// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr detects text in images. The Vision engine calls the Google
// Cloud Vision API; the Tesseract engine runs locally when the binary is
// built with the tesseract tag.
package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/quizdoc/internal/httputil"
	"github.com/pdiddy/quizdoc/pkg/types"
)

// Engine returns all text detected in an image, or "" when the image has none.
type Engine interface {
	DetectText(ctx context.Context, content []byte) (string, error)
}

// ErrTesseractNotEnabled is returned when the tesseract engine is selected
// in a binary built without the tesseract tag.
var ErrTesseractNotEnabled = errors.New("tesseract engine not enabled (rebuild with -tags tesseract)")

// ServiceError is a failure reported by the text-detection service itself.
type ServiceError struct {
	// StatusCode is the HTTP status, or 0 when the error arrived inside a
	// successful response.
	StatusCode int

	// Code is the service's own error code (google.rpc.Code for Vision).
	Code int

	Message string
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ocr service error (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ocr service error: %s", e.Message)
}

// Retryable reports whether the failure looks transient.
func (e *ServiceError) Retryable() bool {
	if e.StatusCode != 0 {
		return httputil.RetryableStatus(e.StatusCode)
	}
	switch e.Code {
	case rpcDeadlineExceeded, rpcResourceExhausted, rpcInternal, rpcUnavailable:
		return true
	}
	return false
}

// google.rpc.Code values that indicate transient failures.
const (
	rpcDeadlineExceeded  = 4
	rpcResourceExhausted = 8
	rpcInternal          = 13
	rpcUnavailable       = 14
)

// New builds the engine selected by cfg.Engine. An empty engine means Vision.
func New(ctx context.Context, cfg types.OCRConfig) (Engine, error) {
	switch cfg.Engine {
	case "", types.EngineVision:
		e, err := NewVisionEngine(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return e, nil
	case types.EngineTesseract:
		e, err := NewTesseractEngine(cfg)
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unknown ocr engine %q (want vision or tesseract)", cfg.Engine)
	}
}
