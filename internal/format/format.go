// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format sends extracted question blocks to a generative-text model
// for cleanup. Every call is a single request: no history, no streaming and
// no retry.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"

	"github.com/pdiddy/quizdoc/internal/httputil"
	"github.com/pdiddy/quizdoc/pkg/types"
)

// Backend abstracts the generative-text API so tests can supply a fake.
type Backend interface {
	Format(ctx context.Context, block string) (string, error)
}

// ErrMissingAPIKey is returned when a backend is built without a key.
var ErrMissingAPIKey = errors.New("formatter API key is not set (GEMINI_API_KEY or formatter.api_key)")

// ServiceError is a non-200 answer from the generative-text endpoint.
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("format service error: %d - %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status signals a transient condition.
func (e *ServiceError) Retryable() bool {
	return httputil.RetryableStatus(e.StatusCode)
}

var promptTmpl = template.Must(template.New("format").Parse(
	"Please organize and format the following text for better readability:\n\n{{.Text}}"))

// renderPrompt wraps block in the fixed instruction.
func renderPrompt(block string) (string, error) {
	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, struct{ Text string }{block}); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}

// New builds the backend selected by cfg.Backend. An empty backend means rest.
func New(ctx context.Context, cfg types.FormatterConfig) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	switch cfg.Backend {
	case "", types.FormatterREST:
		return NewGeminiBackend(cfg), nil
	case types.FormatterSDK:
		b, err := NewSDKBackend(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown formatter backend %q (want rest or sdk)", cfg.Backend)
	}
}
