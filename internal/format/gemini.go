// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/quizdoc/internal/httputil"
	"github.com/pdiddy/quizdoc/pkg/types"
)

// GeminiBackend calls the generateContent REST method directly.
type GeminiBackend struct {
	APIKey   string
	Model    string
	Endpoint string
	Client   *http.Client
	Logger   *slog.Logger
}

// NewGeminiBackend builds a REST backend from cfg, filling in default model
// and endpoint.
func NewGeminiBackend(cfg types.FormatterConfig) *GeminiBackend {
	model := cfg.Model
	if model == "" {
		model = types.DefaultModel
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = types.DefaultEndpoint
	}
	return &GeminiBackend{
		APIKey:   cfg.APIKey,
		Model:    model,
		Endpoint: endpoint,
		Client:   &http.Client{},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// text joins the parts of the first candidate. No candidates yields "".
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}

// Format sends block once. Any status other than 200 is a *ServiceError.
func (b *GeminiBackend) Format(ctx context.Context, block string) (string, error) {
	prompt, err := renderPrompt(block)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(b.Endpoint, "/"), b.Model, url.QueryEscape(b.APIKey))

	body := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}

	raw, status, err := httputil.PostJSON(ctx, b.Client, endpoint, body, b.Logger, "format.http")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &ServiceError{StatusCode: status, Body: string(raw)}
	}

	var resp geminiResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decoding format response: %w", err)
	}
	return resp.text(), nil
}
