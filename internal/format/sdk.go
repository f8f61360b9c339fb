// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/pdiddy/quizdoc/internal/httputil"
	"github.com/pdiddy/quizdoc/pkg/types"
)

// SDKBackend calls the model through the Go generative AI client. Every
// Format call sends at most one HTTP request: retries scheduled by the
// client library are refused by the transport and the first response wins.
type SDKBackend struct {
	client *genai.Client
	model  string
}

// NewSDKBackend builds a client authenticated with cfg.APIKey. cfg.Endpoint
// is not used; pass option.WithEndpoint to override it. The HTTP client is
// always the single-attempt one, so opts cannot replace it.
func NewSDKBackend(ctx context.Context, cfg types.FormatterConfig, opts ...option.ClientOption) (*SDKBackend, error) {
	hc := &http.Client{Transport: &singleAttempt{base: http.DefaultTransport, apiKey: cfg.APIKey}}

	all := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	all = append(all, option.WithHTTPClient(hc))
	cl, err := genai.NewClient(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = types.DefaultModel
	}
	return &SDKBackend{client: cl, model: model}, nil
}

// Close releases the underlying client.
func (b *SDKBackend) Close() error {
	return b.client.Close()
}

// Format sends the prompt and joins the text parts of the first candidate.
func (b *SDKBackend) Format(ctx context.Context, block string) (string, error) {
	prompt, err := renderPrompt(block)
	if err != nil {
		return "", err
	}

	a := &attempt{}
	m := b.client.GenerativeModel(b.model)
	resp, err := m.GenerateContent(context.WithValue(ctx, attemptKey{}, a), genai.Text(prompt))
	if err != nil {
		return "", a.failure(err)
	}
	return candidateText(resp), nil
}

type attemptKey struct{}

// attempt is the one HTTP exchange a Format call is allowed.
type attempt struct {
	mu     sync.Mutex
	sent   bool
	url    string
	status int
	body   string
	err    error
}

// failure reports what the single request returned, ignoring whatever the
// client library made of a refused retry.
func (a *attempt) failure(err error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch {
	case a.status != 0:
		return &ServiceError{StatusCode: a.status, Body: a.body}
	case a.err != nil:
		return &httputil.TransportError{URL: a.url, Err: a.err}
	}
	return mapSDKError(err)
}

var errRetryRefused = errors.New("format: retry refused, one request per call")

// singleAttempt passes the first request of each attempt through to base,
// keeps the status and body of a non-200 response, and refuses the rest.
// Requests outside a Format call pass through untracked.
type singleAttempt struct {
	base   http.RoundTripper
	apiKey string
}

func (t *singleAttempt) RoundTrip(req *http.Request) (*http.Response, error) {
	a, _ := req.Context().Value(attemptKey{}).(*attempt)
	if a != nil {
		a.mu.Lock()
		sent := a.sent
		a.sent = true
		a.mu.Unlock()
		if sent {
			if req.Body != nil {
				req.Body.Close()
			}
			return nil, errRetryRefused
		}
	}

	req = req.Clone(req.Context())
	if t.apiKey != "" {
		req.Header.Set("x-goog-api-key", t.apiKey)
	}

	resp, err := t.base.RoundTrip(req)
	if a == nil {
		return resp, err
	}

	u := *req.URL
	u.RawQuery = ""
	if err != nil {
		a.mu.Lock()
		a.url, a.err = u.String(), err
		a.mu.Unlock()
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		a.mu.Lock()
		a.url, a.err = u.String(), fmt.Errorf("reading response: %w", err)
		a.mu.Unlock()
		return nil, err
	}
	a.mu.Lock()
	a.url, a.status, a.body = u.String(), resp.StatusCode, string(raw)
	a.mu.Unlock()
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	return resp, nil
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}

// mapSDKError turns API errors carrying an HTTP status into *ServiceError.
func mapSDKError(err error) error {
	var ae *apierror.APIError
	if errors.As(err, &ae) && ae.HTTPCode() > 0 {
		return &ServiceError{StatusCode: ae.HTTPCode(), Body: ae.Error()}
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &ServiceError{StatusCode: gerr.Code, Body: gerr.Message}
	}
	return fmt.Errorf("generating content: %w", err)
}
