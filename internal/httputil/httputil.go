// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the remote adapters.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransportError reports a request that never produced an HTTP response:
// DNS failures, refused connections, timeouts, cancelled contexts.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sending request to %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Retryable reports true; a transport failure says nothing about the input.
func (e *TransportError) Retryable() bool { return true }

// RetryableStatus reports whether an HTTP status signals a transient
// condition (rate limiting or a server-side fault).
func RetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// PostJSON marshals body, POSTs it to endpoint once, and returns the raw response
// body with its status code. A non-2xx status is not an error here; callers
// decide how to interpret it. Failures before a response arrives are returned
// as *TransportError. logPrefix names the events (e.g. "format.http").
func PostJSON(ctx context.Context, client *http.Client, endpoint string, body any, logger *slog.Logger, logPrefix string) ([]byte, int, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	reqID := uuid.NewString()
	start := time.Now()

	bs, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bs))
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, 0, fmt.Errorf("building request for %s: %w", redactURL(endpoint), err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug(logPrefix+".request", "req_id", reqID, "content_length", len(bs))

	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		logger.Warn(logPrefix+".send_error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, 0, &TransportError{URL: redact(req), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{URL: redact(req), Err: fmt.Errorf("reading response: %w", err)}
	}

	logger.Debug(logPrefix+".response", "req_id", reqID, "status", resp.StatusCode,
		"bytes", len(raw), "elapsed_ms", time.Since(start).Milliseconds())

	return raw, resp.StatusCode, nil
}

// redact drops the query string so API keys passed as parameters never
// reach logs or error messages.
func redact(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}

// redactURL is redact for endpoints that did not parse.
func redactURL(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		return raw[:i]
	}
	return raw
}
