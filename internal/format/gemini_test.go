// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quizdoc/internal/httputil"
	"github.com/pdiddy/quizdoc/pkg/types"
)

// newTestBackend points a REST backend at handler and counts calls.
func newTestBackend(t *testing.T, handler http.HandlerFunc) (*GeminiBackend, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	b := NewGeminiBackend(types.FormatterConfig{
		APIKey:   "test-key",
		Model:    "test-model",
		Endpoint: ts.URL + "/v1beta",
	})
	b.Client = ts.Client()
	b.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return b, &calls
}

func TestGeminiFormat_RequestShape(t *testing.T) {
	b, calls := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		require.Len(t, req.Contents[0].Parts, 1)
		assert.Equal(t,
			"Please organize and format the following text for better readability:\n\n1. Q?\n\na) \n\n",
			req.Contents[0].Parts[0].Text)

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  1. Q?\n"}],"role":"model"}}]}`))
	})

	got, err := b.Format(context.Background(), "1. Q?\n\na) \n\n")
	require.NoError(t, err)
	assert.Equal(t, "1. Q?", got)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestGeminiFormat_Envelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"joins parts", `{"candidates":[{"content":{"parts":[{"text":"one "},{"text":"two"}]}}]}`, "one two"},
		{"first candidate only", `{"candidates":[{"content":{"parts":[{"text":"first"}]}},{"content":{"parts":[{"text":"second"}]}}]}`, "first"},
		{"no candidates", `{"promptFeedback":{"blockReason":"SAFETY"}}`, ""},
		{"contents envelope is not read", `{"contents":[{"parts":[{"text":"ignored"}]}]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			})
			got, err := b.Format(context.Background(), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGeminiFormat_Non200SingleAttempt(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusCreated} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			b, calls := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				w.Write([]byte(`{"error":{"message":"nope"}}`))
			})

			_, err := b.Format(context.Background(), "block")
			require.Error(t, err)

			var se *ServiceError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, status, se.StatusCode)
			assert.JSONEq(t, `{"error":{"message":"nope"}}`, se.Body)
			assert.Equal(t, httputil.RetryableStatus(status), se.Retryable())
			assert.Equal(t, int32(1), atomic.LoadInt32(calls), "must never retry")
		})
	}
}

func TestGeminiFormat_MalformedJSON(t *testing.T) {
	b, _ := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := b.Format(context.Background(), "block")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding format response")
}

func TestNewGeminiBackendDefaults(t *testing.T) {
	b := NewGeminiBackend(types.FormatterConfig{APIKey: "k"})
	assert.Equal(t, types.DefaultModel, b.Model)
	assert.Equal(t, types.DefaultEndpoint, b.Endpoint)
}
