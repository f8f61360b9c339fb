// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/pdiddy/quizdoc/internal/httputil"
	"github.com/pdiddy/quizdoc/pkg/types"
)

// newTestVision starts a fake images:annotate endpoint and returns an engine
// pointed at it along with a call counter.
func newTestVision(t *testing.T, handler func(w http.ResponseWriter, req map[string]any)) (*VisionEngine, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v1/images:annotate", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		handler(w, body)
	}))
	t.Cleanup(ts.Close)

	e, err := NewVisionEngine(context.Background(),
		types.OCRConfig{Endpoint: ts.URL + "/"},
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return e, &calls
}

func TestVisionDetectText_FirstAnnotation(t *testing.T) {
	img := []byte("\x89PNG fake image bytes")

	e, calls := newTestVision(t, func(w http.ResponseWriter, req map[string]any) {
		requests := req["requests"].([]any)
		require.Len(t, requests, 1)
		r := requests[0].(map[string]any)
		assert.Equal(t, base64.StdEncoding.EncodeToString(img), r["image"].(map[string]any)["content"])
		features := r["features"].([]any)
		assert.Equal(t, "TEXT_DETECTION", features[0].(map[string]any)["type"])

		w.Write([]byte(`{"responses":[{"textAnnotations":[
			{"description":"  1 (What is 2+2) some text a) 4\n"},
			{"description":"1"}
		]}]}`))
	})

	got, err := e.DetectText(context.Background(), img)
	require.NoError(t, err)
	assert.Equal(t, "1 (What is 2+2) some text a) 4", got)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestVisionDetectText_NoAnnotations(t *testing.T) {
	e, _ := newTestVision(t, func(w http.ResponseWriter, _ map[string]any) {
		w.Write([]byte(`{"responses":[{}]}`))
	})

	got, err := e.DetectText(context.Background(), []byte("blank"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVisionDetectText_ResponseError(t *testing.T) {
	e, calls := newTestVision(t, func(w http.ResponseWriter, _ map[string]any) {
		w.Write([]byte(`{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`))
	})

	_, err := e.DetectText(context.Background(), []byte("garbage"))
	require.Error(t, err)

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Bad image data.", se.Message)
	assert.Equal(t, 3, se.Code)
	assert.False(t, se.Retryable())
	assert.Equal(t, int32(1), atomic.LoadInt32(calls), "must not retry")
}

func TestVisionDetectText_HTTPError(t *testing.T) {
	e, calls := newTestVision(t, func(w http.ResponseWriter, _ map[string]any) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503,"message":"backend unavailable","status":"UNAVAILABLE"}}`))
	})

	_, err := e.DetectText(context.Background(), []byte("img"))
	require.Error(t, err)

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Equal(t, "backend unavailable", se.Message)
	assert.True(t, se.Retryable())
	assert.Equal(t, int32(1), atomic.LoadInt32(calls), "must not retry")
}

func TestVisionDetectText_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	endpoint := ts.URL + "/"
	ts.Close()

	e, err := NewVisionEngine(context.Background(), types.OCRConfig{Endpoint: endpoint}, option.WithoutAuthentication())
	require.NoError(t, err)

	_, err = e.DetectText(context.Background(), []byte("img"))
	require.Error(t, err)

	var te *httputil.TransportError
	assert.True(t, errors.As(err, &te))
}

func TestServiceErrorRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  ServiceError
		want bool
	}{
		{"http 429", ServiceError{StatusCode: 429}, true},
		{"http 400", ServiceError{StatusCode: 400}, false},
		{"rpc unavailable", ServiceError{Code: rpcUnavailable}, true},
		{"rpc resource exhausted", ServiceError{Code: rpcResourceExhausted}, true},
		{"rpc invalid argument", ServiceError{Code: 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Retryable())
		})
	}
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New(context.Background(), types.OCRConfig{Engine: "abacus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ocr engine")
}
