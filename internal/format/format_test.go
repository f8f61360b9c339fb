// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/pdiddy/quizdoc/pkg/types"
)

func TestRenderPrompt(t *testing.T) {
	got, err := renderPrompt("1. Q?\n\na) x \n\n")
	require.NoError(t, err)
	assert.Equal(t, "Please organize and format the following text for better readability:\n\n1. Q?\n\na) x \n\n", got)

	empty, err := renderPrompt("")
	require.NoError(t, err)
	assert.Equal(t, "Please organize and format the following text for better readability:\n\n", empty)
}

func TestNew(t *testing.T) {
	_, err := New(context.Background(), types.FormatterConfig{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = New(context.Background(), types.FormatterConfig{APIKey: "k", Backend: "carrier-pigeon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown formatter backend")

	b, err := New(context.Background(), types.FormatterConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &GeminiBackend{}, b)
}

func TestServiceErrorMessage(t *testing.T) {
	err := &ServiceError{StatusCode: 403, Body: "forbidden"}
	assert.Equal(t, "format service error: 403 - forbidden", err.Error())
	assert.False(t, err.Retryable())
}

func TestCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("hello "), genai.Text("world\n")}},
		}},
	}
	assert.Equal(t, "hello world", candidateText(resp))
	assert.Empty(t, candidateText(&genai.GenerateContentResponse{}))
	assert.Empty(t, candidateText(nil))
}

func TestMapSDKError(t *testing.T) {
	ae, ok := apierror.FromError(&googleapi.Error{Code: 429, Message: "quota exceeded"})
	require.True(t, ok)

	err := mapSDKError(fmt.Errorf("wrapped: %w", ae))
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 429, se.StatusCode)
	assert.True(t, se.Retryable())

	plain := mapSDKError(errors.New("boom"))
	assert.False(t, errors.As(plain, &se))
	assert.Contains(t, plain.Error(), "generating content: boom")
}
