// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"github.com/pdiddy/quizdoc/internal/httputil"
	"github.com/pdiddy/quizdoc/pkg/types"
)

const featureTextDetection = "TEXT_DETECTION"

// VisionEngine detects text with the Cloud Vision images:annotate method.
// Each call is a single request; there is no retry.
type VisionEngine struct {
	svc *vision.Service
}

// NewVisionEngine builds a Vision client from cfg. Extra options are appended
// after those derived from cfg.
func NewVisionEngine(ctx context.Context, cfg types.OCRConfig, opts ...option.ClientOption) (*VisionEngine, error) {
	var all []option.ClientOption
	if cfg.CredentialsFile != "" {
		all = append(all, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		all = append(all, option.WithEndpoint(cfg.Endpoint))
	}
	all = append(all, opts...)

	svc, err := vision.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("creating vision client: %w", err)
	}
	return &VisionEngine{svc: svc}, nil
}

// DetectText returns the full-text annotation (the first one) for content.
func (e *VisionEngine) DetectText(ctx context.Context, content []byte) (string, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(content)},
			Features: []*vision.Feature{{Type: featureTextDetection}},
		}},
	}

	resp, err := e.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			msg := gerr.Message
			if msg == "" {
				msg = strings.TrimSpace(gerr.Body)
			}
			return "", &ServiceError{StatusCode: gerr.Code, Message: msg}
		}
		return "", &httputil.TransportError{URL: e.svc.BasePath + "v1/images:annotate", Err: err}
	}

	if len(resp.Responses) == 0 {
		return "", nil
	}
	r := resp.Responses[0]
	if r.Error != nil && r.Error.Message != "" {
		return "", &ServiceError{Code: int(r.Error.Code), Message: r.Error.Message}
	}
	if len(r.TextAnnotations) == 0 {
		return "", nil
	}
	return strings.TrimSpace(r.TextAnnotations[0].Description), nil
}
