// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the quizdoc pipeline.
package types

import "time"

// Image is one input to a run. Content is loaded lazily from Path when empty.
type Image struct {
	// Name is the display name used to label the output paragraph.
	Name string `json:"name" yaml:"name"`

	// Path is the filesystem location of the image.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Content holds the raw image bytes.
	Content []byte `json:"-" yaml:"-"`
}

// QARecord is one question with the first answer option that follows it.
type QARecord struct {
	// Number is the question number exactly as it appeared in the source.
	Number string `json:"number" yaml:"number"`

	// Question is the parenthetical content, trimmed, without parentheses.
	Question string `json:"question" yaml:"question"`

	// Answer is the text between the question and the marker, trimmed.
	Answer string `json:"answer" yaml:"answer"`

	// Marker is the answer-option marker, e.g. "a)".
	Marker string `json:"marker" yaml:"marker"`
}

// ImageStatus is the outcome of processing one image.
type ImageStatus string

const (
	StatusFormatted ImageStatus = "formatted"
	StatusFailed    ImageStatus = "failed"
)

// ErrorKind names the stage that failed for an image.
type ErrorKind string

const (
	KindInput  ErrorKind = "input"
	KindOCR    ErrorKind = "ocr"
	KindFormat ErrorKind = "format"
)

// ImageResult records what happened to a single image.
type ImageResult struct {
	Name   string      `json:"name" yaml:"name"`
	Status ImageStatus `json:"status" yaml:"status"`

	// Error is the message of the failure, empty on success.
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`

	// Retryable reports whether the failure was transient.
	Retryable bool `json:"retryable,omitempty" yaml:"retryable,omitempty"`

	OCRText   string     `json:"ocr_text,omitempty" yaml:"ocr_text,omitempty"`
	Records   []QARecord `json:"records,omitempty" yaml:"records,omitempty"`
	Block     string     `json:"block,omitempty" yaml:"block,omitempty"`
	FinalText string     `json:"final_text,omitempty" yaml:"final_text,omitempty"`
}

// RunReport summarizes one invocation of the pipeline.
type RunReport struct {
	ID         string        `json:"id" yaml:"id"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time     `json:"finished_at" yaml:"finished_at"`
	Document   string        `json:"document" yaml:"document"`
	Results    []ImageResult `json:"results" yaml:"results"`
}

// Formatted returns the number of images that produced a paragraph.
func (r RunReport) Formatted() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusFormatted {
			n++
		}
	}
	return n
}

// Failed returns the number of images that failed.
func (r RunReport) Failed() int {
	return len(r.Results) - r.Formatted()
}

// HasFailures reports whether any image failed.
func (r RunReport) HasFailures() bool {
	return r.Failed() > 0
}
