// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx writes and reads the Word document a run produces. Each
// paragraph is one processed image; lines inside a paragraph are separated
// by line breaks.
package docx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/gomutex/godocx"
)

// MIMEType is the media type for serving the document.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Write replaces the document at path with one paragraph per entry. The file
// is saved to a temporary sibling and renamed into place, so readers never
// see a partial document.
func Write(path string, paragraphs []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}
	for _, text := range paragraphs {
		lines := strings.Split(text, "\n")
		p := doc.AddParagraph(lines[0])
		for _, line := range lines[1:] {
			p.AddText("").AddBreak(nil)
			if line != "" {
				p.AddText(line)
			}
		}
	}

	tmp, err := os.CreateTemp(dir, ".quizdoc-*.docx")
	if err != nil {
		return fmt.Errorf("creating temporary document: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temporary document: %w", err)
	}

	if err := doc.SaveTo(tmpName); err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting document permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// ReadText extracts the plain text of a .docx file.
func ReadText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return text, nil
}
