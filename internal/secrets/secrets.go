// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credential paths from a directory of
// plain-text files. The filename is the key and the trimmed contents are the value.
//
// Recognized keys: gemini-api-key, vision-credentials-file.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Recognized key names.
const (
	GeminiAPIKey          = "gemini-api-key"
	VisionCredentialsFile = "vision-credentials-file"
)

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error. Unreadable files are reported on stderr and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
