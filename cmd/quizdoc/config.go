// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/quizdoc/internal/secrets"
	"github.com/pdiddy/quizdoc/pkg/types"
)

// configureViper sets defaults and environment bindings. Every key can be
// set as QUIZDOC_<KEY> with dots replaced by underscores; the API key and
// credentials path also honor the conventional Google variable names.
func configureViper(v *viper.Viper) {
	v.SetDefault("ocr.engine", string(types.EngineVision))
	v.SetDefault("formatter.backend", string(types.FormatterREST))
	v.SetDefault("formatter.model", types.DefaultModel)
	v.SetDefault("formatter.endpoint", types.DefaultEndpoint)
	v.SetDefault("output.document", types.DefaultDocument)
	v.SetDefault("history.path", types.DefaultHistoryPath)

	v.SetEnvPrefix("QUIZDOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("formatter.api_key", "QUIZDOC_FORMATTER_API_KEY", "GEMINI_API_KEY")
	v.BindEnv("ocr.credentials_file", "QUIZDOC_OCR_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")
}

// secretDefault returns value if set, otherwise the secret stored under key.
func secretDefault(s map[string]string, key, value string) string {
	if value != "" {
		return value
	}
	return s[key]
}

// buildConfig resolves the run configuration. Precedence is flags, then
// environment, then config file, then .secrets/, then built-in defaults.
func buildConfig(v *viper.Viper, s map[string]string) types.Config {
	cfg := types.Config{
		OCR: types.OCRConfig{
			Engine:          types.OCREngine(v.GetString("ocr.engine")),
			CredentialsFile: secretDefault(s, secrets.VisionCredentialsFile, v.GetString("ocr.credentials_file")),
			Endpoint:        v.GetString("ocr.endpoint"),
			Languages:       v.GetStringSlice("ocr.languages"),
		},
		Formatter: types.FormatterConfig{
			Backend:  types.FormatterBackend(v.GetString("formatter.backend")),
			Model:    v.GetString("formatter.model"),
			APIKey:   secretDefault(s, secrets.GeminiAPIKey, v.GetString("formatter.api_key")),
			Endpoint: v.GetString("formatter.endpoint"),
		},
		Output: types.OutputConfig{
			Document: v.GetString("output.document"),
			Report:   v.GetString("output.report"),
			Workbook: v.GetString("output.workbook"),
		},
		History: types.HistoryConfig{
			Enabled: v.GetBool("history.enabled"),
			Path:    v.GetString("history.path"),
		},
		Verbose: v.GetBool("verbose"),
	}

	// The service-account file next to the binary is used when nothing else
	// names one; otherwise Application Default Credentials apply.
	if cfg.OCR.CredentialsFile == "" {
		if _, err := os.Stat(types.DefaultCredentialsFile); err == nil {
			cfg.OCR.CredentialsFile = types.DefaultCredentialsFile
		}
	}
	return cfg
}
