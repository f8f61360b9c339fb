// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OCREngine identifies the text-detection backend.
type OCREngine string

const (
	EngineVision    OCREngine = "vision"
	EngineTesseract OCREngine = "tesseract"
)

// OCRConfig holds settings for the OCR adapter.
type OCRConfig struct {
	// Engine selects the text-detection backend: vision or tesseract.
	Engine OCREngine `json:"engine" yaml:"engine"`

	// CredentialsFile is the service-account JSON used by the Vision engine.
	// When empty the engine falls back to Application Default Credentials.
	CredentialsFile string `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"`

	// Endpoint overrides the Vision API base URL (e.g. for a regional endpoint).
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// Languages lists Tesseract language codes (e.g. "eng").
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty"`
}

// FormatterBackend identifies the generative-text client implementation.
type FormatterBackend string

const (
	FormatterREST FormatterBackend = "rest"
	FormatterSDK  FormatterBackend = "sdk"
)

// FormatterConfig holds settings for the text formatter adapter.
type FormatterConfig struct {
	// Backend selects the client: rest (single raw HTTP call) or sdk.
	Backend FormatterBackend `json:"backend" yaml:"backend"`

	// Model is the generative model identifier (e.g. "gemini-1.5-flash-latest").
	Model string `json:"model" yaml:"model"`

	// APIKey is sent as the key query parameter.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Endpoint is the API base URL up to and including the version segment.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// OutputConfig holds the paths of the artifacts a run produces.
type OutputConfig struct {
	// Document is the .docx path, overwritten on every run.
	Document string `json:"document" yaml:"document"`

	// Report is an optional YAML run report path.
	Report string `json:"report,omitempty" yaml:"report,omitempty"`

	// Workbook is an optional .xlsx path with one row per QA record.
	Workbook string `json:"workbook,omitempty" yaml:"workbook,omitempty"`
}

// HistoryConfig holds settings for the run history database.
type HistoryConfig struct {
	// Enabled turns on recording of runs.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`
}

// Config groups everything a run needs. The CLI builds it once and hands
// the relevant section to each adapter constructor.
type Config struct {
	OCR       OCRConfig       `json:"ocr" yaml:"ocr"`
	Formatter FormatterConfig `json:"formatter" yaml:"formatter"`
	Output    OutputConfig    `json:"output" yaml:"output"`
	History   HistoryConfig   `json:"history" yaml:"history"`

	// Verbose echoes OCR and formatted text for each image.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// Defaults used when neither flags, environment, nor config files set a value.
const (
	DefaultCredentialsFile = "vision_key.json"
	DefaultModel           = "gemini-1.5-flash-latest"
	DefaultEndpoint        = "https://generativelanguage.googleapis.com/v1beta"
	DefaultDocument        = "formatted_output.docx"
	DefaultHistoryPath     = "quizdoc.db"
)
