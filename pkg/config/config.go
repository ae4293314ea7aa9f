// Package config defines core configuration types for mdcheck.
// These types are pure data structures; loading and validation live in
// internal/configloader.
package config

import "time"

// Default values for the advisory endpoint and the rule engine.
const (
	DefaultEndpoint       = "http://localhost:11434"
	DefaultModel          = "gemma2:2b"
	DefaultRequestTimeout = 120 * time.Second
	DefaultPullTimeout    = 600 * time.Second
	DefaultTemperature    = 0.1
	DefaultMaxInputChars  = 1500
	DefaultMaxPullLines   = 10000
	DefaultLanguage       = "en"
)

// OutputFormat specifies the report output format.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatSARIF OutputFormat = "sarif"
)

// AdvisoryConfig configures the connection to the local model server.
type AdvisoryConfig struct {
	// Endpoint is the base URL of the Ollama-compatible server.
	Endpoint string `yaml:"endpoint" validate:"required"`

	// Model is the model identifier sent with every request.
	Model string `yaml:"model" validate:"required"`

	// RequestTimeout bounds a single analysis request.
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`

	// PullTimeout bounds the model pull operation.
	PullTimeout time.Duration `yaml:"pull_timeout" validate:"gt=0"`

	// Temperature is passed through to the model. Zero selects
	// DefaultTemperature.
	Temperature float64 `yaml:"temperature" validate:"gte=0,lte=2"`

	// MaxInputChars is the character budget for the Markdown sent to the model.
	MaxInputChars int `yaml:"max_input_chars" validate:"gt=0"`

	// MaxPullLines bounds how many progress lines the pull operation reads.
	MaxPullLines int `yaml:"max_pull_lines" validate:"gt=0"`
}

// RulesConfig configures the rule engine.
type RulesConfig struct {
	// IgnoreCodeBlocks skips heading checks on lines inside code blocks.
	IgnoreCodeBlocks bool `yaml:"ignore_code_blocks"`

	// Disable lists rule IDs or names to skip.
	Disable []string `yaml:"disable"`
}

// Config is the root configuration structure for mdcheck.
type Config struct {
	// Language selects the message catalog and the language the model answers in.
	Language string `yaml:"language" validate:"required"`

	// Format is the report output format.
	Format OutputFormat `yaml:"format"`

	// Advisory configures the model server connection.
	Advisory AdvisoryConfig `yaml:"advisory"`

	// Rules configures the rule engine.
	Rules RulesConfig `yaml:"rules"`

	// CLI-level options (not persisted to config files).

	// UseLLM enables the advisory path.
	UseLLM bool `yaml:"-"`

	// Strict makes any finding produce a non-zero exit code.
	Strict bool `yaml:"-"`
}

// NewConfig returns a Config with the documented defaults.
func NewConfig() *Config {
	return &Config{
		Language: DefaultLanguage,
		Format:   FormatText,
		Advisory: AdvisoryConfig{
			Endpoint:       DefaultEndpoint,
			Model:          DefaultModel,
			RequestTimeout: DefaultRequestTimeout,
			PullTimeout:    DefaultPullTimeout,
			Temperature:    DefaultTemperature,
			MaxInputChars:  DefaultMaxInputChars,
			MaxPullLines:   DefaultMaxPullLines,
		},
	}
}

// ParseFormat converts a string into an OutputFormat.
// It returns false for unknown formats; an empty string means text.
func ParseFormat(s string) (OutputFormat, bool) {
	switch OutputFormat(s) {
	case "", FormatText:
		return FormatText, true
	case FormatJSON:
		return FormatJSON, true
	case FormatSARIF:
		return FormatSARIF, true
	default:
		return "", false
	}
}
