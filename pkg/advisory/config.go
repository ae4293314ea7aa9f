package advisory

import (
	"net/url"
	"strings"
	"time"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// Config is the explicit configuration of a Client.
type Config struct {
	// Endpoint is the base URL of the Ollama-compatible server.
	Endpoint string

	// Model is the model identifier sent with every request.
	Model string

	// RequestTimeout bounds a single Analyze call.
	RequestTimeout time.Duration

	// PullTimeout bounds a single EnsureModel call.
	PullTimeout time.Duration

	// Temperature is passed through in the request options. Zero selects
	// the default temperature.
	Temperature float64

	// MaxInputChars is the character budget for the Markdown sent to the model.
	MaxInputChars int

	// MaxPullLines bounds how many progress lines EnsureModel reads.
	MaxPullLines int

	// Language is the BCP 47 tag the model is asked to answer in.
	Language string
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:       config.DefaultEndpoint,
		Model:          config.DefaultModel,
		RequestTimeout: config.DefaultRequestTimeout,
		PullTimeout:    config.DefaultPullTimeout,
		Temperature:    config.DefaultTemperature,
		MaxInputChars:  config.DefaultMaxInputChars,
		MaxPullLines:   config.DefaultMaxPullLines,
		Language:       config.DefaultLanguage,
	}
}

// FromConfig builds a client Config from the loaded application config.
func FromConfig(cfg *config.Config) Config {
	return Config{
		Endpoint:       cfg.Advisory.Endpoint,
		Model:          cfg.Advisory.Model,
		RequestTimeout: cfg.Advisory.RequestTimeout,
		PullTimeout:    cfg.Advisory.PullTimeout,
		Temperature:    cfg.Advisory.Temperature,
		MaxInputChars:  cfg.Advisory.MaxInputChars,
		MaxPullLines:   cfg.Advisory.MaxPullLines,
		Language:       cfg.Language,
	}
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Endpoint == "" {
		c.Endpoint = def.Endpoint
	}
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.PullTimeout == 0 {
		c.PullTimeout = def.PullTimeout
	}
	if c.Temperature == 0 {
		c.Temperature = def.Temperature
	}
	if c.MaxInputChars == 0 {
		c.MaxInputChars = def.MaxInputChars
	}
	if c.MaxPullLines == 0 {
		c.MaxPullLines = def.MaxPullLines
	}
	if c.Language == "" {
		c.Language = def.Language
	}
	return c
}

// Validate checks the configuration. The endpoint must be an absolute http
// or https URL with a host.
func (c Config) Validate() error {
	parsed, err := url.Parse(c.Endpoint)
	if err != nil {
		return &ConfigError{Field: "endpoint", Value: c.Endpoint, Message: "not a valid URL"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ConfigError{
			Field:   "endpoint",
			Value:   c.Endpoint,
			Message: "scheme " + quoteOrEmpty(parsed.Scheme) + " is not supported; use http or https",
		}
	}
	if parsed.Host == "" {
		return &ConfigError{Field: "endpoint", Value: c.Endpoint, Message: "missing host"}
	}
	if strings.TrimSpace(c.Model) == "" {
		return &ConfigError{Field: "model", Message: "must not be empty"}
	}
	if c.RequestTimeout < 0 {
		return &ConfigError{Field: "request_timeout", Value: c.RequestTimeout.String(), Message: "must be positive"}
	}
	if c.PullTimeout < 0 {
		return &ConfigError{Field: "pull_timeout", Value: c.PullTimeout.String(), Message: "must be positive"}
	}
	if c.MaxInputChars < 0 {
		return &ConfigError{Field: "max_input_chars", Message: "must be positive"}
	}
	if c.MaxPullLines < 0 {
		return &ConfigError{Field: "max_pull_lines", Message: "must be positive"}
	}
	return nil
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "(empty)"
	}
	return `"` + s + `"`
}
