package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/mdcheck/pkg/config"
)

// envVarPrefix is the prefix for all mdcheck environment variables.
const envVarPrefix = "MDCHECK_"

// LookupFunc reads one environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeDuration
	envTypeSlice
)

// envMapping binds one environment variable to a config field.
type envMapping struct {
	name        string
	field       string
	typ         envFieldType
	description string
}

// envMappings lists the supported variables in application order. Later
// entries win, so the legacy Ollama names come first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{name: "OLLAMA_HOST", field: "advisory.endpoint", typ: envTypeString,
		description: "Legacy model server URL (overridden by MDCHECK_ENDPOINT)"},
	{name: "OLLAMA_MODEL", field: "advisory.model", typ: envTypeString,
		description: "Legacy model name (overridden by MDCHECK_MODEL)"},
	{name: envVarPrefix + "ENDPOINT", field: "advisory.endpoint", typ: envTypeString,
		description: "Base URL of the Ollama-compatible server (http or https)"},
	{name: envVarPrefix + "MODEL", field: "advisory.model", typ: envTypeString,
		description: "Model used for the AI check"},
	{name: envVarPrefix + "LANG", field: "language", typ: envTypeString,
		description: "Message language: en or ja"},
	{name: envVarPrefix + "FORMAT", field: "format", typ: envTypeString,
		description: "Output format: text, json, or sarif"},
	{name: envVarPrefix + "REQUEST_TIMEOUT", field: "advisory.request_timeout", typ: envTypeDuration,
		description: "Timeout for one analysis request (e.g. 120s, or seconds)"},
	{name: envVarPrefix + "PULL_TIMEOUT", field: "advisory.pull_timeout", typ: envTypeDuration,
		description: "Timeout for pulling the model (e.g. 10m, or seconds)"},
	{name: envVarPrefix + "MAX_INPUT_CHARS", field: "advisory.max_input_chars", typ: envTypeInt,
		description: "Characters of Markdown sent to the model"},
	{name: envVarPrefix + "IGNORE_CODE_BLOCKS", field: "rules.ignore_code_blocks", typ: envTypeBool,
		description: "Skip heading checks inside fenced code blocks: true or false"},
	{name: envVarPrefix + "DISABLE", field: "rules.disable", typ: envTypeSlice,
		description: "Comma-separated rule IDs or names to disable"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Unset and empty variables are skipped. A nil lookup reads the process
// environment.
func LoadFromEnv(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, mapping := range envMappings {
		value, ok := lookup(mapping.name)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}
		if err := applyEnvValue(cfg, mapping, value); err != nil {
			return err
		}
	}
	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", mapping.name, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", mapping.name, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeDuration:
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %q", mapping.name, value)
		}
		return setDurationField(cfg, mapping.field, d)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", mapping.name)
	}
}

// parseDuration accepts Go duration syntax or a plain number of seconds.
func parseDuration(value string) (time.Duration, error) {
	if seconds, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	return time.ParseDuration(value)
}

// parseSliceValue parses a comma-separated string into a slice.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "advisory.endpoint":
		cfg.Advisory.Endpoint = value
	case "advisory.model":
		cfg.Advisory.Model = value
	case "language":
		cfg.Language = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "rules.ignore_code_blocks":
		cfg.Rules.IgnoreCodeBlocks = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "advisory.max_input_chars":
		cfg.Advisory.MaxInputChars = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setDurationField(cfg *config.Config, field string, value time.Duration) error {
	switch field {
	case "advisory.request_timeout":
		cfg.Advisory.RequestTimeout = value
	case "advisory.pull_timeout":
		cfg.Advisory.PullTimeout = value
	default:
		return fmt.Errorf("unknown duration field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "rules.disable":
		cfg.Rules.Disable = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables in application order.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, 0, len(envMappings))
	for _, mapping := range envMappings {
		out = append(out, EnvVar{Name: mapping.name, Description: mapping.description})
	}
	return out
}
