package configloader

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the YAML path to the invalid field (e.g., "advisory.endpoint").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns the errors joined into one, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Lazily built, read-only after first use.
var (
	structValidator     *validator.Validate
	structValidatorOnce sync.Once
)

func getValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		structValidator = v
	})
	return structValidator
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateStruct(cfg, result)

	// Only the AI check needs the endpoint; advisory.New rejects it there.
	if err := ValidateEndpoint(cfg.Advisory.Endpoint); err != nil && cfg.Advisory.Endpoint != "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "advisory.endpoint",
			Value:   cfg.Advisory.Endpoint,
			Message: err.Error() + "; the AI check cannot run",
		})
	}

	if cfg.Language != "" && !locale.Supported(cfg.Language) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "language",
			Value:   cfg.Language,
			Message: fmt.Sprintf("unsupported language %q; falling back to English", cfg.Language),
		})
	}

	if _, ok := config.ParseFormat(string(cfg.Format)); !ok {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, sarif", cfg.Format),
		})
	}

	validateRules(cfg, result)

	return result
}

func validateStruct(cfg *config.Config, result *ValidationResult) {
	err := getValidator().Struct(cfg)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
		return
	}

	for _, fieldErr := range fieldErrs {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldPath(fieldErr.Namespace()),
			Value:   fieldErr.Value(),
			Message: describeTag(fieldErr),
		})
	}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func describeTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "must not be empty"
	case "gt":
		return "must be greater than " + fieldErr.Param()
	case "gte":
		return "must be at least " + fieldErr.Param()
	case "lte":
		return "must be at most " + fieldErr.Param()
	default:
		return fmt.Sprintf("failed %q check", fieldErr.Tag())
	}
}

// validateRules checks that every disabled rule is known.
func validateRules(cfg *config.Config, result *ValidationResult) {
	registry := lint.DefaultRegistry()
	for i, key := range cfg.Rules.Disable {
		if _, err := registry.Resolve(key); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("rules.disable[%d]", i),
				Value:   key,
				Message: fmt.Sprintf("unknown rule %q", key),
			})
		}
	}
}

// ValidateEndpoint checks that endpoint is an absolute http or https URL.
func ValidateEndpoint(endpoint string) error {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("not a valid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q; only http and https are allowed", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// ValidateWithFile validates configuration and includes the file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
