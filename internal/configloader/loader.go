// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered YAML
// overlays, .env and environment variable support, and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
)

// DotEnvFile is the name of the dotenv file read from the working directory.
const DotEnvFile = ".env"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config and .env.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips environment variables and the .env file.
	IgnoreEnv bool

	// EnvFile overrides the dotenv path. Defaults to WorkingDir/.env.
	EnvFile string

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv LookupFunc

	// Overrides contains values from CLI flags. These take highest precedence.
	Overrides *Overrides
}

// Overrides carries values set on the command line. Zero values are unset.
type Overrides struct {
	Language         string
	Format           string
	Endpoint         string
	Model            string
	IgnoreCodeBlocks *bool
	Disable          []string
	UseLLM           bool
	Strict           bool
}

// apply writes the set fields onto cfg.
func (o *Overrides) apply(cfg *config.Config) {
	if o == nil {
		return
	}
	if o.Language != "" {
		cfg.Language = o.Language
	}
	if o.Format != "" {
		cfg.Format = config.OutputFormat(o.Format)
	}
	if o.Endpoint != "" {
		cfg.Advisory.Endpoint = o.Endpoint
	}
	if o.Model != "" {
		cfg.Advisory.Model = o.Model
	}
	if o.IgnoreCodeBlocks != nil {
		cfg.Rules.IgnoreCodeBlocks = *o.IgnoreCodeBlocks
	}
	if len(o.Disable) > 0 {
		cfg.Rules.Disable = append(cfg.Rules.Disable, o.Disable...)
	}
	cfg.UseLLM = cfg.UseLLM || o.UseLLM
	cfg.Strict = cfg.Strict || o.Strict
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// DotEnv is the dotenv file that was read, if any.
	DotEnv string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by overlaying all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Overrides)
//  2. Environment variables (MDCHECK_*, then legacy OLLAMA_*), with the
//     process environment winning over .env
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdcheck.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdcheck/config.yaml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	result := &LoadResult{}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if !opts.IgnoreEnv {
		envPath := opts.EnvFile
		if envPath == "" {
			envPath = filepath.Join(workDir, DotEnvFile)
		}
		dotenv, err := readDotEnv(envPath, opts.EnvFile != "")
		if err != nil {
			return nil, err
		}
		if dotenv != nil {
			result.DotEnv = envPath
			lookup = withFallback(lookup, dotenv)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir, lookup)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.IgnoreUserConfig {
		paths.User = ""
	}
	if opts.IgnoreProjectConfig {
		paths.Project = ""
	}
	paths.Explicit = opts.ExplicitPath
	result.Paths = paths

	cfg := config.NewConfig()
	for _, path := range paths.Layers() {
		if err := overlayFile(cfg, path); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg, lookup); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	opts.Overrides.apply(cfg)

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	normalizeDisabled(cfg, lint.DefaultRegistry())

	result.Config = cfg
	return result, nil
}

// overlayFile applies one YAML file on top of cfg.
func overlayFile(cfg *config.Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.Overlay(content); err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	return nil
}

// readDotEnv parses a dotenv file. A missing file is not an error unless the
// path was given explicitly.
func readDotEnv(path string, explicit bool) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err == nil {
		return values, nil
	}
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return nil, nil
	}
	return nil, fmt.Errorf("read %s: %w", path, err)
}

// withFallback consults primary first and then the dotenv values, so
// variables already in the environment are never overridden.
func withFallback(primary LookupFunc, dotenv map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if value, ok := primary(key); ok {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	}
}

// normalizeDisabled converts rule names to canonical IDs and drops duplicates.
func normalizeDisabled(cfg *config.Config, registry *lint.Registry) {
	if len(cfg.Rules.Disable) == 0 {
		return
	}
	seen := make(map[string]bool, len(cfg.Rules.Disable))
	normalized := make([]string, 0, len(cfg.Rules.Disable))
	for _, key := range cfg.Rules.Disable {
		id, err := registry.Resolve(key)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		normalized = append(normalized, id)
	}
	cfg.Rules.Disable = normalized
}
