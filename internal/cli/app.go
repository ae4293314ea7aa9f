package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/configloader"
	"github.com/yaklabco/mdcheck/internal/logging"
	"github.com/yaklabco/mdcheck/pkg/advisory"
	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/lint"
	"github.com/yaklabco/mdcheck/pkg/locale"
	"github.com/yaklabco/mdcheck/pkg/reporter"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	envFile    string
	color      string
	lang       string
	endpoint   string
	model      string
}

func (g *globalFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.BoolVar(&g.debug, "debug", false, "enable debug logging")
	flags.StringVar(&g.configPath, "config", "", "path to config file")
	flags.StringVar(&g.envFile, "env-file", "", "dotenv file to read (default: .env in the working directory)")
	flags.StringVar(&g.color, "color", "auto", "colorize output: auto, always, never")
	flags.StringVar(&g.lang, "lang", "", "message language: en, ja")
	flags.StringVar(&g.endpoint, "endpoint", "", "model server URL (overrides MDCHECK_ENDPOINT)")
	flags.StringVar(&g.model, "model", "", "model used for the AI check (overrides MDCHECK_MODEL)")
}

// app is the resolved configuration shared by a command invocation.
type app struct {
	cfg      *config.Config
	messages *locale.Catalog
	logger   *log.Logger
	workDir  string
	version  string
}

// load resolves configuration for cmd. Every failure wraps ErrConfig.
func (g *globalFlags) load(cmd *cobra.Command, overrides *configloader.Overrides, info BuildInfo) (*app, error) {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	if overrides == nil {
		overrides = &configloader.Overrides{}
	}
	overrides.Language = g.lang
	overrides.Endpoint = g.endpoint
	overrides.Model = g.model

	result, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: g.configPath,
		EnvFile:      g.envFile,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}
	if result.DotEnv != "" {
		logger.Debug("read dotenv file", logging.FieldPath, result.DotEnv)
	}

	cfg := result.Config
	logger.Debug("configuration loaded",
		logging.FieldEndpoint, cfg.Advisory.Endpoint,
		logging.FieldModel, cfg.Advisory.Model,
		"language", cfg.Language,
		"format", cfg.Format,
	)

	return &app{
		cfg:      cfg,
		messages: locale.Lookup(cfg.Language),
		logger:   logger,
		workDir:  workDir,
		version:  info.Version,
	}, nil
}

// engine builds the rule engine.
func (a *app) engine() (*lint.Engine, error) {
	engine, err := lint.NewEngine(a.cfg.Rules, a.messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return engine, nil
}

// client builds the advisory client. Invalid settings yield *advisory.ConfigError.
func (a *app) client() (*advisory.Client, error) {
	client, err := advisory.New(advisory.FromConfig(a.cfg), advisory.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("create advisory client: %w", err)
	}
	return client, nil
}

// analyzer returns the advisory client when the AI check is enabled, or nil.
func (a *app) analyzer() (advisory.Analyzer, error) {
	if !a.cfg.UseLLM {
		return nil, nil
	}
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	return client, nil
}

// reporterOptions returns reporter options writing to w.
func (a *app) reporterOptions(w io.Writer, color string) (reporter.Options, error) {
	format, err := reporter.ParseFormat(string(a.cfg.Format))
	if err != nil {
		return reporter.Options{}, &usageError{err: err}
	}
	return reporter.Options{
		Writer:     w,
		Format:     format,
		Color:      color,
		Model:      a.cfg.Advisory.Model,
		Messages:   a.messages,
		WorkingDir: a.workDir,
		Version:    a.version,
	}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
