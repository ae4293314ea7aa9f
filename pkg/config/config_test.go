package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/config"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "http://localhost:11434", cfg.Advisory.Endpoint)
	assert.Equal(t, "gemma2:2b", cfg.Advisory.Model)
	assert.Equal(t, 120*time.Second, cfg.Advisory.RequestTimeout)
	assert.Equal(t, 600*time.Second, cfg.Advisory.PullTimeout)
	assert.Equal(t, 1500, cfg.Advisory.MaxInputChars)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.False(t, cfg.Rules.IgnoreCodeBlocks)
}

func TestOverlayKeepsUnsetFields(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	err := cfg.Overlay([]byte(`
language: ja
advisory:
  model: llama3.2
  request_timeout: 30s
rules:
  ignore_code_blocks: true
  disable: [no-todo]
`))
	require.NoError(t, err)

	assert.Equal(t, "ja", cfg.Language)
	assert.Equal(t, "llama3.2", cfg.Advisory.Model)
	assert.Equal(t, 30*time.Second, cfg.Advisory.RequestTimeout)
	assert.Equal(t, config.DefaultEndpoint, cfg.Advisory.Endpoint)
	assert.Equal(t, config.DefaultPullTimeout, cfg.Advisory.PullTimeout)
	assert.True(t, cfg.Rules.IgnoreCodeBlocks)
	assert.Equal(t, []string{"no-todo"}, cfg.Rules.Disable)
}

func TestOverlayRejectsInvalidYAML(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	require.Error(t, cfg.Overlay([]byte("advisory: [unterminated")))
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Language = "ja"
	cfg.UseLLM = true

	data, err := cfg.ToYAMLWithHeader("# mdcheck configuration")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# mdcheck configuration\n\n")
	assert.NotContains(t, string(data), "usellm")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "ja", parsed.Language)
	assert.Equal(t, cfg.Advisory, parsed.Advisory)
	assert.False(t, parsed.UseLLM)
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules.Disable = []string{"MDC001"}

	clone := cfg.Clone()
	clone.Rules.Disable[0] = "MDC002"

	assert.Equal(t, "MDC001", cfg.Rules.Disable[0])
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		want   config.OutputFormat
		wantOK bool
	}{
		{"", config.FormatText, true},
		{"text", config.FormatText, true},
		{"json", config.FormatJSON, true},
		{"sarif", config.FormatSARIF, true},
		{"xml", "", false},
	}

	for _, testCase := range tests {
		got, ok := config.ParseFormat(testCase.input)
		assert.Equal(t, testCase.wantOK, ok, testCase.input)
		assert.Equal(t, testCase.want, got, testCase.input)
	}
}
