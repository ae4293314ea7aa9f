package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/internal/cli"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

// execute runs the root command with args and returns what it printed.
func execute(ctx context.Context, args ...string) (string, string, error) {
	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "mdcheck", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, flag := range []string{"llm", "pull-model", "format", "strict", "ignore-code-blocks", "disable"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %s", flag)
	}
	for _, flag := range []string{"debug", "config", "env-file", "color", "lang", "endpoint", "model"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "persistent flag %s", flag)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"preview", "watch", "rules", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %s", name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(context.Background(), "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "mdcheck")
	assert.Contains(t, stdout, "test-version")
	assert.Contains(t, stdout, "test-commit")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args func(t *testing.T) []string
		want int
	}{
		{
			name: "missing path",
			args: func(*testing.T) []string { return nil },
			want: cli.ExitInvalidUsage,
		},
		{
			name: "unknown flag",
			args: func(*testing.T) []string { return []string{"--no-such-flag"} },
			want: cli.ExitInvalidUsage,
		},
		{
			name: "too many arguments",
			args: func(t *testing.T) []string {
				dir := t.TempDir()
				return []string{writeMarkdown(t, dir, "a.md", "# a\n"), writeMarkdown(t, dir, "b.md", "# b\n")}
			},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "nonexistent path",
			args: func(t *testing.T) []string { return []string{filepath.Join(t.TempDir(), "missing.md")} },
			want: cli.ExitIOError,
		},
		{
			name: "invalid endpoint scheme",
			args: func(t *testing.T) []string {
				return []string{writeMarkdown(t, t.TempDir(), "a.md", "# a\n"), "--llm", "--endpoint", "ftp://localhost"}
			},
			want: cli.ExitConfigError,
		},
		{
			name: "invalid endpoint scheme on pull",
			args: func(*testing.T) []string { return []string{"--pull-model", "--endpoint", "ftp://localhost"} },
			want: cli.ExitConfigError,
		},
		{
			name: "unknown rule disabled",
			args: func(t *testing.T) []string {
				return []string{writeMarkdown(t, t.TempDir(), "a.md", "# a\n"), "--disable", "MDC999"}
			},
			want: cli.ExitConfigError,
		},
		{
			name: "unknown format",
			args: func(t *testing.T) []string {
				return []string{writeMarkdown(t, t.TempDir(), "a.md", "# a\n"), "--format", "xml"}
			},
			want: cli.ExitConfigError,
		},
		{
			name: "findings without strict",
			args: func(t *testing.T) []string {
				return []string{writeMarkdown(t, t.TempDir(), "a.md", "#Title\n")}
			},
			want: cli.ExitSuccess,
		},
		{
			name: "findings with strict",
			args: func(t *testing.T) []string {
				return []string{writeMarkdown(t, t.TempDir(), "a.md", "#Title\n"), "--strict"}
			},
			want: cli.ExitFindings,
		},
		{
			name: "clean file with strict",
			args: func(t *testing.T) []string {
				return []string{writeMarkdown(t, t.TempDir(), "a.md", "# Title\n"), "--strict"}
			},
			want: cli.ExitSuccess,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(context.Background(), testCase.args(t)...)
			assert.Equal(t, testCase.want, cli.ExitCode(err), "error: %v", err)
		})
	}
}

func TestRulesCommand(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(context.Background(), "rules")
		require.NoError(t, err)
		for _, want := range []string{"MDC001", "heading-space", "MDC002", "MDC003", "no-todo"} {
			assert.Contains(t, stdout, want)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := execute(context.Background(), "rules", "--format", "json")
		require.NoError(t, err)
		var rules []struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &rules))
		require.Len(t, rules, 3)

		ids := make([]string, 0, len(rules))
		for _, rule := range rules {
			ids = append(ids, rule.ID+"/"+rule.Name)
			assert.NotEmpty(t, rule.Description)
		}
		assert.Equal(t, []string{"MDC001/heading-space", "MDC002/no-trailing-whitespace", "MDC003/no-todo"}, ids)
	})

	t.Run("bad format", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(context.Background(), "rules", "--format", "yaml")
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	})
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "custom.yml")

	stdout, _, err := execute(ctx, "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# mdcheck configuration.")
	assert.Contains(t, string(content), "http://localhost:11434")

	_, _, err = execute(ctx, "init", "--output", path)
	require.ErrorIs(t, err, cli.ErrOutputExists)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))

	_, _, err = execute(ctx, "init", "--output", path, "--force")
	require.NoError(t, err)

	// The generated file must load back as a valid config.
	doc := writeMarkdown(t, t.TempDir(), "a.md", "# a\n")
	_, _, err = execute(ctx, doc, "--config", path)
	require.NoError(t, err)
}

func TestHelpListsEnvironment(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(context.Background(), "--help", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Environment:")
	assert.Contains(t, stdout, "MDCHECK_ENDPOINT")
	assert.Contains(t, stdout, "OLLAMA_HOST")

	stdout, _, err = execute(context.Background(), "preview", "--help")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Environment:")
}

func TestHelpListsFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "root",
			args:     []string{"--help", "--color", "never"},
			contains: []string{"Commands:", "Flags:", "--strict", "--color string", "(default auto)", "[command] --help"},
		},
		{
			name:     "subcommand",
			args:     []string{"preview", "--help", "--color", "never"},
			contains: []string{"Flags:", "Global Flags:", "-o, --output string", "--model string"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(context.Background(), testCase.args...)
			require.NoError(t, err)
			for _, want := range testCase.contains {
				assert.Contains(t, stdout, want)
			}
			assert.NotContains(t, stdout, "\x1b[")
		})
	}
}

func TestMissingPathPrintsUsage(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(context.Background())
	require.ErrorIs(t, err, cli.ErrUsage)
	assert.Contains(t, stderr, "Usage:")
}
