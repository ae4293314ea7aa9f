// Package cli provides the Cobra command structure for mdcheck.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdcheck/internal/configloader"
	"github.com/yaklabco/mdcheck/internal/ui/pretty"
)

// flagGap separates the flag column from its description.
const flagGap = "   "

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}
{{- end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]

{{ heading "Commands:" }}
{{- range .Commands }}{{ if (or .IsAvailableCommand (eq .Name "help")) }}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}
{{- end }}{{ end }}
{{- end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}
{{- if not .HasParent }}

{{ heading "Environment:" }}
{{ environment }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end }}
`

const helpTemplate = `{{ command .CommandPath }}{{ if .Version }} {{ dim .Version }}{{ end }}
{{ with (or .Long .Short) }}
{{ trimLines . }}
{{ end }}
` + usageTemplate

// helpRenderer draws styled help and usage text. Color is resolved at render
// time so --color on the command line applies.
type helpRenderer struct {
	global *globalFlags
}

// install sets the help and usage functions on cmd. Subcommands inherit them.
func (h *helpRenderer) install(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render(command.ErrOrStderr(), "usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render(command.OutOrStdout(), "help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *helpRenderer) render(w io.Writer, name, text string, command *cobra.Command) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(h.global.color, w))

	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"heading":     styles.Section.Render,
		"command":     styles.Bold.Render,
		"subcommand":  styles.FilePath.Render,
		"dim":         styles.Dim.Render,
		"pad":         pad,
		"trimLines":   trimLines,
		"flags":       func(fs *pflag.FlagSet) string { return flagTable(styles, fs) },
		"environment": func() string { return envTable(styles) },
	}).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(w, command); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// flagTable lists the visible flags of fs in two aligned columns.
func flagTable(styles *pretty.Styles, fs *pflag.FlagSet) string {
	var names, descriptions []string
	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		name := "    --" + flag.Name
		if flag.Shorthand != "" {
			name = "-" + flag.Shorthand + ", --" + flag.Name
		}
		varName, usage := pflag.UnquoteUsage(flag)
		if varName != "" {
			name += " " + varName
		}
		if hasDefault(flag) {
			usage += fmt.Sprintf(" (default %s)", flag.DefValue)
		}

		names = append(names, name)
		descriptions = append(descriptions, usage)
	})

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = "  " + styles.Hint.Render(pad(name, width)) + flagGap + descriptions[i]
	}
	return strings.Join(lines, "\n")
}

func hasDefault(flag *pflag.Flag) bool {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return false
	}
	return true
}

// envTable lists the environment variables the config loader reads.
func envTable(styles *pretty.Styles) string {
	vars := configloader.ListEnvVars()

	width := 0
	for _, envVar := range vars {
		width = max(width, len(envVar.Name))
	}

	lines := make([]string, len(vars))
	for i, envVar := range vars {
		lines[i] = "  " + styles.Hint.Render(pad(envVar.Name, width)) + flagGap + envVar.Description
	}
	return strings.Join(lines, "\n")
}

func pad(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

func trimLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
