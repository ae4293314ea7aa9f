package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/pkg/lint"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule checks",
		Long: `List the rule checks with their IDs, names and descriptions.
Either form can be passed to --disable or rules.disable.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry().Rules()

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			case "text", "":
				outputRulesText(cmd.OutOrStdout(), rules)
				return nil
			default:
				return &usageError{err: fmt.Errorf("invalid format %q: must be text or json", flags.format)}
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func outputRulesText(w io.Writer, rules []lint.Rule) {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: false})
	logger.SetLevel(log.InfoLevel)

	for _, rule := range rules {
		logger.Info(rule.ID(), "name", rule.Name(), "description", rule.Description())
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
