package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdcheck/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdcheck command with all subcommands.
// The root command itself checks the path it is given.
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalFlags{}
	check := &checkFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdcheck [path]",
		Short: "Check Markdown documents with rules and an optional local model",
		Long:  checkLongDescription,
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if global.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, global, check, info)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	global.register(rootCmd)
	addCheckFlags(rootCmd, check)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(newPreviewCommand(global, info))
	rootCmd.AddCommand(newWatchCommand(global, info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	help := &helpRenderer{global: global}
	help.install(rootCmd)

	return rootCmd
}
