// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Finding colors shared by the terminal report and the editor issue list.
const (
	RuleColor     = "#E85D75"
	AdvisoryColor = "#4A90E2"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Report layout
	Banner  lipgloss.Style
	Section lipgloss.Style
	Bullet  lipgloss.Style

	// Finding components
	Rule     lipgloss.Style
	Advisory lipgloss.Style
	Line     lipgloss.Style
	Note     lipgloss.Style
	Hint     lipgloss.Style
	FilePath lipgloss.Style

	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors and the two finding colors.
func newColorStyles() *Styles {
	return &Styles{
		Banner:  lipgloss.NewStyle().Bold(true),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		Bullet:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Rule:     lipgloss.NewStyle().Foreground(lipgloss.Color(RuleColor)),
		Advisory: lipgloss.NewStyle().Foreground(lipgloss.Color(AdvisoryColor)),
		Line:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Note:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		FilePath: lipgloss.NewStyle().Bold(true),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Banner:   plain,
		Section:  plain,
		Bullet:   plain,
		Rule:     plain,
		Advisory: plain,
		Line:     plain,
		Note:     plain,
		Hint:     plain,
		FilePath: plain,
		Error:    plain,
		Warning:  plain,
		Success:  plain,
		Failure:  plain,
		Dim:      plain,
		Bold:     plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
