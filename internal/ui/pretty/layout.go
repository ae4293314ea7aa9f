package pretty

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// BannerWidth is the width of report banners and closing rules.
const BannerWidth = 60

// minBannerWidth keeps banners readable on very narrow terminals.
const minBannerWidth = 20

// Center pads text with fill on both sides to width runes. When the padding
// is odd the extra fill goes on the right, except when both the padding and
// the width are odd, in which case it goes on the left. Text at least width
// runes long is returned unchanged.
func Center(text string, width int, fill rune) string {
	length := len([]rune(text))
	if length >= width {
		return text
	}
	pad := width - length
	left := pad/2 + (pad & width & 1)
	return strings.Repeat(string(fill), left) + text + strings.Repeat(string(fill), pad-left)
}

// HorizontalRule returns width copies of fill.
func HorizontalRule(width int, fill rune) string {
	return strings.Repeat(string(fill), width)
}

// TerminalWidth returns the column count of w when it is a terminal, or 0.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// FitWidth clamps width to the terminal width of w, never going below a
// readable minimum. Non-terminal writers keep width.
func FitWidth(width int, w io.Writer) int {
	cols := TerminalWidth(w)
	if cols <= 0 || cols >= width {
		return width
	}
	return max(cols, minBannerWidth)
}
