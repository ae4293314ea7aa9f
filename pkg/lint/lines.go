package lint

import "strings"

// SplitLines splits text into lines, each keeping its trailing newline.
// A final line without a newline is returned as-is. Empty text yields no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
