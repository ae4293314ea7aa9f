package lint

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

// Rule identifiers, in execution order.
const (
	HeadingSpaceID   = "MDC001"
	HeadingSpaceName = "heading-space"

	TrailingWhitespaceID   = "MDC002"
	TrailingWhitespaceName = "no-trailing-whitespace"

	TodoID   = "MDC003"
	TodoName = "no-todo"
)

// CheckHeaderSpacing flags lines whose leading "#" run is followed by a
// non-whitespace character. Indentation before the "#" run is ignored; a bare
// "#" run is compliant. Any Unicode space after the run is accepted.
func CheckHeaderSpacing(lines []string, msgs *locale.Catalog) []finding.Finding {
	msgs = messagesOrDefault(msgs)

	var out []finding.Finding
	for i, line := range lines {
		stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
		if !strings.HasPrefix(stripped, "#") {
			continue
		}

		rest := strings.TrimLeft(stripped, "#")
		if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
			rest = rest[:idx]
		}
		if rest == "" {
			continue
		}

		first, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsSpace(first) {
			continue
		}

		msg := fmt.Sprintf(msgs.HeadingSpacef, fmt.Sprintf("%#x", first), strings.TrimSpace(line))
		out = append(out, finding.NewViolation(HeadingSpaceID, HeadingSpaceName, i+1, msg))
	}
	return out
}

// CheckTrailingWhitespace flags lines that end in a space or tab immediately
// before their newline. A final line without a newline never matches.
func CheckTrailingWhitespace(lines []string, msgs *locale.Catalog) []finding.Finding {
	msgs = messagesOrDefault(msgs)

	var out []finding.Finding
	for i, line := range lines {
		if strings.HasSuffix(line, " \n") || strings.HasSuffix(line, "\t\n") {
			out = append(out, finding.NewViolation(
				TrailingWhitespaceID, TrailingWhitespaceName, i+1, msgs.TrailingWhitespace))
		}
	}
	return out
}

// CheckTodos flags lines containing the case-sensitive substring TODO or FIXME.
func CheckTodos(lines []string, msgs *locale.Catalog) []finding.Finding {
	msgs = messagesOrDefault(msgs)

	var out []finding.Finding
	for i, line := range lines {
		if strings.Contains(line, "TODO") || strings.Contains(line, "FIXME") {
			msg := fmt.Sprintf(msgs.TodoFoundf, strings.TrimSpace(line))
			out = append(out, finding.NewViolation(TodoID, TodoName, i+1, msg))
		}
	}
	return out
}

func messagesOrDefault(msgs *locale.Catalog) *locale.Catalog {
	if msgs == nil {
		return &locale.English
	}
	return msgs
}
