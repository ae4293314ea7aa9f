package pretty_test

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
)

func TestCenter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "==ab=="},
		{"abc", 6, "=abc=="},
		{"ab", 5, "==ab="},
		{"abc", 5, "=abc="},
		{"a", 4, "=a=="},
		{"a", 5, "==a=="},
		{"toolong", 4, "toolong"},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, pretty.Center(testCase.text, testCase.width, '='),
			"Center(%q, %d)", testCase.text, testCase.width)
	}
}

func TestCenterCountsRunes(t *testing.T) {
	t.Parallel()

	title := " 🔍 解析レポート (ルール) "
	got := pretty.Center(title, pretty.BannerWidth, '=')

	assert.Equal(t, pretty.BannerWidth, utf8.RuneCountInString(got))
	assert.True(t, strings.HasPrefix(got, "="))
	assert.Contains(t, got, title)
}

func TestFitWidth(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.Equal(t, 60, pretty.FitWidth(60, &buf))
	assert.Equal(t, 0, pretty.TerminalWidth(&buf))
	assert.Equal(t, "=====", pretty.HorizontalRule(5, '='))
}
