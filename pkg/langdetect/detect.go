// Package langdetect names the language of fenced code blocks for the
// preview, so that unlabeled fences still get a syntax class.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// Mermaid is the fence tag rendered as a diagram instead of code.
const Mermaid = "mermaid"

// classifierCandidates limits the enry classifier to languages commonly
// found in documentation.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// pattern is a cheap textual signal checked before the classifier.
type pattern struct {
	lang  string
	match func(content, trimmed []byte) bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []pattern{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(content, _ []byte) bool {
		return (bytes.Contains(content, []byte("def ")) && bytes.Contains(content, []byte("):"))) ||
			bytes.Contains(content, []byte("__name__"))
	}},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.Contains(lower, []byte("<!doctype html")) || bytes.Contains(lower, []byte("<html"))
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM "))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := bytes.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if bytes.HasPrefix(upper, []byte(kw)) {
				return true
			}
		}
		return false
	}},
	{"yaml", func(content, _ []byte) bool {
		return yamlKeys(content) >= 2
	}},
}

// ForFence returns the language class for a fenced block. A non-empty info
// string wins and is canonicalized through enry's alias table; otherwise the
// content is inspected.
func ForFence(info string, content []byte) string {
	tag := strings.ToLower(strings.TrimSpace(info))
	if fields := strings.Fields(tag); len(fields) > 0 {
		tag = fields[0]
	}
	if tag == "" {
		return Detect(content)
	}
	if tag == Mermaid {
		return Mermaid
	}
	if lang, ok := enry.GetLanguageByAlias(tag); ok {
		return normalize(lang)
	}
	return tag
}

// Detect guesses the language of code content: shebang first, then textual
// patterns, then the enry classifier when it is confident. Anything else is
// Text.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, p := range patterns {
		if p.match(content, trimmed) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Text
}

func yamlKeys(content []byte) int {
	var count int
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("- ")) ||
			(bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({\"")) {
			count++
		}
	}
	return count
}

// normalize converts enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
