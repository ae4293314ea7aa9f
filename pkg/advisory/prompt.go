package advisory

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Truncate returns at most maxChars characters (runes) of text.
// A non-positive budget returns text unchanged.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}
	return text
}

// SystemPrompt builds the system instruction. languageName is the English
// name of the language notes and suggestions must be written in.
func SystemPrompt(languageName string) string {
	var b strings.Builder
	b.WriteString("You are a strict proofreading assistant for technical Markdown.\n")
	b.WriteString("Return ONLY valid JSON. No prose.\n")
	b.WriteString("Do NOT rewrite the text. Only list candidates and hints.\n")
	fmt.Fprintf(&b, "IMPORTANT: The values for 'note' and 'suggestions' MUST be in **%s**.\n", languageName)
	b.WriteString("JSON schema:\n")
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  \"terms\": [{\"surface\":\"...\", \"note\":\"(%s explanation)\"}],\n", languageName)
	fmt.Fprintf(&b,
		"  \"inconsistencies\": [{\"type\":\"proper_noun|style|term\", \"a\":\"...\", \"b\":\"...\", \"note\":\"(%s explanation)\"}],\n",
		languageName)
	fmt.Fprintf(&b, "  \"suggestions\": [\"(%s suggestion)...\"]\n", languageName)
	b.WriteString("}\n")
	return b.String()
}

// UserPrompt embeds the Markdown between fence lines.
func UserPrompt(markdown string) string {
	var b strings.Builder
	b.WriteString("Analyze the following Markdown and list:\n")
	b.WriteString("- proper nouns / product names / acronyms candidates\n")
	b.WriteString("- possible spelling inconsistencies\n")
	b.WriteString("- short suggestions (max 5)\n\n")
	b.WriteString("Markdown:\n")
	b.WriteString("-----\n")
	b.WriteString(markdown)
	b.WriteString("\n-----\n")
	return b.String()
}

// CleanJSONBlock removes Markdown code fence wrappers from model output.
// Models often wrap JSON in ```json ... ``` blocks even when told not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if !strings.ContainsAny(firstLine, " {[") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
