// Package lint provides the rule engine for mdcheck: three deterministic
// line-based checks, their registry, and the engine that runs them in order.
package lint

import (
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

// RuleContext carries everything a rule needs to check one document.
type RuleContext struct {
	// Lines is the document split by SplitLines.
	Lines []string

	// Messages is the catalog used to build finding messages.
	Messages *locale.Catalog

	// CodeBlockLines holds the 1-based lines inside code blocks.
	// It is nil unless the engine was configured to ignore code blocks.
	CodeBlockLines map[int]bool
}

// Rule defines the interface that all checks implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "MDC001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns what the rule checks.
	Description() string

	// Check runs the rule and returns violations in line order.
	// Rules are total over any input and never mutate ctx.Lines.
	Check(ctx *RuleContext) []finding.Finding
}

// BaseRule provides the metadata half of the Rule interface.
// Embed this in rule implementations.
type BaseRule struct {
	id   string
	name string
	desc string
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string) BaseRule {
	return BaseRule{id: id, name: name, desc: desc}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// HeadingSpaceRule wraps CheckHeaderSpacing.
type HeadingSpaceRule struct {
	BaseRule
}

// NewHeadingSpaceRule creates the heading spacing rule.
func NewHeadingSpaceRule() *HeadingSpaceRule {
	return &HeadingSpaceRule{
		BaseRule: NewBaseRule(HeadingSpaceID, HeadingSpaceName,
			"Heading markers must be followed by whitespace"),
	}
}

// Check runs the heading check, dropping lines inside code blocks when the
// context carries a code block line set.
func (r *HeadingSpaceRule) Check(ctx *RuleContext) []finding.Finding {
	found := CheckHeaderSpacing(ctx.Lines, ctx.Messages)
	if ctx.CodeBlockLines == nil {
		return found
	}

	kept := found[:0]
	for _, f := range found {
		if !ctx.CodeBlockLines[f.Line] {
			kept = append(kept, f)
		}
	}
	return kept
}

// TrailingWhitespaceRule wraps CheckTrailingWhitespace.
type TrailingWhitespaceRule struct {
	BaseRule
}

// NewTrailingWhitespaceRule creates the trailing whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: NewBaseRule(TrailingWhitespaceID, TrailingWhitespaceName,
			"Lines should not end with spaces or tabs"),
	}
}

// Check runs the trailing whitespace check.
func (r *TrailingWhitespaceRule) Check(ctx *RuleContext) []finding.Finding {
	return CheckTrailingWhitespace(ctx.Lines, ctx.Messages)
}

// TodoRule wraps CheckTodos.
type TodoRule struct {
	BaseRule
}

// NewTodoRule creates the TODO/FIXME rule.
func NewTodoRule() *TodoRule {
	return &TodoRule{
		BaseRule: NewBaseRule(TodoID, TodoName, "Documents should not contain TODO or FIXME markers"),
	}
}

// Check runs the TODO/FIXME check.
func (r *TodoRule) Check(ctx *RuleContext) []finding.Finding {
	return CheckTodos(ctx.Lines, ctx.Messages)
}
