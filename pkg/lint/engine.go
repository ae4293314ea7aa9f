package lint

import (
	"errors"
	"fmt"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

// Engine runs the enabled rules over a document in registry order and
// concatenates their findings.
type Engine struct {
	registry         *Registry
	messages         *locale.Catalog
	ignoreCodeBlocks bool
	disabled         map[string]bool
}

// NewEngine creates an engine over the default registry.
// Entries in cfg.Disable may be rule IDs or names; unknown entries are an error.
func NewEngine(cfg config.RulesConfig, msgs *locale.Catalog) (*Engine, error) {
	return NewEngineWithRegistry(DefaultRegistry(), cfg, msgs)
}

// NewEngineWithRegistry creates an engine over a custom registry.
func NewEngineWithRegistry(registry *Registry, cfg config.RulesConfig, msgs *locale.Catalog) (*Engine, error) {
	eng := &Engine{
		registry:         registry,
		messages:         messagesOrDefault(msgs),
		ignoreCodeBlocks: cfg.IgnoreCodeBlocks,
		disabled:         make(map[string]bool),
	}

	var errs []error
	for _, key := range cfg.Disable {
		id, err := registry.Resolve(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		eng.disabled[id] = true
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("disable rules: %w", err)
	}

	return eng, nil
}

// Rules returns the enabled rules in execution order.
func (e *Engine) Rules() []Rule {
	var out []Rule
	for _, rule := range e.registry.Rules() {
		if !e.disabled[rule.ID()] {
			out = append(out, rule)
		}
	}
	return out
}

// Lint splits text into lines and runs every enabled rule.
func (e *Engine) Lint(text string) []finding.Finding {
	ctx := &RuleContext{
		Lines:    SplitLines(text),
		Messages: e.messages,
	}
	if e.ignoreCodeBlocks {
		ctx.CodeBlockLines = CodeBlockLines([]byte(text))
	}
	return e.run(ctx)
}

// LintLines runs every enabled rule over pre-split lines.
// Code block awareness needs the full text, so it is not applied here.
func (e *Engine) LintLines(lines []string) []finding.Finding {
	return e.run(&RuleContext{Lines: lines, Messages: e.messages})
}

func (e *Engine) run(ctx *RuleContext) []finding.Finding {
	var out []finding.Finding
	for _, rule := range e.Rules() {
		out = append(out, rule.Check(ctx)...)
	}
	return out
}
