package lint

import (
	"errors"
	"fmt"
)

// ErrUnknownRule is returned when a rule key matches no registered rule.
var ErrUnknownRule = errors.New("unknown rule")

// Registry holds rules in their execution order.
type Registry struct {
	ordered []Rule
	byID    map[string]Rule
	byName  map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Rule),
		byName: make(map[string]Rule),
	}
}

// DefaultRegistry returns the built-in rules in their fixed order:
// heading spacing, trailing whitespace, TODO/FIXME.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(NewHeadingSpaceRule())
	reg.Register(NewTrailingWhitespaceRule())
	reg.Register(NewTodoRule())
	return reg
}

// Register appends a rule. A rule with the same ID replaces the earlier one
// in place, keeping its position.
func (r *Registry) Register(rule Rule) {
	if old, ok := r.byID[rule.ID()]; ok {
		delete(r.byName, old.Name())
		for i, existing := range r.ordered {
			if existing.ID() == rule.ID() {
				r.ordered[i] = rule
			}
		}
	} else {
		r.ordered = append(r.ordered, rule)
	}
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
}

// Get retrieves a rule by ID or name.
// It tries ID first, then falls back to name lookup.
func (r *Registry) Get(key string) (Rule, bool) {
	if rule, ok := r.byID[key]; ok {
		return rule, true
	}
	rule, ok := r.byName[key]
	return rule, ok
}

// Resolve returns the canonical ID for a rule ID or name.
func (r *Registry) Resolve(key string) (string, error) {
	rule, ok := r.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRule, key)
	}
	return rule.ID(), nil
}

// Rules returns all registered rules in execution order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.ordered)
}
