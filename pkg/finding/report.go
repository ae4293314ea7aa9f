package finding

// Scope records which sources were requested when a report was built.
type Scope int

const (
	// ScopeRules is a report from the rule engine alone.
	ScopeRules Scope = iota
	// ScopeAdvisory is a report from the model alone.
	ScopeAdvisory
	// ScopeMerged combines both sources.
	ScopeMerged
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeRules:
		return "rules"
	case ScopeAdvisory:
		return "advisory"
	case ScopeMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// IncludesRules reports whether the rule engine ran for this report.
func (s Scope) IncludesRules() bool {
	return s == ScopeRules || s == ScopeMerged
}

// IncludesAdvisory reports whether the model was consulted for this report.
func (s Scope) IncludesAdvisory() bool {
	return s == ScopeAdvisory || s == ScopeMerged
}

// Report is the ordered collection of findings from one check invocation.
// Order is detection order and is significant.
type Report struct {
	// Path is the file the report describes. Empty for unsaved buffers.
	Path string

	// Scope records which sources were requested.
	Scope Scope

	// Findings in detection order.
	Findings []Finding
}

// Len returns the number of findings.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Findings)
}

// Empty reports whether the report has no findings.
func (r *Report) Empty() bool {
	return r.Len() == 0
}

// OfKind returns the findings of the given kind, preserving order.
func (r *Report) OfKind(kind Kind) []Finding {
	if r == nil {
		return nil
	}
	var out []Finding
	for _, f := range r.Findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// FromSource returns the findings produced by the given source.
func (r *Report) FromSource(source Source) []Finding {
	if r == nil {
		return nil
	}
	var out []Finding
	for _, f := range r.Findings {
		if f.Source == source {
			out = append(out, f)
		}
	}
	return out
}

// CountBySource returns the number of findings per source.
func (r *Report) CountBySource() map[Source]int {
	counts := map[Source]int{SourceRules: 0, SourceAdvisory: 0}
	if r == nil {
		return counts
	}
	for _, f := range r.Findings {
		counts[f.Source]++
	}
	return counts
}
