package advisory

import "strings"

// Term is a proper noun, product name, or acronym the model picked out.
type Term struct {
	Surface string `json:"surface"`
	Note    string `json:"note"`
}

// Inconsistency is a pair of spellings the model believes refer to the same
// thing. Kind is one of "proper_noun", "style", or "term" in practice, but
// any string is accepted.
type Inconsistency struct {
	Kind string `json:"type"`
	A    string `json:"a"`
	B    string `json:"b"`
	Note string `json:"note"`
}

// Result is the structured advice for one document. After parsing, the three
// slices are never nil.
type Result struct {
	Terms           []Term          `json:"terms"`
	Inconsistencies []Inconsistency `json:"inconsistencies"`
	Suggestions     []string        `json:"suggestions"`
}

// Len returns the total number of entries.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Terms) + len(r.Inconsistencies) + len(r.Suggestions)
}

// normalize replaces nil slices with empty ones and drops blank suggestions,
// which is what a null suggestion decodes to.
func (r *Result) normalize() *Result {
	if r.Terms == nil {
		r.Terms = []Term{}
	}
	if r.Inconsistencies == nil {
		r.Inconsistencies = []Inconsistency{}
	}
	suggestions := make([]string, 0, len(r.Suggestions))
	for _, suggestion := range r.Suggestions {
		if strings.TrimSpace(suggestion) != "" {
			suggestions = append(suggestions, suggestion)
		}
	}
	r.Suggestions = suggestions
	return r
}

// diagnosticResult is the substitute for a response that could not be parsed.
func diagnosticResult(message string) *Result {
	return &Result{
		Terms:           []Term{},
		Inconsistencies: []Inconsistency{},
		Suggestions:     []string{message},
	}
}
