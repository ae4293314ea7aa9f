package reporter

import (
	"fmt"

	"github.com/yaklabco/mdcheck/internal/ui/pretty"
	"github.com/yaklabco/mdcheck/pkg/finding"
	"github.com/yaklabco/mdcheck/pkg/locale"
)

// Class separates the two colors of the issue list.
type Class int

const (
	ClassRule Class = iota
	ClassAdvisory
)

// String returns the class name.
func (c Class) String() string {
	if c == ClassAdvisory {
		return "advisory"
	}
	return "rule"
}

// Color returns the display color of the class.
func (c Class) Color() string {
	if c == ClassAdvisory {
		return pretty.AdvisoryColor
	}
	return pretty.RuleColor
}

// LineJumper moves an editor view to a 1-based line.
type LineJumper interface {
	JumpToLine(line int)
}

// Item is one entry of the issue list.
type Item struct {
	Text     string
	Line     int
	Jumpable bool
	Class    Class
	Color    string
}

// Activate jumps to the item's line. Items without a line do nothing.
func (it Item) Activate(target LineJumper) {
	if !it.Jumpable || target == nil {
		return
	}
	target.JumpToLine(it.Line)
}

// List is the issue list for one report.
type List struct {
	Items []Item

	// EmptyText is the placeholder shown when the rules ran and found
	// nothing. It is not an item and cannot be activated.
	EmptyText string
}

// Len returns the number of items.
func (l List) Len() int {
	return len(l.Items)
}

// Items builds one list item per finding, in report order.
func Items(report *finding.Report, msgs *locale.Catalog) List {
	if msgs == nil {
		msgs = &locale.English
	}

	list := List{Items: make([]Item, 0, report.Len())}
	if report == nil {
		return list
	}
	for _, f := range report.Findings {
		list.Items = append(list.Items, newItem(f, msgs))
	}
	if report.Scope.IncludesRules() && len(report.OfKind(finding.RuleViolation)) == 0 {
		list.EmptyText = msgs.NoIssuesItem
	}
	return list
}

func newItem(f finding.Finding, msgs *locale.Catalog) Item {
	class := ClassRule
	if f.IsAdvisory() {
		class = ClassAdvisory
	}
	return Item{
		Text:     itemText(f, msgs),
		Line:     f.Line,
		Jumpable: f.HasLine(),
		Class:    class,
		Color:    class.Color(),
	}
}

func itemText(f finding.Finding, msgs *locale.Catalog) string {
	switch f.Kind {
	case finding.RuleViolation:
		return fmt.Sprintf(msgs.LinePrefixf, f.Line) + f.Message
	case finding.AdvisoryTerm:
		return msgs.TermLabel + " " + f.Message
	case finding.AdvisoryInconsistency:
		return msgs.InconsistencyLabel + " " + f.Message
	case finding.AdvisorySuggestion:
		return msgs.SuggestionLabel + " " + f.Message
	case finding.AdvisoryError:
		return "❌ " + f.Message
	default:
		return f.Message
	}
}
