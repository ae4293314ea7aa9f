package session

import "strings"

// Document is the editor buffer: the Markdown text, a byte-offset cursor and
// the line the view should keep visible.
type Document struct {
	text        string
	cursor      int
	visibleLine int
}

// NewDocument creates a document with the cursor at the start.
func NewDocument(text string) *Document {
	return &Document{text: text, visibleLine: 1}
}

// Text returns the buffer contents.
func (d *Document) Text() string {
	return d.text
}

// SetText replaces the buffer. The cursor is kept when it still fits.
func (d *Document) SetText(text string) {
	d.text = text
	if d.cursor > len(text) {
		d.cursor = len(text)
	}
	if d.visibleLine > d.LineCount() {
		d.visibleLine = d.LineCount()
	}
}

// Cursor returns the byte offset of the cursor.
func (d *Document) Cursor() int {
	return d.cursor
}

// VisibleLine returns the 1-based line the view is centered on.
func (d *Document) VisibleLine() int {
	return d.visibleLine
}

// LineCount returns the number of lines. An empty buffer has one line.
func (d *Document) LineCount() int {
	return strings.Count(d.text, "\n") + 1
}

// JumpToLine moves the cursor to the start of the 1-based line n and makes
// it the visible line. Out-of-range lines clamp to the first or last line.
func (d *Document) JumpToLine(n int) {
	n = max(1, min(n, d.LineCount()))

	offset := 0
	for line := 1; line < n; line++ {
		next := strings.IndexByte(d.text[offset:], '\n')
		if next < 0 {
			break
		}
		offset += next + 1
	}

	d.cursor = offset
	d.visibleLine = n
}

// LineAt returns the 1-based line containing the cursor.
func (d *Document) LineAt() int {
	return strings.Count(d.text[:d.cursor], "\n") + 1
}
