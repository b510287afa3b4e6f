// Package errz defines the error context shared by every stage of the TFMT
// pipeline and renders it as a caret-pointed diagnostic.
package errz

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/tagfmt/tfmt/internal/token"
)

// Context points at the place in a script where an error occurred.
type Context struct {
	Source string // the complete script text
	Line   int    // 1-based line number
	Column int    // 1-based column number, counted in graphemes
}

// NewContext returns a Context for the given position in source.
func NewContext(source string, pos token.Position) Context {
	return Context{
		Source: source,
		Line:   pos.LineNumber(),
		Column: pos.ColumnNumber(),
	}
}

// IsZero returns true if the context has not been set.
func (c Context) IsZero() bool {
	return c.Line == 0 && c.Column == 0
}

// SourceLine returns the text of the line the context points at.
func (c Context) SourceLine() string {
	if c.Line < 1 {
		return ""
	}
	lines := strings.Split(c.Source, "\n")
	if c.Line > len(lines) {
		return ""
	}
	return lines[c.Line-1]
}

// caretPadding returns the whitespace that places a caret under Column.
// Tabs in the source line are kept so the caret lines up in a terminal.
func (c Context) caretPadding() string {
	var b strings.Builder
	gr := uniseg.NewGraphemes(c.SourceLine())
	for n := 1; n < c.Column; n++ {
		if gr.Next() && gr.Str() == "\t" {
			b.WriteString("\t")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// Header returns the location line of the diagnostic.
func (c Context) Header() string {
	return fmt.Sprintf("Error at line %d, col %d:", c.Line, c.Column)
}

// String renders the offending source line, a caret under the offending
// column and the location header.
func (c Context) String() string {
	var b strings.Builder
	b.WriteString(c.SourceLine())
	b.WriteString("\n")
	b.WriteString(c.caretPadding())
	b.WriteString("^\n")
	b.WriteString(c.Header())
	return b.String()
}
