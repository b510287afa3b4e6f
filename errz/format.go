package errz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders errors as caret-pointed diagnostics, optionally with
// ANSI colours.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting
var (
	colorHeader = []color.Attribute{color.FgRed, color.Bold}
	colorCaret  = []color.Attribute{color.FgHiRed, color.Bold}
	colorSource = []color.Attribute{color.FgWhite}
	colorTitle  = []color.Attribute{color.FgHiRed, color.Bold}
)

func (f *Formatter) paint(attrs []color.Attribute, s string) string {
	if !f.UseColor {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Format renders err. Errors that carry a Context are rendered as the source
// line, a caret under the offending column and an "Error at line L, col C:"
// header followed by the message. Other errors are rendered as plain text.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}
	var located Located
	if !errors.As(err, &located) || located.ErrorContext().IsZero() {
		return f.paint(colorTitle, "error:") + " " + err.Error()
	}
	ctx := located.ErrorContext()
	var b strings.Builder
	b.WriteString(f.paint(colorSource, ctx.SourceLine()))
	b.WriteString("\n")
	b.WriteString(ctx.caretPadding())
	b.WriteString(f.paint(colorCaret, "^"))
	b.WriteString("\n")
	b.WriteString(f.paint(colorHeader, ctx.Header()))
	b.WriteString(" ")
	b.WriteString(located.Message())
	return b.String()
}

// FormatMultiple formats multiple errors, separated by blank lines and
// followed by a summary line.
func (f *Formatter) FormatMultiple(errs []error) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return f.Format(errs[0])
	}
	var b strings.Builder
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(f.Format(err))
	}
	b.WriteString("\n\n")
	b.WriteString(f.paint(colorTitle, fmt.Sprintf("found %d errors", len(errs))))
	return b.String()
}
