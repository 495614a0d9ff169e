package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	dim   = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	blue  = color.New(color.FgBlue).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// ErrorReporter renders diagnostics against the source text they point into
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a reporter for one file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatDiagnostic renders d in the style of rustc: a header, the location,
// the offending line between its neighbours with the span underlined, then
// suggestions, notes and help.
func (er *ErrorReporter) FormatDiagnostic(d Diagnostic) string {
	var b strings.Builder
	style := levelStyle(d.Level).SprintFunc()

	if d.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", style(string(d.Level)), d.Code, d.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", style(string(d.Level)), d.Message)
	}

	pos := d.Span.Start
	g := newGutter(pos.Line)
	fmt.Fprintf(&b, "%s %s %s:%d:%d\n", g.pad(), dim("-->"), er.filename, pos.Line, pos.Column)
	b.WriteString(g.bar())

	if line, ok := er.line(pos.Line - 1); ok {
		b.WriteString(g.source(pos.Line-1, line, dim))
	}
	if line, ok := er.line(pos.Line); ok {
		b.WriteString(g.source(pos.Line, line, bold))
		underline := strings.Repeat("^", max(1, d.Length()))
		b.WriteString(g.text(strings.Repeat(" ", max(0, pos.Column-1)) + style(underline)))
	}
	if line, ok := er.line(pos.Line + 1); ok {
		b.WriteString(g.source(pos.Line+1, line, dim))
	}

	if len(d.Suggestions) > 0 {
		b.WriteString(g.bar())
	}
	for i, s := range d.Suggestions {
		label := cyan("    ")
		if i == 0 {
			label = cyan("help") + " " + cyan("try:")
		}
		fmt.Fprintf(&b, "%s %s %s\n", g.pad(), label, s.Message)

		if s.Replacement != "" {
			b.WriteString(g.bar())
			continued := strings.ReplaceAll(s.Replacement, "\n", "\n"+g.pad()+" "+dim("│")+" ")
			fmt.Fprintf(&b, "%s %s %s\n", g.pad(), cyan("│"), cyan(continued))
		}
	}

	for _, note := range d.Notes {
		b.WriteString(g.text(blue("note:") + " " + note))
	}
	if d.HelpText != "" {
		b.WriteString(g.text(green("help:") + " " + d.HelpText))
	}

	b.WriteString("\n")
	return b.String()
}

// FormatAll formats every diagnostic in order, followed by a one-line summary
func (er *ErrorReporter) FormatAll(diagnostics []Diagnostic) string {
	var b strings.Builder
	var errs, warnings int

	for _, d := range diagnostics {
		b.WriteString(er.FormatDiagnostic(d))
		switch d.Level {
		case Error:
			errs++
		case Warning:
			warnings++
		}
	}

	if errs+warnings > 0 {
		fmt.Fprintf(&b, "%s: %d error(s), %d warning(s)\n", er.filename, errs, warnings)
	}
	return b.String()
}

// line returns the 1-based line n of the source.
func (er *ErrorReporter) line(n int) (string, bool) {
	if n < 1 || n > len(er.lines) {
		return "", false
	}
	return er.lines[n-1], true
}

func levelStyle(level ErrorLevel) *color.Color {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	case Note:
		return color.New(color.FgBlue, color.Bold)
	case Help:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

// gutter is the width of the line number column, at least three.
type gutter int

func newGutter(line int) gutter {
	return gutter(max(3, len(strconv.Itoa(line))))
}

func (g gutter) pad() string {
	return strings.Repeat(" ", int(g))
}

func (g gutter) bar() string {
	return fmt.Sprintf("%s %s\n", g.pad(), dim("│"))
}

func (g gutter) text(s string) string {
	return fmt.Sprintf("%s %s %s\n", g.pad(), dim("│"), s)
}

func (g gutter) source(n int, line string, number func(...any) string) string {
	return fmt.Sprintf("%s %s %s\n", number(fmt.Sprintf("%*d", int(g), n)), dim("│"), line)
}
