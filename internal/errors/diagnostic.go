package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"gnix/token"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Diagnostic is a structured, positioned message about a source file
type Diagnostic struct {
	Level       ErrorLevel
	Code        string       // Error code like E0300
	Message     string       // Primary message
	Span        token.Span   // Location in source
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the diagnostic
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string // Description of the suggestion
	Replacement string // Suggested replacement text (optional)
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span.Start, d.Level, d.Code, d.Message)
}

// Length is the number of bytes the diagnostic covers on its first line.
func (d Diagnostic) Length() int {
	if d.Span.End.Line != d.Span.Start.Line {
		return 1
	}
	return d.Span.End.Offset - d.Span.Start.Offset
}

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	d Diagnostic
}

// NewError starts an error-level diagnostic
func NewError(code, message string, span token.Span) *DiagnosticBuilder {
	return &DiagnosticBuilder{d: Diagnostic{Level: Error, Code: code, Message: message, Span: span}}
}

// NewWarning starts a warning-level diagnostic
func NewWarning(code, message string, span token.Span) *DiagnosticBuilder {
	return &DiagnosticBuilder{d: Diagnostic{Level: Warning, Code: code, Message: message, Span: span}}
}

// WithSuggestion adds a suggestion to the diagnostic
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.d.Suggestions = append(b.d.Suggestions, Suggestion{Message: message, Replacement: replacement})
	return b
}

// WithNote adds a note to the diagnostic
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

// WithHelp sets the help text
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.d.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.d
}

// DuplicateAttribute warns about a key assigned twice in one attribute set
func DuplicateAttribute(key string, span, first token.Span) Diagnostic {
	return NewWarning(WarningDuplicateAttribute, fmt.Sprintf("attribute '%s' already defined", key), span).
		WithNote(fmt.Sprintf("first definition at %s", first.Start)).
		WithSuggestion("merge both definitions into one attribute set").
		Build()
}

// UnknownKey reports a selector that matched nothing, listing close candidates
func UnknownKey(key string, span token.Span, similar []string) Diagnostic {
	b := NewError(ErrorUnknownKey, fmt.Sprintf("no binding named '%s'", key), span)

	switch len(similar) {
	case 0:
	case 1:
		b = b.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		b = b.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	return b.Build()
}

// LexError is raised when no lexical pattern matches. Tokenizing stops there.
type LexError struct {
	Code     string
	Message  string
	Position token.Position
	Text     string // offending input, at least one byte when available
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// Diagnostic converts the error for reporting.
func (e *LexError) Diagnostic() Diagnostic {
	end := e.Position
	end.Offset += max(1, len(e.Text))
	end.Column += max(1, len(e.Text))
	return NewError(e.Code, e.Message, token.Span{Start: e.Position, End: end}).Build()
}

// SyntaxError is raised by the bracket grouper on mismatched or unterminated brackets.
type SyntaxError struct {
	Code     string
	Message  string
	Position token.Position
	Opener   *token.Token // the unmatched opening bracket, if any
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

// Diagnostic converts the error for reporting.
func (e *SyntaxError) Diagnostic() Diagnostic {
	end := e.Position
	end.Offset++
	end.Column++
	b := NewError(e.Code, e.Message, token.Span{Start: e.Position, End: end})
	if e.Opener != nil && e.Opener.Span.Start != e.Position {
		b = b.WithNote(fmt.Sprintf("'%s' opened at %s", e.Opener.Content, e.Opener.Span.Start))
	}
	return b.Build()
}

// AsDiagnostic converts a fatal parse error into a diagnostic.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var lexErr *LexError
	if stderrors.As(err, &lexErr) {
		return lexErr.Diagnostic(), true
	}
	var syntaxErr *SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return syntaxErr.Diagnostic(), true
	}
	return Diagnostic{}, false
}
