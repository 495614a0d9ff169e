package grammar

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"gnix/internal/errors"
	"gnix/token"
)

var selectorParser = participle.MustBuild[Selector](
	participle.Lexer(SelectorLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace"),
)

// ParseSelector parses a dotted attribute path.
func ParseSelector(text string) (*Selector, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty selector")
	}
	return selectorParser.ParseString("selector", text)
}

// Diagnostic converts a ParseSelector error into an E0901 diagnostic
// positioned inside the selector text.
func Diagnostic(err error) errors.Diagnostic {
	var span token.Span
	message := err.Error()

	var pe participle.Error
	if stderrors.As(err, &pe) {
		pos := position(pe.Position())
		if pos.Line == 0 {
			pos = token.Position{Line: 1, Column: 1}
		}
		end := pos
		end.Column++
		end.Offset++
		span = token.Span{Start: pos, End: end}
		message = pe.Message()
	} else {
		span = token.Span{Start: token.Position{Line: 1, Column: 1}, End: token.Position{Line: 1, Column: 2, Offset: 1}}
	}

	return errors.NewError(errors.ErrorInvalidSelector, "invalid selector: "+message, span).
		WithHelp(`separate names with '.' and quote names that contain dots, e.g. a."b.c"`).
		Build()
}
