package parser

import (
	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/token"
)

// ParseResult contains the full parsing result including intermediate stages
type ParseResult struct {
	Source      string
	Tokens      []token.Token
	Tree        TokenTree
	Expr        ast.Expr
	Diagnostics []errors.Diagnostic
}

// HasErrors reports whether any diagnostic is an error rather than a warning
func (pr *ParseResult) HasErrors() bool {
	for _, d := range pr.Diagnostics {
		if d.Level == errors.Error {
			return true
		}
	}
	return false
}

// NodeAt returns the innermost node whose span contains offset, or nil
func (pr *ParseResult) NodeAt(offset int) ast.Node {
	var found ast.Node
	ast.Inspect(pr.Expr, func(n ast.Node) bool {
		span := ast.SpanOf(n)
		if offset < span.Start.Offset || offset >= span.End.Offset {
			return false
		}
		found = n
		return true
	})
	return found
}

// TokenAt returns the token covering offset
func (pr *ParseResult) TokenAt(offset int) (token.Token, bool) {
	for _, tok := range pr.Tokens {
		if tok.Span.Start.Offset <= offset && offset < tok.Span.End.Offset {
			return tok, true
		}
	}
	return token.Token{}, false
}
