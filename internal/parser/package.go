package parser

import (
	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/token"
)

// Parse runs the lexer, the bracket grouper and the AST builder on source.
// Lexical and bracket errors are fatal and returned as *errors.LexError or
// *errors.SyntaxError; grammar errors are embedded as *ast.Error nodes and
// listed in the diagnostics.
func Parse(source string) (ast.Expr, []errors.Diagnostic, error) {
	result, err := ParseSource(source)
	if err != nil {
		return nil, nil, err
	}
	return result.Expr, result.Diagnostics, nil
}

// ParseSource is Parse keeping the intermediate tokens and tree.
func ParseSource(source string) (*ParseResult, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}

	tree, err := GroupTokens(tokens)
	if err != nil {
		return nil, err
	}

	end := advancePosition(token.Position{Line: 1, Column: 1}, source)
	expr, diagnostics, err := Build(tree, end)
	if err != nil {
		return nil, err
	}

	return &ParseResult{
		Source:      source,
		Tokens:      tokens,
		Tree:        tree,
		Expr:        expr,
		Diagnostics: diagnostics,
	}, nil
}
