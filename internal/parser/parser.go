package parser

import (
	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/token"
)

// Parser builds an expression tree from one run of a TokenTree. Nested
// groups are parsed by child parsers that share the same state.
type Parser struct {
	nodes   TokenTree
	current int
	end     token.Position // where the run stops, used for errors at end of input
	state   *parseState
}

type parseState struct {
	diagnostics []errors.Diagnostic
	fatal       error // first lexical or bracket error from an interpolation
}

// Build turns a token tree into an expression. Grammar problems become
// *ast.Error nodes and diagnostics; the returned error is set only when an
// interpolated expression could not be tokenized or grouped.
func Build(tree TokenTree, end token.Position) (ast.Expr, []errors.Diagnostic, error) {
	p := &Parser{nodes: tree, end: end, state: &parseState{}}

	var expr ast.Expr
	if len(tree) == 0 {
		expr = p.emptyInput()
	} else {
		expr = p.parseRun()
	}

	if p.state.fatal != nil {
		return nil, nil, p.state.fatal
	}
	return expr, p.state.diagnostics, nil
}

// enter returns a parser over the inside of g.
func (p *Parser) enter(g *Group) *Parser {
	return &Parser{nodes: g.Inner(), end: g.Close().Span.Start, state: p.state}
}

// parseRun parses a complete run: the whole input, a parenthesised group
// or an interpolation body. Anything after the expression is reported and dropped.
func (p *Parser) parseRun() ast.Expr {
	expr := p.parseExpr()

	if !p.isAtEnd() {
		first := p.peek()
		span := token.Join(first.NodeSpan(), p.nodes[len(p.nodes)-1].NodeSpan())
		message := "unexpected tokens after expression"
		if leaf, ok := first.(Leaf); ok && leaf.Token.Is("or") {
			message = "'or' is only valid after an attribute selection"
		}
		p.report(errors.NewError(errors.ErrorTrailingTokens, message, span).
			WithHelp("wrap the expression in parentheses or add the missing operator").
			Build())
		p.current = len(p.nodes)
	}

	return expr
}

func (p *Parser) emptyInput() ast.Expr {
	span := token.Span{Start: p.end, End: p.end}
	p.report(errors.NewWarning(errors.WarningEmptyExpression, "input contains no expression", span).Build())
	return &ast.Error{Span: span, Message: "empty expression"}
}

// parseExpr parses a full expression, including functions and the
// keyword constructs that extend as far right as possible.
func (p *Parser) parseExpr() ast.Expr {
	if p.isAtEnd() {
		return p.errorAtEnd(errors.ErrorExpectedExpression, "expected expression")
	}

	if p.isSimpleHead() {
		return p.parseSimpleFunction()
	}
	if g, name, ok := p.destructuredHead(); ok {
		return p.parseDestructuredFunction(g, name)
	}

	if leaf, ok := p.peek().(Leaf); ok && leaf.Token.Kind == token.KEYWORD {
		switch leaf.Token.Content {
		case "assert":
			return p.parseAssert()
		case "with":
			return p.parseWith()
		case "let":
			return p.parseLetIn()
		case "if":
			return p.parseIfThenElse()
		}
	}

	return p.parseBinaryExpr(0)
}
