package parser

import (
	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/token"
)

func (p *Parser) advance() TreeNode {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() TreeNode {
	return p.peekAt(0)
}

func (p *Parser) peekAt(offset int) TreeNode {
	if p.current+offset >= len(p.nodes) {
		return nil
	}
	return p.nodes[p.current+offset]
}

func (p *Parser) previous() TreeNode {
	return p.nodes[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.nodes)
}

func leafAt(node TreeNode, kind token.Kind) bool {
	leaf, ok := node.(Leaf)
	return ok && leaf.Token.Kind == kind
}

func groupAt(node TreeNode, kind token.Kind) (*Group, bool) {
	g, ok := node.(*Group)
	if !ok || g.Kind() != kind {
		return nil, false
	}
	return g, true
}

func (p *Parser) check(kind token.Kind) bool {
	return leafAt(p.peek(), kind)
}

func (p *Parser) checkKeyword(word string) bool {
	leaf, ok := p.peek().(Leaf)
	return ok && leaf.Token.Is(word)
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) matchKeyword(word string) bool {
	if p.checkKeyword(word) {
		p.advance()
		return true
	}
	return false
}

// previousToken returns the token just consumed. It must be a leaf.
func (p *Parser) previousToken() token.Token {
	return p.previous().(Leaf).Token
}

// currentSpan is the span of the next node, or an empty span at the end of the run.
func (p *Parser) currentSpan() token.Span {
	if node := p.peek(); node != nil {
		return node.NodeSpan()
	}
	return token.Span{Start: p.end, End: p.end}
}

func (p *Parser) report(d errors.Diagnostic) {
	p.state.diagnostics = append(p.state.diagnostics, d)
}

func (p *Parser) fail(err error) {
	if p.state.fatal == nil {
		p.state.fatal = err
	}
}

// errorNode records a grammar error and returns the node standing in for it.
func (p *Parser) errorNode(code, message string, span token.Span) *ast.Error {
	p.report(errors.NewError(code, message, span).Build())
	return &ast.Error{Span: span, Message: message}
}

func (p *Parser) errorAtCurrent(code, message string) *ast.Error {
	return p.errorNode(code, message, p.currentSpan())
}

func (p *Parser) errorAtEnd(code, message string) *ast.Error {
	return p.errorNode(code, message, token.Span{Start: p.end, End: p.end})
}

// isTerminator reports whether node closes an enclosing construct and so
// must be left for the caller.
func isTerminator(node TreeNode) bool {
	leaf, ok := node.(Leaf)
	if !ok {
		return false
	}
	switch leaf.Token.Kind {
	case token.SEMICOLON, token.COMMA:
		return true
	case token.KEYWORD:
		switch leaf.Token.Content {
		case "then", "else", "in":
			return true
		}
	}
	return false
}

// synchronize skips to just past the next ';' of this run, stopping early
// in front of 'in' so an enclosing let can still finish.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.checkKeyword("in") {
			return
		}
		if p.match(token.SEMICOLON) {
			return
		}
		p.advance()
	}
}

// spanFrom covers everything from start up to the last consumed node.
func (p *Parser) spanFrom(start token.Span) token.Span {
	if p.current == 0 {
		return start
	}
	return token.Join(start, p.previous().NodeSpan())
}
