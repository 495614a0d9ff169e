package parser

import (
	"fmt"

	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/token"
)

// parseMap parses the bindings of a { ... } group.
func (p *Parser) parseMap(g *Group, recursive bool) *ast.Map {
	inner := p.enter(g)
	bindings := inner.parseBindings()
	for !inner.isAtEnd() {
		inner.errorAtCurrent(errors.ErrorUnexpectedToken, "unexpected 'in' inside an attribute set")
		inner.advance()
		bindings = append(bindings, inner.parseBindings()...)
	}

	return &ast.Map{
		Span:      g.NodeSpan(),
		Recursive: recursive,
		Bindings:  bindings,
	}
}

// parseBindings parses ';'-terminated bindings until the end of the run or
// an 'in' keyword at the same depth.
func (p *Parser) parseBindings() []ast.Binding {
	bindings := []ast.Binding{}
	seen := map[string]token.Span{}

	for !p.isAtEnd() && !p.checkKeyword("in") {
		binding := p.parseBinding()
		if binding == nil {
			continue
		}
		bindings = append(bindings, binding)
		p.checkDuplicate(binding, seen)
	}

	return bindings
}

func (p *Parser) checkDuplicate(binding ast.Binding, seen map[string]token.Span) {
	mark := func(key string, span token.Span) {
		if first, ok := seen[key]; ok {
			p.report(errors.DuplicateAttribute(key, span, first))
			return
		}
		seen[key] = span
	}

	switch b := binding.(type) {
	case *ast.BindingKeyValue:
		// a.b = 1; a.c = 2; is fine, only whole paths may collide
		if key, ok := ast.StaticKey(b.From); ok {
			mark(key, b.Span)
		}
	case *ast.BindingInherit:
		for _, attr := range b.Attributes {
			if raw, ok := attr.(*ast.PartRaw); ok {
				mark(raw.Content, raw.Span)
			}
		}
	}
}

// parseBinding parses one clause. It returns nil when not even a key could
// be read; the problem has been reported and the input skipped.
func (p *Parser) parseBinding() ast.Binding {
	start := p.currentSpan()

	if p.matchKeyword("inherit") {
		return p.parseInherit(start)
	}

	path, bad := p.parseAttrPath()
	if bad != nil {
		p.synchronize()
		if len(path) == 0 {
			return nil
		}
		return p.keyValue(start, path, bad)
	}

	if !p.match(token.EQUALS) {
		bad := p.errorAtCurrent(errors.ErrorMalformedBinding,
			fmt.Sprintf("expected '=' after '%s'", ast.AttrPath(path)))
		p.synchronize()
		return p.keyValue(start, path, bad)
	}

	value := p.parseExpr()
	if !p.match(token.SEMICOLON) {
		bad := p.errorAtCurrent(errors.ErrorMalformedBinding,
			fmt.Sprintf("expected ';' after the value of '%s'", ast.AttrPath(path)))
		p.synchronize()
		return p.keyValue(start, path, bad)
	}

	return p.keyValue(start, path, value)
}

// keyValue builds a binding whose span also covers its value. An error
// value may sit on the token the binding stopped in front of.
func (p *Parser) keyValue(start token.Span, path []ast.Part, to ast.Expr) *ast.BindingKeyValue {
	return &ast.BindingKeyValue{
		Span: token.Join(p.spanFrom(start), ast.SpanOf(to)),
		From: path,
		To:   to,
	}
}

// parseInherit parses "inherit (from)? names;" after the keyword.
func (p *Parser) parseInherit(start token.Span) ast.Binding {
	binding := &ast.BindingInherit{Attributes: []ast.Part{}}

	if g, ok := groupAt(p.peek(), token.LPAREN); ok {
		p.advance()
		if len(g.Inner()) == 0 {
			binding.From = p.errorNode(errors.ErrorExpectedExpression, "expected expression inside 'inherit ( )'", g.NodeSpan())
		} else {
			binding.From = p.enter(g).parseRun()
		}
	}

	for !p.isAtEnd() && !p.check(token.SEMICOLON) {
		part, bad := p.parseAttrName()
		if bad != nil {
			p.synchronize()
			return p.malformedInherit(binding, start, bad)
		}
		binding.Attributes = append(binding.Attributes, part)
	}

	if !p.match(token.SEMICOLON) {
		return p.malformedInherit(binding, start, p.errorAtCurrent(errors.ErrorMalformedBinding, "expected ';' after inherit"))
	}
	binding.Span = p.spanFrom(start)
	return binding
}

// malformedInherit keeps the names read so far and embeds bad as a final
// attribute so the tree carries the error.
func (p *Parser) malformedInherit(binding *ast.BindingInherit, start token.Span, bad *ast.Error) *ast.BindingInherit {
	binding.Attributes = append(binding.Attributes, &ast.PartInterpolation{Span: bad.Span, Expression: bad})
	binding.Span = token.Join(p.spanFrom(start), bad.Span)
	return binding
}

// parseAttrPath parses one or more '.'-separated attribute names. On
// failure the segments read so far are returned with the error node.
func (p *Parser) parseAttrPath() ([]ast.Part, *ast.Error) {
	var parts []ast.Part
	for {
		part, bad := p.parseAttrName()
		if bad != nil {
			return parts, bad
		}
		parts = append(parts, part)
		if !p.match(token.ATTR_SELECT) {
			return parts, nil
		}
	}
}

// parseAttrName parses a single attribute name: an identifier, a string
// or ${expr}. Static strings collapse to raw parts.
func (p *Parser) parseAttrName() (ast.Part, *ast.Error) {
	switch n := p.peek().(type) {
	case Leaf:
		tok := n.Token
		switch tok.Kind {
		case token.IDENTIFIER, token.BOOL, token.NULL:
			p.advance()
			return &ast.PartRaw{Span: tok.Span, Content: tok.Content}, nil
		case token.STRING:
			if tok.Content[0] != '"' {
				break
			}
			p.advance()
			str := p.parseQuotedString(tok)
			if len(str.Parts) == 0 {
				return &ast.PartRaw{Span: tok.Span}, nil
			}
			if raw, ok := str.Parts[0].(*ast.PartRaw); ok && len(str.Parts) == 1 {
				return &ast.PartRaw{Span: tok.Span, Content: raw.Content}, nil
			}
			return &ast.PartInterpolation{Span: tok.Span, Expression: str}, nil
		}
		return nil, p.errorAtCurrent(errors.ErrorInvalidAttrPath,
			fmt.Sprintf("expected attribute name, found '%s'", tok.Content))

	case *Group:
		if n.Kind() == token.INTERPOLATE {
			p.advance()
			if len(n.Inner()) == 0 {
				return nil, p.errorNode(errors.ErrorInvalidInterpolation, "empty interpolation", n.NodeSpan())
			}
			return &ast.PartInterpolation{Span: n.NodeSpan(), Expression: p.enter(n).parseRun()}, nil
		}
	}

	return nil, p.errorAtCurrent(errors.ErrorInvalidAttrPath, "expected attribute name")
}
