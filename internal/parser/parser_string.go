package parser

import (
	"math"
	"strings"

	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/token"
)

// piece is a fragment of a string body before parts are merged.
type piece struct {
	text    string
	escaped bool     // produced by an escape sequence, never stripped as indentation
	expr    ast.Expr // set for ${...}
	span    token.Span
}

func (pc piece) literal() bool {
	return pc.expr == nil && !pc.escaped
}

// advancePosition moves pos over text.
func advancePosition(pos token.Position, text string) token.Position {
	for i := 0; i < len(text); i++ {
		pos.Offset++
		if text[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}

// positions maps byte indexes of one body to positions. Indexes must be
// requested in non-decreasing order.
type positions struct {
	src string
	idx int
	pos token.Position
}

func (t *positions) at(i int) token.Position {
	t.pos = advancePosition(t.pos, t.src[t.idx:i])
	t.idx = i
	return t.pos
}

func (p *Parser) parseStringLiteral(tok token.Token) ast.Expr {
	if strings.HasPrefix(tok.Content, "''") {
		body := tok.Content[2 : len(tok.Content)-2]
		pieces := p.scanPieces(body, advancePosition(tok.Span.Start, "''"), true)
		return &ast.IndentedString{Span: tok.Span, Parts: joinPieces(stripIndentation(pieces))}
	}

	return p.parseQuotedString(tok)
}

// parseQuotedString parses a "..." literal.
func (p *Parser) parseQuotedString(tok token.Token) *ast.String {
	body := tok.Content[1 : len(tok.Content)-1]
	pieces := p.scanPieces(body, advancePosition(tok.Span.Start, `"`), false)
	return &ast.String{Span: tok.Span, Parts: joinPieces(pieces)}
}

func (p *Parser) parsePathLiteral(tok token.Token) ast.Expr {
	return &ast.Path{Span: tok.Span, Parts: joinPieces(p.scanPieces(tok.Content, tok.Span.Start, false))}
}

func unescape(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 'r':
		return "\r"
	case 't':
		return "\t"
	}
	return string(c)
}

// scanPieces splits a literal body into text, escapes and interpolations.
// Each ${...} is run through the whole pipeline with absolute positions.
func (p *Parser) scanPieces(body string, origin token.Position, indented bool) []piece {
	var pieces []piece
	pos := &positions{src: body, pos: origin}
	litStart := 0

	flush := func(end int) {
		if end > litStart {
			span := token.Span{Start: pos.at(litStart), End: pos.at(end)}
			pieces = append(pieces, piece{text: body[litStart:end], span: span})
		}
	}
	escape := func(i, n int, text string) int {
		flush(i)
		span := token.Span{Start: pos.at(i), End: pos.at(i + n)}
		pieces = append(pieces, piece{text: text, escaped: true, span: span})
		litStart = i + n
		return litStart
	}

	for i := 0; i < len(body); {
		switch {
		case !indented && body[i] == '\\' && i+1 < len(body):
			i = escape(i, 2, unescape(body[i+1]))
		case indented && hasPrefixAt(body, i, "'''"):
			i = escape(i, 3, "''")
		case indented && hasPrefixAt(body, i, "''$"):
			i = escape(i, 3, "$")
		case indented && hasPrefixAt(body, i, "''\\") && i+3 < len(body):
			i = escape(i, 4, unescape(body[i+3]))
		case hasPrefixAt(body, i, "$${"):
			i += 3
		case hasPrefixAt(body, i, "${"):
			end, ok := skipInterpolation(body, i)
			if !ok {
				end = len(body)
			}
			flush(i)
			span := token.Span{Start: pos.at(i), End: pos.at(end)}
			inner := body[i+2 : max(i+2, end-1)]
			exprStart := advancePosition(span.Start, "${")
			exprEnd := advancePosition(exprStart, inner)
			expr := p.parseEmbedded(inner, exprStart, exprEnd, span)
			pieces = append(pieces, piece{expr: expr, span: span})
			i = end
			litStart = end
		default:
			i++
		}
	}
	flush(len(body))

	return pieces
}

func (p *Parser) parseEmbedded(src string, origin, end token.Position, span token.Span) ast.Expr {
	tokens, err := NewScannerAt(src, origin).ScanTokens()
	if err != nil {
		p.fail(err)
		return &ast.Error{Span: span, Message: err.Error()}
	}
	tree, err := GroupTokens(tokens)
	if err != nil {
		p.fail(err)
		return &ast.Error{Span: span, Message: err.Error()}
	}
	if len(tree) == 0 {
		return p.errorNode(errors.ErrorInvalidInterpolation, "empty interpolation", span)
	}

	sub := &Parser{nodes: tree, end: end, state: p.state}
	return sub.parseRun()
}

// stripIndentation removes the indentation shared by all non-blank lines of
// an indented string, the first line when it is blank, and trailing spaces
// on the last line.
func stripIndentation(pieces []piece) []piece {
	if len(pieces) > 0 && pieces[0].literal() {
		text := pieces[0].text
		if nl := strings.IndexByte(text, '\n'); nl >= 0 && strings.TrimLeft(text[:nl], " \t") == "" {
			pieces[0].text = text[nl+1:]
		}
	}

	minIndent := math.MaxInt
	atStart, spaces := true, 0
	for _, pc := range pieces {
		if !pc.literal() {
			if atStart {
				minIndent = min(minIndent, spaces)
				atStart = false
			}
			continue
		}
		for i := 0; i < len(pc.text); i++ {
			c := pc.text[i]
			if atStart {
				switch c {
				case ' ':
					spaces++
					continue
				case '\n':
					spaces = 0
					continue
				}
				minIndent = min(minIndent, spaces)
				atStart = false
			}
			if c == '\n' {
				atStart, spaces = true, 0
			}
		}
	}

	out := make([]piece, 0, len(pieces))
	atStart, removed := true, 0
	for _, pc := range pieces {
		if !pc.literal() {
			atStart = false
			out = append(out, pc)
			continue
		}
		var b strings.Builder
		for i := 0; i < len(pc.text); i++ {
			c := pc.text[i]
			if atStart && c == ' ' && removed < minIndent {
				removed++
				continue
			}
			if c == '\n' {
				atStart, removed = true, 0
			} else {
				atStart = false
			}
			b.WriteByte(c)
		}
		pc.text = b.String()
		out = append(out, pc)
	}

	if n := len(out); n > 0 && out[n-1].literal() {
		text := out[n-1].text
		if nl := strings.LastIndexByte(text, '\n'); nl >= 0 && strings.Trim(text[nl+1:], " ") == "" {
			out[n-1].text = text[:nl+1]
		}
	}

	return out
}

// joinPieces merges adjacent text into PartRaw and wraps interpolations.
func joinPieces(pieces []piece) []ast.Part {
	parts := []ast.Part{}
	var raw *ast.PartRaw

	for _, pc := range pieces {
		if pc.expr != nil {
			raw = nil
			parts = append(parts, &ast.PartInterpolation{Span: pc.span, Expression: pc.expr})
			continue
		}
		if pc.text == "" {
			continue
		}
		if raw == nil {
			raw = &ast.PartRaw{Span: pc.span}
			parts = append(parts, raw)
		}
		raw.Content += pc.text
		raw.Span = token.Join(raw.Span, pc.span)
	}

	return parts
}
