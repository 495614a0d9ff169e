package lsp

import (
	"gnix/internal/ast"
	"gnix/token"
)

// SemanticTokenTypes is the legend of token types, indexed by TokenType.
var SemanticTokenTypes = []string{
	"keyword",
	"number",
	"string",
	"variable",
	"property",
	"parameter",
	"function",
	"operator",
}

// SemanticTokenModifiers is the legend of modifier bits.
var SemanticTokenModifiers = []string{
	"declaration",
	"defaultLibrary",
}

const (
	typeKeyword = iota
	typeNumber
	typeString
	typeVariable
	typeProperty
	typeParameter
	typeFunction
	typeOperator
)

const (
	modDeclaration = 1 << iota
	modDefaultLibrary
)

// Names available in every Nix scope.
var defaultLibrary = map[string]bool{
	"true": true, "false": true, "null": true,
	"builtins": true, "import": true, "throw": true, "abort": true,
	"toString": true, "map": true, "baseNameOf": true, "dirOf": true,
	"derivation": true, "fetchTarball": true, "isNull": true, "removeAttrs": true,
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask
}

type class struct {
	tokenType int
	modifiers int
}

// collectSemanticTokens classifies every lexer token, refined by the role
// its node plays in the tree. Multi-line tokens are split per line.
func collectSemanticTokens(doc *document) []SemanticToken {
	var tokens []SemanticToken
	if doc.result == nil {
		return tokens
	}

	roles := classifyNodes(doc.result.Expr)
	for _, tok := range doc.result.Tokens {
		c, ok := classifyToken(tok)
		if role, found := roles[tok.Span.Start.Offset]; found && tok.Kind != token.STRING {
			role.modifiers |= c.modifiers
			c, ok = role, true
		}
		if !ok {
			continue
		}
		tokens = append(tokens, splitLines(doc, tok.Span, c)...)
	}

	return tokens
}

func classifyToken(tok token.Token) (class, bool) {
	switch {
	case tok.Kind == token.KEYWORD:
		return class{tokenType: typeKeyword}, true
	case tok.Kind == token.INTEGER || tok.Kind == token.FLOAT:
		return class{tokenType: typeNumber}, true
	case tok.Kind.IsLiteral() && tok.Kind != token.BOOL && tok.Kind != token.NULL:
		return class{tokenType: typeString}, true
	case tok.Kind == token.IDENTIFIER || tok.Kind == token.BOOL || tok.Kind == token.NULL:
		c := class{tokenType: typeVariable}
		if defaultLibrary[tok.Content] {
			c.modifiers = modDefaultLibrary
		}
		return c, true
	case tok.Kind.IsOperator() && tok.Kind != token.ATTR_SELECT:
		return class{tokenType: typeOperator}, true
	}
	return class{}, false
}

// classifyNodes maps the start offset of names to the role they play:
// binding keys, selected attributes, function parameters and callees.
func classifyNodes(root ast.Expr) map[int]class {
	roles := map[int]class{}
	// parents are visited first, so a callee marked by its application keeps that role
	mark := func(parts []ast.Part, c class) {
		for _, part := range parts {
			raw, ok := part.(*ast.PartRaw)
			if !ok {
				continue
			}
			if _, taken := roles[raw.Span.Start.Offset]; !taken {
				roles[raw.Span.Start.Offset] = c
			}
		}
	}

	ast.Inspect(root, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.BindingKeyValue:
			mark(v.From, class{typeProperty, modDeclaration})
		case *ast.BindingInherit:
			mark(v.Attributes, class{typeProperty, modDeclaration})
		case *ast.PropertyAccess:
			mark(v.AttributePath, class{typeProperty, 0})
		case *ast.HasAttribute:
			mark(v.AttributePath, class{typeProperty, 0})
		case *ast.FunctionHeadSimple:
			roles[v.Span.Start.Offset] = class{typeParameter, modDeclaration}
		case *ast.FunctionHeadDestructured:
			for _, arg := range v.Arguments {
				roles[arg.Span.Start.Offset] = class{typeParameter, modDeclaration}
			}
		case *ast.FunctionApplication:
			switch callee := v.Function.(type) {
			case *ast.Identifier:
				roles[callee.Span.Start.Offset] = class{typeFunction, 0}
			case *ast.PropertyAccess:
				if callee.Default == nil {
					mark(callee.AttributePath[len(callee.AttributePath)-1:], class{typeFunction, 0})
				}
			}
		}
		return true
	})

	return roles
}

// splitLines emits one token per source line covered by span.
func splitLines(doc *document, span token.Span, c class) []SemanticToken {
	var out []SemanticToken
	start := span.Start.Offset
	end := min(span.End.Offset, len(doc.text))

	for start < end {
		stop := start
		for stop < end && doc.text[stop] != '\n' {
			stop++
		}
		if stop > start {
			pos := doc.position(start)
			out = append(out, SemanticToken{
				Line:           pos.Line,
				StartChar:      pos.Character,
				Length:         uint32(stop - start),
				TokenType:      c.tokenType,
				TokenModifiers: c.modifiers,
			})
		}
		start = stop + 1
	}
	return out
}

// encodeSemanticTokens packs tokens into the LSP wire format (delta-line, delta-start).
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}

	return data
}
