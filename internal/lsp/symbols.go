package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gnix/internal/ast"
	"gnix/token"
)

// collectSymbols outlines the attribute sets of the document. Bindings of
// the top-level set (and of let blocks wrapping it) become symbols; nested
// sets become children.
func collectSymbols(root ast.Expr) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}

	for e := root; e != nil; {
		switch n := e.(type) {
		case *ast.Function:
			e = n.Body
		case *ast.With:
			e = n.Target
		case *ast.Assert:
			e = n.Target
		case *ast.LetIn:
			symbols = append(symbols, bindingSymbols(n.Bindings)...)
			e = n.Target
		case *ast.Map:
			return append(symbols, bindingSymbols(n.Bindings)...)
		default:
			return symbols
		}
	}
	return symbols
}

func bindingSymbols(bindings []ast.Binding) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol

	for _, binding := range bindings {
		switch b := binding.(type) {
		case *ast.BindingKeyValue:
			if len(b.From) == 0 {
				continue
			}
			symbol := protocol.DocumentSymbol{
				Name:           ast.AttrPath(b.From),
				Kind:           symbolKind(b.To),
				Range:          toRange(b.Span),
				SelectionRange: toRange(token.Join(ast.SpanOf(b.From[0]), ast.SpanOf(b.From[len(b.From)-1]))),
			}
			if m, ok := b.To.(*ast.Map); ok {
				symbol.Children = bindingSymbols(m.Bindings)
			}
			symbols = append(symbols, symbol)

		case *ast.BindingInherit:
			for _, attr := range b.Attributes {
				if _, ok := attr.(*ast.PartRaw); !ok {
					continue
				}
				symbols = append(symbols, protocol.DocumentSymbol{
					Name:           ast.AttrPath([]ast.Part{attr}),
					Detail:         ptrString("inherit"),
					Kind:           protocol.SymbolKindVariable,
					Range:          toRange(b.Span),
					SelectionRange: toRange(ast.SpanOf(attr)),
				})
			}
		}
	}

	return symbols
}

func symbolKind(e ast.Expr) protocol.SymbolKind {
	switch v := e.(type) {
	case *ast.Map:
		return protocol.SymbolKindNamespace
	case *ast.Function:
		return protocol.SymbolKindFunction
	case *ast.List:
		return protocol.SymbolKindArray
	case *ast.String, *ast.IndentedString:
		return protocol.SymbolKindString
	case *ast.Integer, *ast.Float:
		return protocol.SymbolKindNumber
	case *ast.Path, *ast.SearchNixPath, *ast.Uri:
		return protocol.SymbolKindFile
	case *ast.Identifier:
		if v.ID == "true" || v.ID == "false" {
			return protocol.SymbolKindBoolean
		}
		if v.ID == "null" {
			return protocol.SymbolKindNull
		}
	}
	return protocol.SymbolKindVariable
}
