package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"

	"gnix/internal/ast"
	"gnix/token"
)

// Selector is a dotted attribute path typed by a user.
type Selector struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Segments []*Segment `parser:"@@ ( \".\" @@ )*"`
}

// Segment is one name of a selector. Quoted names may contain dots.
type Segment struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   string `parser:"( @Ident | @String )"`
}

// Keys returns the segment names in order.
func (s *Selector) Keys() []string {
	keys := make([]string, len(s.Segments))
	for i, seg := range s.Segments {
		keys[i] = seg.Name
	}
	return keys
}

// Parts returns the selector as an attribute path.
func (s *Selector) Parts() []ast.Part {
	parts := make([]ast.Part, len(s.Segments))
	for i, seg := range s.Segments {
		parts[i] = &ast.PartRaw{Span: seg.Span(), Content: seg.Name}
	}
	return parts
}

// Span returns the source range of the segment.
func (s *Segment) Span() token.Span {
	return token.Span{Start: position(s.Pos), End: position(s.EndPos)}
}

func (s *Selector) String() string {
	return ast.AttrPath(s.Parts())
}

func position(pos lexer.Position) token.Position {
	return token.Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}
