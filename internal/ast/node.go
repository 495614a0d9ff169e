package ast

import "gnix/token"

type Node interface {
	NodePos() token.Position
	NodeEndPos() token.Position
	NodeType() NodeType
	String() string
}

// SpanOf returns the source range covered by n.
func SpanOf(n Node) token.Span {
	return token.Span{Start: n.NodePos(), End: n.NodeEndPos()}
}

func (a *Assert) NodePos() token.Position    { return a.Span.Start }
func (a *Assert) NodeEndPos() token.Position { return a.Span.End }
func (*Assert) NodeType() NodeType           { return ASSERT }

func (b *BinaryOperation) NodePos() token.Position    { return b.Span.Start }
func (b *BinaryOperation) NodeEndPos() token.Position { return b.Span.End }
func (*BinaryOperation) NodeType() NodeType           { return BINARY_OPERATION }

func (e *Error) NodePos() token.Position    { return e.Span.Start }
func (e *Error) NodeEndPos() token.Position { return e.Span.End }
func (*Error) NodeType() NodeType           { return ERROR }

func (f *Float) NodePos() token.Position    { return f.Span.Start }
func (f *Float) NodeEndPos() token.Position { return f.Span.End }
func (*Float) NodeType() NodeType           { return FLOAT }

func (f *Function) NodePos() token.Position    { return f.Span.Start }
func (f *Function) NodeEndPos() token.Position { return f.Span.End }
func (*Function) NodeType() NodeType           { return FUNCTION }

func (f *FunctionApplication) NodePos() token.Position    { return f.Span.Start }
func (f *FunctionApplication) NodeEndPos() token.Position { return f.Span.End }
func (*FunctionApplication) NodeType() NodeType           { return FUNCTION_APPLICATION }

func (h *HasAttribute) NodePos() token.Position    { return h.Span.Start }
func (h *HasAttribute) NodeEndPos() token.Position { return h.Span.End }
func (*HasAttribute) NodeType() NodeType           { return HAS_ATTRIBUTE }

func (i *Identifier) NodePos() token.Position    { return i.Span.Start }
func (i *Identifier) NodeEndPos() token.Position { return i.Span.End }
func (*Identifier) NodeType() NodeType           { return IDENTIFIER }

func (i *IfThenElse) NodePos() token.Position    { return i.Span.Start }
func (i *IfThenElse) NodeEndPos() token.Position { return i.Span.End }
func (*IfThenElse) NodeType() NodeType           { return IF_THEN_ELSE }

func (s *IndentedString) NodePos() token.Position    { return s.Span.Start }
func (s *IndentedString) NodeEndPos() token.Position { return s.Span.End }
func (*IndentedString) NodeType() NodeType           { return INDENTED_STRING }

func (i *Integer) NodePos() token.Position    { return i.Span.Start }
func (i *Integer) NodeEndPos() token.Position { return i.Span.End }
func (*Integer) NodeType() NodeType           { return INTEGER }

func (l *LetIn) NodePos() token.Position    { return l.Span.Start }
func (l *LetIn) NodeEndPos() token.Position { return l.Span.End }
func (*LetIn) NodeType() NodeType           { return LET_IN }

func (l *List) NodePos() token.Position    { return l.Span.Start }
func (l *List) NodeEndPos() token.Position { return l.Span.End }
func (*List) NodeType() NodeType           { return LIST }

func (m *Map) NodePos() token.Position    { return m.Span.Start }
func (m *Map) NodeEndPos() token.Position { return m.Span.End }
func (*Map) NodeType() NodeType           { return MAP }

func (p *Path) NodePos() token.Position    { return p.Span.Start }
func (p *Path) NodeEndPos() token.Position { return p.Span.End }
func (*Path) NodeType() NodeType           { return PATH }

func (p *PropertyAccess) NodePos() token.Position    { return p.Span.Start }
func (p *PropertyAccess) NodeEndPos() token.Position { return p.Span.End }
func (*PropertyAccess) NodeType() NodeType           { return PROPERTY_ACCESS }

func (s *SearchNixPath) NodePos() token.Position    { return s.Span.Start }
func (s *SearchNixPath) NodeEndPos() token.Position { return s.Span.End }
func (*SearchNixPath) NodeType() NodeType           { return SEARCH_NIX_PATH }

func (s *String) NodePos() token.Position    { return s.Span.Start }
func (s *String) NodeEndPos() token.Position { return s.Span.End }
func (*String) NodeType() NodeType           { return STRING }

func (u *UnaryOperation) NodePos() token.Position    { return u.Span.Start }
func (u *UnaryOperation) NodeEndPos() token.Position { return u.Span.End }
func (*UnaryOperation) NodeType() NodeType           { return UNARY_OPERATION }

func (u *Uri) NodePos() token.Position    { return u.Span.Start }
func (u *Uri) NodeEndPos() token.Position { return u.Span.End }
func (*Uri) NodeType() NodeType           { return URI }

func (w *With) NodePos() token.Position    { return w.Span.Start }
func (w *With) NodeEndPos() token.Position { return w.Span.End }
func (*With) NodeType() NodeType           { return WITH }

func (b *BindingKeyValue) NodePos() token.Position    { return b.Span.Start }
func (b *BindingKeyValue) NodeEndPos() token.Position { return b.Span.End }
func (*BindingKeyValue) NodeType() NodeType           { return BINDING_KEY_VALUE }

func (b *BindingInherit) NodePos() token.Position    { return b.Span.Start }
func (b *BindingInherit) NodeEndPos() token.Position { return b.Span.End }
func (*BindingInherit) NodeType() NodeType           { return BINDING_INHERIT }

func (p *PartRaw) NodePos() token.Position    { return p.Span.Start }
func (p *PartRaw) NodeEndPos() token.Position { return p.Span.End }
func (*PartRaw) NodeType() NodeType           { return PART_RAW }

func (p *PartInterpolation) NodePos() token.Position    { return p.Span.Start }
func (p *PartInterpolation) NodeEndPos() token.Position { return p.Span.End }
func (*PartInterpolation) NodeType() NodeType           { return PART_INTERPOLATION }

func (h *FunctionHeadSimple) NodePos() token.Position    { return h.Span.Start }
func (h *FunctionHeadSimple) NodeEndPos() token.Position { return h.Span.End }
func (*FunctionHeadSimple) NodeType() NodeType           { return FUNCTION_HEAD_SIMPLE }

func (h *FunctionHeadDestructured) NodePos() token.Position    { return h.Span.Start }
func (h *FunctionHeadDestructured) NodeEndPos() token.Position { return h.Span.End }
func (*FunctionHeadDestructured) NodeType() NodeType           { return FUNCTION_HEAD_DESTRUCTURED }
