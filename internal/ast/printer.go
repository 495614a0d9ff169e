package ast

import (
	"fmt"
	"strings"

	"gnix/token"
)

// String renders every node back to Nix source. Operators are fully
// parenthesised so the tree shape is visible in the output.

func (a *Assert) String() string {
	return fmt.Sprintf("assert %s; %s", a.Expression, a.Target)
}

func (b *BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Operator.Symbol(), b.Right)
}

func (e *Error) String() string {
	return fmt.Sprintf("<error: %s>", e.Message)
}

func (f *Float) String() string {
	return f.Value
}

func (f *Function) String() string {
	return fmt.Sprintf("%s: %s", f.Head, f.Body)
}

func (f *FunctionApplication) String() string {
	return fmt.Sprintf("(%s %s)", f.Function, f.Arguments)
}

func (h *HasAttribute) String() string {
	return fmt.Sprintf("(%s ? %s)", h.Expression, AttrPath(h.AttributePath))
}

func (i *Identifier) String() string {
	return i.ID
}

func (i *IfThenElse) String() string {
	return fmt.Sprintf("if %s then %s else %s", i.Predicate, i.Then, i.Else)
}

func (s *IndentedString) String() string {
	var b strings.Builder
	b.WriteString("''")
	for _, part := range s.Parts {
		switch p := part.(type) {
		case *PartRaw:
			text := strings.ReplaceAll(p.Content, "''", "'''")
			b.WriteString(strings.ReplaceAll(text, "${", "''${"))
		default:
			b.WriteString(part.String())
		}
	}
	b.WriteString("''")
	return b.String()
}

func (i *Integer) String() string {
	return i.Value
}

func (l *LetIn) String() string {
	var b strings.Builder
	b.WriteString("let ")
	for _, binding := range l.Bindings {
		b.WriteString(binding.String())
		b.WriteString(" ")
	}
	b.WriteString("in ")
	b.WriteString(l.Target.String())
	return b.String()
}

func (l *List) String() string {
	if len(l.Elements) == 0 {
		return "[ ]"
	}
	elements := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		elements[i] = e.String()
	}
	return "[ " + strings.Join(elements, " ") + " ]"
}

func (m *Map) String() string {
	var b strings.Builder
	if m.Recursive {
		b.WriteString("rec ")
	}
	b.WriteString("{ ")
	for _, binding := range m.Bindings {
		b.WriteString(binding.String())
		b.WriteString(" ")
	}
	b.WriteString("}")
	return b.String()
}

func (p *Path) String() string {
	var b strings.Builder
	for _, part := range p.Parts {
		b.WriteString(part.String())
	}
	return b.String()
}

func (p *PropertyAccess) String() string {
	if p.Default == nil {
		return fmt.Sprintf("%s.%s", p.Expression, AttrPath(p.AttributePath))
	}
	return fmt.Sprintf("(%s.%s or %s)", p.Expression, AttrPath(p.AttributePath), p.Default)
}

func (s *SearchNixPath) String() string {
	return "<" + s.Path + ">"
}

func (s *String) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, part := range s.Parts {
		switch p := part.(type) {
		case *PartRaw:
			b.WriteString(escapeString(p.Content))
		default:
			b.WriteString(part.String())
		}
	}
	b.WriteByte('"')
	return b.String()
}

func (u *UnaryOperation) String() string {
	return fmt.Sprintf("(%s%s)", u.Operator.Symbol(), u.Operand)
}

func (u *Uri) String() string {
	return u.Uri
}

func (w *With) String() string {
	return fmt.Sprintf("with %s; %s", w.Expression, w.Target)
}

func (b *BindingKeyValue) String() string {
	return fmt.Sprintf("%s = %s;", AttrPath(b.From), b.To)
}

func (b *BindingInherit) String() string {
	var sb strings.Builder
	sb.WriteString("inherit")
	if b.From != nil {
		sb.WriteString(" (" + b.From.String() + ")")
	}
	for _, attr := range b.Attributes {
		sb.WriteString(" " + attrName(attr))
	}
	sb.WriteString(";")
	return sb.String()
}

func (p *PartRaw) String() string {
	return p.Content
}

func (p *PartInterpolation) String() string {
	return "${" + p.Expression.String() + "}"
}

func (h *FunctionHeadSimple) String() string {
	return h.Identifier
}

func (h *FunctionHeadDestructured) String() string {
	args := make([]string, 0, len(h.Arguments)+1)
	for _, arg := range h.Arguments {
		if arg.Default != nil {
			args = append(args, fmt.Sprintf("%s ? %s", arg.Identifier, arg.Default))
		} else {
			args = append(args, arg.Identifier)
		}
	}
	if h.Ellipsis {
		args = append(args, "...")
	}

	pattern := "{ }"
	if len(args) > 0 {
		pattern = "{ " + strings.Join(args, ", ") + " }"
	}
	if h.Identifier != "" {
		return h.Identifier + "@" + pattern
	}
	return pattern
}

// AttrPath renders an attribute path, quoting segments that are not plain names.
func AttrPath(parts []Part) string {
	names := make([]string, len(parts))
	for i, part := range parts {
		names[i] = attrName(part)
	}
	return strings.Join(names, ".")
}

func attrName(part Part) string {
	raw, ok := part.(*PartRaw)
	if !ok {
		return part.String()
	}
	if isPlainName(raw.Content) {
		return raw.Content
	}
	return `"` + escapeString(raw.Content) + `"`
}

func isPlainName(s string) bool {
	if s == "" || token.LookupIdent(s) == token.KEYWORD {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case i > 0 && (c == '\'' || c == '-' || '0' <= c && c <= '9'):
		default:
			return false
		}
	}
	return true
}

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"${", `\${`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func escapeString(s string) string {
	return stringEscaper.Replace(s)
}
