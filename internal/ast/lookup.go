package ast

import (
	"slices"
	"strings"

	"gnix/token"
)

// TopLevel unwraps function, let, with and assert bodies down to the
// attribute set a configuration file evaluates to. It returns nil if there is none.
func TopLevel(root Expr) *Map {
	for root != nil {
		switch n := root.(type) {
		case *Map:
			return n
		case *Function:
			root = n.Body
		case *LetIn:
			root = n.Target
		case *With:
			root = n.Target
		case *Assert:
			root = n.Target
		default:
			return nil
		}
	}
	return nil
}

// StaticKey spells an attribute path with dots. It fails when a segment
// is interpolated.
func StaticKey(parts []Part) (string, bool) {
	names, ok := staticNames(parts)
	if !ok {
		return "", false
	}
	return strings.Join(names, "."), true
}

func staticNames(parts []Part) ([]string, bool) {
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		raw, ok := part.(*PartRaw)
		if !ok {
			return nil, false
		}
		names = append(names, raw.Content)
	}
	return names, len(names) > 0
}

// FindBinding performs a shallow search over the bindings of the top-level
// attribute set. key is matched against the full dotted path of each
// binding, or against the names of inherit clauses.
func FindBinding(root Expr, key string) Binding {
	m := TopLevel(root)
	if m == nil {
		return nil
	}

	for _, binding := range m.Bindings {
		switch b := binding.(type) {
		case *BindingKeyValue:
			if k, ok := StaticKey(b.From); ok && k == key {
				return b
			}
		case *BindingInherit:
			for _, attr := range b.Attributes {
				if raw, ok := attr.(*PartRaw); ok && raw.Content == key {
					return b
				}
			}
		}
	}
	return nil
}

// Keys lists the first path segment of every static binding in m, in order
// of appearance and without duplicates.
func Keys(m *Map) []string {
	var keys []string
	for _, binding := range m.Bindings {
		var names []string
		switch b := binding.(type) {
		case *BindingKeyValue:
			if path, ok := staticNames(b.From); ok {
				names = path[:1]
			}
		case *BindingInherit:
			for _, attr := range b.Attributes {
				if raw, ok := attr.(*PartRaw); ok {
					names = append(names, raw.Content)
				}
			}
		}
		for _, name := range names {
			if !slices.Contains(keys, name) {
				keys = append(keys, name)
			}
		}
	}
	return keys
}

// LookupPath follows segments through nested attribute sets, honouring both
// dotted keys (a.b = 1;) and nested sets (a = { b = 1; };). On a miss it
// returns nil and the keys available at the deepest set reached.
func LookupPath(root Expr, segments []string) (Expr, []string) {
	m := TopLevel(root)
	if m == nil {
		return nil, nil
	}
	if len(segments) == 0 {
		return m, nil
	}
	return lookupIn(m, segments)
}

func lookupIn(m *Map, segments []string) (Expr, []string) {
	var partial []Binding

	for _, binding := range m.Bindings {
		switch b := binding.(type) {
		case *BindingKeyValue:
			path, ok := staticNames(b.From)
			if !ok {
				continue
			}
			switch {
			case slices.Equal(path, segments):
				return b.To, nil
			case len(path) < len(segments) && slices.Equal(path, segments[:len(path)]):
				if nested, ok := b.To.(*Map); ok {
					if found, _ := lookupIn(nested, segments[len(path):]); found != nil {
						return found, nil
					}
				}
			case len(path) > len(segments) && slices.Equal(path[:len(segments)], segments):
				partial = append(partial, &BindingKeyValue{
					Span: b.Span,
					From: b.From[len(segments):],
					To:   b.To,
				})
			}
		case *BindingInherit:
			if len(segments) != 1 {
				continue
			}
			for _, attr := range b.Attributes {
				if raw, ok := attr.(*PartRaw); ok && raw.Content == segments[0] {
					return inherited(b, raw), nil
				}
			}
		}
	}

	if len(partial) > 0 {
		span := partial[0].(*BindingKeyValue).Span
		for _, b := range partial[1:] {
			span = token.Join(span, b.(*BindingKeyValue).Span)
		}
		return &Map{Span: span, Bindings: partial}, nil
	}

	// Descend as far as the path allows to offer the closest candidates.
	for _, binding := range m.Bindings {
		b, ok := binding.(*BindingKeyValue)
		if !ok {
			continue
		}
		path, ok := staticNames(b.From)
		if !ok || len(path) >= len(segments) || !slices.Equal(path, segments[:len(path)]) {
			continue
		}
		if nested, ok := b.To.(*Map); ok {
			return lookupIn(nested, segments[len(path):])
		}
	}
	return nil, Keys(m)
}

func inherited(b *BindingInherit, attr *PartRaw) Expr {
	if b.From == nil {
		return &Identifier{Span: attr.Span, ID: attr.Content}
	}
	return &PropertyAccess{
		Span:          token.Join(SpanOf(b.From), attr.Span),
		Expression:    b.From,
		AttributePath: []Part{attr},
	}
}
