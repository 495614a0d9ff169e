package ast

// ToMap converts a node into nested maps and slices for JSON or YAML output.
// Every map has a "type" key naming the variant; spans are included when
// withSpans is set.
func ToMap(node Node, withSpans bool) map[string]any {
	if node == nil {
		return nil
	}

	m := map[string]any{"type": node.NodeType().String()}
	if withSpans {
		m["span"] = SpanOf(node).String()
	}

	conv := func(n Node) any {
		if n == nil {
			return nil
		}
		return ToMap(n, withSpans)
	}
	parts := func(ps []Part) []any {
		out := make([]any, len(ps))
		for i, p := range ps {
			out[i] = conv(p)
		}
		return out
	}
	bindings := func(bs []Binding) []any {
		out := make([]any, len(bs))
		for i, b := range bs {
			out[i] = conv(b)
		}
		return out
	}
	optional := func(e Expr) any {
		if e == nil {
			return nil
		}
		return conv(e)
	}

	switch n := node.(type) {
	case *Assert:
		m["expression"] = conv(n.Expression)
		m["target"] = conv(n.Target)
	case *BinaryOperation:
		m["left"] = conv(n.Left)
		m["operator"] = n.Operator.String()
		m["right"] = conv(n.Right)
	case *Error:
		m["message"] = n.Message
	case *Float:
		m["value"] = n.Value
	case *Function:
		m["head"] = conv(n.Head)
		m["body"] = conv(n.Body)
	case *FunctionApplication:
		m["function"] = conv(n.Function)
		m["arguments"] = conv(n.Arguments)
	case *HasAttribute:
		m["expression"] = conv(n.Expression)
		m["attribute_path"] = parts(n.AttributePath)
	case *Identifier:
		m["id"] = n.ID
	case *IfThenElse:
		m["predicate"] = conv(n.Predicate)
		m["then"] = conv(n.Then)
		m["else"] = conv(n.Else)
	case *IndentedString:
		m["parts"] = parts(n.Parts)
	case *Integer:
		m["value"] = n.Value
	case *LetIn:
		m["bindings"] = bindings(n.Bindings)
		m["target"] = conv(n.Target)
	case *List:
		elements := make([]any, len(n.Elements))
		for i, e := range n.Elements {
			elements[i] = conv(e)
		}
		m["elements"] = elements
	case *Map:
		m["recursive"] = n.Recursive
		m["bindings"] = bindings(n.Bindings)
	case *Path:
		m["parts"] = parts(n.Parts)
	case *PropertyAccess:
		m["expression"] = conv(n.Expression)
		m["attribute_path"] = parts(n.AttributePath)
		m["default"] = optional(n.Default)
	case *SearchNixPath:
		m["path"] = n.Path
	case *String:
		m["parts"] = parts(n.Parts)
	case *UnaryOperation:
		m["operator"] = n.Operator.String()
		m["operand"] = conv(n.Operand)
	case *Uri:
		m["uri"] = n.Uri
	case *With:
		m["expression"] = conv(n.Expression)
		m["target"] = conv(n.Target)
	case *BindingKeyValue:
		m["from"] = parts(n.From)
		m["to"] = conv(n.To)
	case *BindingInherit:
		m["from"] = optional(n.From)
		m["attributes"] = parts(n.Attributes)
	case *PartRaw:
		m["content"] = n.Content
	case *PartInterpolation:
		m["expression"] = conv(n.Expression)
	case *FunctionHeadSimple:
		m["identifier"] = n.Identifier
	case *FunctionHeadDestructured:
		m["ellipsis"] = n.Ellipsis
		if n.Identifier != "" {
			m["identifier"] = n.Identifier
		}
		args := make([]any, len(n.Arguments))
		for i, arg := range n.Arguments {
			a := map[string]any{"identifier": arg.Identifier}
			if arg.Default != nil {
				a["default"] = conv(arg.Default)
			}
			args[i] = a
		}
		m["arguments"] = args
	}
	return m
}
