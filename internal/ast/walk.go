package ast

// Inspect traverses the tree rooted at node in depth-first order. If f
// returns false the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}

// Children returns the direct sub-nodes of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil {
				out = append(out, n)
			}
		}
	}
	addParts := func(parts []Part) {
		for _, p := range parts {
			add(p)
		}
	}
	addBindings := func(bindings []Binding) {
		for _, b := range bindings {
			add(b)
		}
	}

	switch n := node.(type) {
	case *Assert:
		add(n.Expression, n.Target)
	case *BinaryOperation:
		add(n.Left, n.Right)
	case *Function:
		add(n.Head, n.Body)
	case *FunctionApplication:
		add(n.Function, n.Arguments)
	case *HasAttribute:
		add(n.Expression)
		addParts(n.AttributePath)
	case *IfThenElse:
		add(n.Predicate, n.Then, n.Else)
	case *IndentedString:
		addParts(n.Parts)
	case *LetIn:
		addBindings(n.Bindings)
		add(n.Target)
	case *List:
		for _, e := range n.Elements {
			add(e)
		}
	case *Map:
		addBindings(n.Bindings)
	case *Path:
		addParts(n.Parts)
	case *PropertyAccess:
		add(n.Expression)
		addParts(n.AttributePath)
		add(n.Default)
	case *String:
		addParts(n.Parts)
	case *UnaryOperation:
		add(n.Operand)
	case *With:
		add(n.Expression, n.Target)
	case *BindingKeyValue:
		addParts(n.From)
		add(n.To)
	case *BindingInherit:
		add(n.From)
		addParts(n.Attributes)
	case *PartInterpolation:
		add(n.Expression)
	case *FunctionHeadDestructured:
		for _, arg := range n.Arguments {
			add(arg.Default)
		}
	}
	return out
}

// Errors collects every Error node in the tree.
func Errors(node Node) []*Error {
	var errs []*Error
	Inspect(node, func(n Node) bool {
		if e, ok := n.(*Error); ok {
			errs = append(errs, e)
		}
		return true
	})
	return errs
}
