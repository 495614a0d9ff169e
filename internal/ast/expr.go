package ast

type Expr interface {
	Node
	isExpr()
}

func (*Assert) isExpr() {}

func (*BinaryOperation) isExpr() {}

func (*Error) isExpr() {}

func (*Float) isExpr() {}

func (*Function) isExpr() {}

func (*FunctionApplication) isExpr() {}

func (*HasAttribute) isExpr() {}

func (*Identifier) isExpr() {}

func (*IfThenElse) isExpr() {}

func (*IndentedString) isExpr() {}

func (*Integer) isExpr() {}

func (*LetIn) isExpr() {}

func (*List) isExpr() {}

func (*Map) isExpr() {}

func (*Path) isExpr() {}

func (*PropertyAccess) isExpr() {}

func (*SearchNixPath) isExpr() {}

func (*String) isExpr() {}

func (*UnaryOperation) isExpr() {}

func (*Uri) isExpr() {}

func (*With) isExpr() {}

// Binding is one clause of an attribute set or let block.
type Binding interface {
	Node
	isBinding()
}

func (*BindingKeyValue) isBinding() {}

func (*BindingInherit) isBinding() {}

// Part is a segment of a string, path or attribute path.
type Part interface {
	Node
	isPart()
}

func (*PartRaw) isPart() {}

func (*PartInterpolation) isPart() {}

type FunctionHead interface {
	Node
	isFunctionHead()
}

func (*FunctionHeadSimple) isFunctionHead() {}

func (*FunctionHeadDestructured) isFunctionHead() {}
