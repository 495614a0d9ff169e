package ast

import "gnix/token"

// Assert guards an expression with a condition
// Example: "assert lib.versionAtLeast version "2.0"; drv"
type Assert struct {
	Span       token.Span
	Expression Expr
	Target     Expr
}

// BinaryOperation represents an infix operator application
// Example: "a + b", "xs ++ ys", "defaults // overrides"
type BinaryOperation struct {
	Span     token.Span
	Left     Expr
	Operator BinaryOperator
	Right    Expr
}

// Error marks source that could not be parsed. It stands in for the
// expression that was expected at Span.
type Error struct {
	Span    token.Span
	Message string
}

// Float is a floating point literal, kept as written
// Example: "1.5", "2e10"
type Float struct {
	Span  token.Span
	Value string
}

// Function is a lambda with a single (possibly destructured) argument
// Example: "x: x + 1", "{ pkgs, ... }: pkgs.hello"
type Function struct {
	Span token.Span
	Head FunctionHead
	Body Expr
}

// FunctionApplication applies a function to one argument. Curried calls
// nest to the left: "f a b" is ((f a) b).
type FunctionApplication struct {
	Span      token.Span
	Function  Expr
	Arguments Expr
}

// HasAttribute tests for an attribute path
// Example: "cfg ? services.nginx"
type HasAttribute struct {
	Span          token.Span
	Expression    Expr
	AttributePath []Part
}

// Identifier is a variable reference. true, false and null are identifiers too.
type Identifier struct {
	Span token.Span
	ID   string
}

// IfThenElse is a conditional expression
type IfThenElse struct {
	Span      token.Span
	Predicate Expr
	Then      Expr
	Else      Expr
}

// IndentedString is a ''...'' literal with its common indentation removed
type IndentedString struct {
	Span  token.Span
	Parts []Part
}

// Integer is an integer literal, kept as written
type Integer struct {
	Span  token.Span
	Value string
}

// LetIn binds names for use in Target
// Example: "let x = 1; in x"
type LetIn struct {
	Span     token.Span
	Bindings []Binding
	Target   Expr
}

// List is a whitespace separated list literal
// Example: "[ 1 2 3 ]"
type List struct {
	Span     token.Span
	Elements []Expr
}

// Map is an attribute set, optionally recursive
// Example: "{ a = 1; }", "rec { a = 1; b = a; }"
type Map struct {
	Span      token.Span
	Recursive bool
	Bindings  []Binding
}

// Path is a filesystem path literal, possibly interpolated
// Example: "./configuration.nix", "/etc/${name}"
type Path struct {
	Span  token.Span
	Parts []Part
}

// PropertyAccess selects an attribute, with an optional fallback
// Example: "pkgs.hello", "cfg.port or 80"
type PropertyAccess struct {
	Span          token.Span
	Expression    Expr
	AttributePath []Part
	Default       Expr // nil when there is no 'or' clause
}

// SearchNixPath is a lookup in NIX_PATH
// Example: "<nixpkgs>"
type SearchNixPath struct {
	Span token.Span
	Path string
}

// String is a double-quoted string literal
type String struct {
	Span  token.Span
	Parts []Part
}

// UnaryOperation represents a prefix operator
// Example: "!enabled", "-x"
type UnaryOperation struct {
	Span     token.Span
	Operator UnaryOperator
	Operand  Expr
}

// Uri is an unquoted URI literal
type Uri struct {
	Span token.Span
	Uri  string
}

// With brings the attributes of Expression into scope for Target
// Example: "with pkgs; [ git vim ]"
type With struct {
	Span       token.Span
	Expression Expr
	Target     Expr
}

// BindingKeyValue assigns To at the attribute path From
// Example: "services.openssh.enable = true;"
type BindingKeyValue struct {
	Span token.Span
	From []Part
	To   Expr
}

// BindingInherit copies names from the enclosing scope or from an expression
// Example: "inherit pkgs;", "inherit (lib) mkIf mkOption;"
type BindingInherit struct {
	Span       token.Span
	From       Expr // nil for a plain inherit
	Attributes []Part
}

// PartRaw is literal text inside a string, path or attribute path
type PartRaw struct {
	Span    token.Span
	Content string
}

// PartInterpolation is a ${...} segment
type PartInterpolation struct {
	Span       token.Span
	Expression Expr
}

// FunctionHeadSimple binds the whole argument to one name
type FunctionHeadSimple struct {
	Span       token.Span
	Identifier string
}

// FunctionHeadDestructured matches fields out of an attribute set argument
// Example: "{ a, b ? 1, ... }", "args@{ a }"
type FunctionHeadDestructured struct {
	Span       token.Span
	Ellipsis   bool
	Identifier string // name bound with '@', empty when absent
	Arguments  []FunctionHeadDestructuredArgument
}

type FunctionHeadDestructuredArgument struct {
	Span       token.Span
	Identifier string
	Default    Expr // nil when the argument is required
}
