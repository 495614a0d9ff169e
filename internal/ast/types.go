package ast

import "fmt"

type NodeType int

const (
	// Special / error
	ILLEGAL NodeType = iota
	ERROR

	// Literals
	INTEGER
	FLOAT
	STRING
	INDENTED_STRING
	PATH
	SEARCH_NIX_PATH
	URI
	IDENTIFIER

	// Collections
	LIST
	MAP

	// Operations
	BINARY_OPERATION
	UNARY_OPERATION
	HAS_ATTRIBUTE
	PROPERTY_ACCESS
	FUNCTION_APPLICATION

	// Keyword constructs
	ASSERT
	IF_THEN_ELSE
	LET_IN
	WITH

	// Functions
	FUNCTION
	FUNCTION_HEAD_SIMPLE
	FUNCTION_HEAD_DESTRUCTURED

	// Bindings and parts
	BINDING_KEY_VALUE
	BINDING_INHERIT
	PART_RAW
	PART_INTERPOLATION
)

var nodeTypeNames = [...]string{
	ILLEGAL:                    "Illegal",
	ERROR:                      "Error",
	INTEGER:                    "Integer",
	FLOAT:                      "Float",
	STRING:                     "String",
	INDENTED_STRING:            "IndentedString",
	PATH:                       "Path",
	SEARCH_NIX_PATH:            "SearchNixPath",
	URI:                        "Uri",
	IDENTIFIER:                 "Identifier",
	LIST:                       "List",
	MAP:                        "Map",
	BINARY_OPERATION:           "BinaryOperation",
	UNARY_OPERATION:            "UnaryOperation",
	HAS_ATTRIBUTE:              "HasAttribute",
	PROPERTY_ACCESS:            "PropertyAccess",
	FUNCTION_APPLICATION:       "FunctionApplication",
	ASSERT:                     "Assert",
	IF_THEN_ELSE:               "IfThenElse",
	LET_IN:                     "LetIn",
	WITH:                       "With",
	FUNCTION:                   "Function",
	FUNCTION_HEAD_SIMPLE:       "FunctionHeadSimple",
	FUNCTION_HEAD_DESTRUCTURED: "FunctionHeadDestructured",
	BINDING_KEY_VALUE:          "BindingKeyValue",
	BINDING_INHERIT:            "BindingInherit",
	PART_RAW:                   "PartRaw",
	PART_INTERPOLATION:         "PartInterpolation",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// BinaryOperator is the closed set of infix operators.
type BinaryOperator int

const (
	Addition BinaryOperator = iota
	Concatenation
	EqualTo
	GreaterThan
	GreaterThanOrEqualTo
	Division
	Implication
	LessThan
	LessThanOrEqualTo
	LogicalAnd
	LogicalOr
	Multiplication
	NotEqualTo
	Subtraction
	Update
	PipeLeft
	PipeRight
)

var binaryOperators = [...]struct{ name, symbol string }{
	Addition:             {"Addition", "+"},
	Concatenation:        {"Concatenation", "++"},
	EqualTo:              {"EqualTo", "=="},
	GreaterThan:          {"GreaterThan", ">"},
	GreaterThanOrEqualTo: {"GreaterThanOrEqualTo", ">="},
	Division:             {"Division", "/"},
	Implication:          {"Implication", "->"},
	LessThan:             {"LessThan", "<"},
	LessThanOrEqualTo:    {"LessThanOrEqualTo", "<="},
	LogicalAnd:           {"LogicalAnd", "&&"},
	LogicalOr:            {"LogicalOr", "||"},
	Multiplication:       {"Multiplication", "*"},
	NotEqualTo:           {"NotEqualTo", "!="},
	Subtraction:          {"Subtraction", "-"},
	Update:               {"Update", "//"},
	PipeLeft:             {"PipeLeft", "|>"},
	PipeRight:            {"PipeRight", "<|"},
}

func (op BinaryOperator) String() string {
	if op >= 0 && int(op) < len(binaryOperators) {
		return binaryOperators[op].name
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

// Symbol is the operator as written in source.
func (op BinaryOperator) Symbol() string {
	if op >= 0 && int(op) < len(binaryOperators) {
		return binaryOperators[op].symbol
	}
	return "?"
}

type UnaryOperator int

const (
	Not UnaryOperator = iota
	Negate
)

func (op UnaryOperator) String() string {
	switch op {
	case Not:
		return "Not"
	case Negate:
		return "Negate"
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(op))
}

func (op UnaryOperator) Symbol() string {
	if op == Not {
		return "!"
	}
	return "-"
}
