// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"strings"
)

type Kind int

const (
	ILLEGAL Kind = iota

	// Literals
	INTEGER
	FLOAT
	STRING
	BOOL
	NULL
	PATH
	SEARCH_PATH
	URI

	KEYWORD
	IDENTIFIER

	// Brackets
	LBRACE
	RBRACE
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	INTERPOLATE // ${ outside of a string literal

	// Separators
	COMMA
	EQUALS
	COLON
	SEMICOLON
	ELLIPSIS
	AT

	// Operators
	ATTR_SELECT
	HAS_ATTR
	LIST_CONCAT
	MUL
	DIV
	SUB
	ADD
	LOGICAL_NOT
	UPDATE
	LT
	LTE
	GT
	GTE
	EQ
	NEQ
	LOGICAL_AND
	LOGICAL_OR
	IMPLIES
	PIPE_LEFT
	PIPE_RIGHT
)

var kindNames = [...]string{
	ILLEGAL:     "ILLEGAL",
	INTEGER:     "INTEGER",
	FLOAT:       "FLOAT",
	STRING:      "STRING",
	BOOL:        "BOOL",
	NULL:        "NULL",
	PATH:        "PATH",
	SEARCH_PATH: "SEARCH_PATH",
	URI:         "URI",
	KEYWORD:     "KEYWORD",
	IDENTIFIER:  "IDENTIFIER",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	LBRACKET:    "LBRACKET",
	RBRACKET:    "RBRACKET",
	INTERPOLATE: "INTERPOLATE",
	COMMA:       "COMMA",
	EQUALS:      "EQUALS",
	COLON:       "COLON",
	SEMICOLON:   "SEMICOLON",
	ELLIPSIS:    "ELLIPSIS",
	AT:          "AT",
	ATTR_SELECT: "ATTR_SELECT",
	HAS_ATTR:    "HAS_ATTR",
	LIST_CONCAT: "LIST_CONCAT",
	MUL:         "MUL",
	DIV:         "DIV",
	SUB:         "SUB",
	ADD:         "ADD",
	LOGICAL_NOT: "LOGICAL_NOT",
	UPDATE:      "UPDATE",
	LT:          "LT",
	LTE:         "LTE",
	GT:          "GT",
	GTE:         "GTE",
	EQ:          "EQ",
	NEQ:         "NEQ",
	LOGICAL_AND: "LOGICAL_AND",
	LOGICAL_OR:  "LOGICAL_OR",
	IMPLIES:     "IMPLIES",
	PIPE_LEFT:   "PIPE_LEFT",
	PIPE_RIGHT:  "PIPE_RIGHT",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsOperator reports whether k is one of the expression operators.
func (k Kind) IsOperator() bool {
	return k >= ATTR_SELECT && k <= PIPE_RIGHT
}

// IsLiteral reports whether k carries a literal value.
func (k Kind) IsLiteral() bool {
	return k >= INTEGER && k <= URI
}

// Keywords never lex as identifiers.
var Keywords = map[string]struct{}{
	"assert":  {},
	"else":    {},
	"if":      {},
	"in":      {},
	"inherit": {},
	"let":     {},
	"or":      {},
	"rec":     {},
	"then":    {},
	"with":    {},
}

// LookupIdent classifies a bare word.
func LookupIdent(word string) Kind {
	switch word {
	case "true", "false":
		return BOOL
	case "null":
		return NULL
	}
	if _, ok := Keywords[word]; ok {
		return KEYWORD
	}
	return IDENTIFIER
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based, in bytes
	Offset int // 0-based absolute index in input
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Position
	End   Position
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Contains reports whether o lies within s.
func (s Span) Contains(o Span) bool {
	return s.Start.Offset <= o.Start.Offset && o.End.Offset <= s.End.Offset
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	out := a
	if b.Start.Offset < out.Start.Offset {
		out.Start = b.Start
	}
	if b.End.Offset > out.End.Offset {
		out.End = b.End
	}
	return out
}

type Token struct {
	Kind    Kind
	Content string
	Span    Span
}

// Equal compares kind and content; spans are ignored.
func (t Token) Equal(o Token) bool {
	return t.Kind == o.Kind && t.Content == o.Content
}

// Compare orders tokens by kind, then content.
func (t Token) Compare(o Token) int {
	switch {
	case t.Kind < o.Kind:
		return -1
	case t.Kind > o.Kind:
		return 1
	}
	return strings.Compare(t.Content, o.Content)
}

// Is reports whether t is the keyword word.
func (t Token) Is(word string) bool {
	return t.Kind == KEYWORD && t.Content == word
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Content)
}
