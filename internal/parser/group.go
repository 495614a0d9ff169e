package parser

import (
	"fmt"

	"github.com/edwingeng/deque"

	"gnix/internal/errors"
	"gnix/token"
)

// TreeNode is one element of a token tree: a Leaf or a *Group.
type TreeNode interface {
	NodeSpan() token.Span
	treeNode()
}

// TokenTree is a flat run of tokens in which every bracketed region has
// been folded into a *Group.
type TokenTree []TreeNode

// Leaf wraps a single token.
type Leaf struct {
	Token token.Token
}

// Group is one matched bracket region. Its first and last children are
// the bracket tokens themselves.
type Group struct {
	Children []TreeNode
}

func (l Leaf) NodeSpan() token.Span { return l.Token.Span }
func (Leaf) treeNode()              {}

func (g *Group) NodeSpan() token.Span {
	return token.Span{Start: g.Open().Span.Start, End: g.Close().Span.End}
}
func (*Group) treeNode() {}

// Open returns the opening bracket.
func (g *Group) Open() token.Token {
	return g.Children[0].(Leaf).Token
}

// Close returns the closing bracket.
func (g *Group) Close() token.Token {
	return g.Children[len(g.Children)-1].(Leaf).Token
}

// Kind is the kind of the opening bracket.
func (g *Group) Kind() token.Kind {
	return g.Open().Kind
}

// Inner returns the children between the brackets.
func (g *Group) Inner() TokenTree {
	return g.Children[1 : len(g.Children)-1]
}

var closerFor = map[token.Kind]token.Kind{
	token.LBRACE:      token.RBRACE,
	token.LPAREN:      token.RPAREN,
	token.LBRACKET:    token.RBRACKET,
	token.INTERPOLATE: token.RBRACE,
}

var bracketText = map[token.Kind]string{
	token.RBRACE:   "}",
	token.RPAREN:   ")",
	token.RBRACKET: "]",
}

func isCloser(k token.Kind) bool {
	return k == token.RBRACE || k == token.RPAREN || k == token.RBRACKET
}

type frame struct {
	opener   *token.Token // nil for the top level
	children []TreeNode
}

// GroupTokens folds matched brackets into nested groups. Mismatched and
// unterminated brackets are fatal.
func GroupTokens(tokens []token.Token) (TokenTree, error) {
	stack := deque.NewDeque()
	stack.PushBack(&frame{})

	for i := range tokens {
		tok := tokens[i]
		top := stack.Back().(*frame)

		if _, ok := closerFor[tok.Kind]; ok {
			stack.PushBack(&frame{opener: &tokens[i], children: []TreeNode{Leaf{tok}}})
			continue
		}

		if !isCloser(tok.Kind) {
			top.children = append(top.children, Leaf{tok})
			continue
		}

		if top.opener == nil {
			return nil, &errors.SyntaxError{
				Code:     errors.ErrorUnexpectedClosing,
				Message:  fmt.Sprintf("unexpected closing '%s' with no matching opener", tok.Content),
				Position: tok.Span.Start,
			}
		}
		if want := closerFor[top.opener.Kind]; want != tok.Kind {
			return nil, &errors.SyntaxError{
				Code:     errors.ErrorUnexpectedClosing,
				Message:  fmt.Sprintf("unexpected closing '%s', expected '%s'", tok.Content, bracketText[want]),
				Position: tok.Span.Start,
				Opener:   top.opener,
			}
		}

		stack.PopBack()
		top.children = append(top.children, Leaf{tok})
		parent := stack.Back().(*frame)
		parent.children = append(parent.children, &Group{Children: top.children})
	}

	if stack.Len() > 1 {
		top := stack.Back().(*frame)
		return nil, &errors.SyntaxError{
			Code:     errors.ErrorUnterminatedBlock,
			Message:  fmt.Sprintf("unterminated block, '%s' is never closed", top.opener.Content),
			Position: top.opener.Span.Start,
			Opener:   top.opener,
		}
	}

	return stack.Back().(*frame).children, nil
}

// Flatten returns the tokens of tree in source order, brackets included.
func (tree TokenTree) Flatten() []token.Token {
	var out []token.Token
	for _, node := range tree {
		switch n := node.(type) {
		case Leaf:
			out = append(out, n.Token)
		case *Group:
			out = append(out, TokenTree(n.Children).Flatten()...)
		}
	}
	return out
}

// Depth is the deepest group nesting in tree.
func (tree TokenTree) Depth() int {
	depth := 0
	for _, node := range tree {
		if g, ok := node.(*Group); ok {
			depth = max(depth, 1+g.Inner().Depth())
		}
	}
	return depth
}
