package parser

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnix/internal/errors"
	"gnix/token"
)

func group(t *testing.T, source string) (TokenTree, []token.Token, error) {
	t.Helper()
	tokens, err := Tokenize(source)
	require.NoError(t, err)
	tree, err := GroupTokens(tokens)
	return tree, tokens, err
}

func TestGroupWellFormed(t *testing.T) {
	tree, tokens, err := group(t, "{ a = [ 1 (2) ]; }")
	require.NoError(t, err)

	require.Len(t, tree, 1)
	outer, ok := tree[0].(*Group)
	require.True(t, ok)
	assert.Equal(t, token.LBRACE, outer.Kind())
	assert.Equal(t, "{", outer.Open().Content)
	assert.Equal(t, "}", outer.Close().Content)

	inner := outer.Inner()
	require.Len(t, inner, 4)
	assert.Equal(t, "a", inner[0].(Leaf).Token.Content)
	list, ok := inner[2].(*Group)
	require.True(t, ok)
	assert.Equal(t, token.LBRACKET, list.Kind())
	assert.Equal(t, token.SEMICOLON, inner[3].(Leaf).Token.Kind)

	assert.Equal(t, 3, tree.Depth())
	assert.Equal(t, tokens, tree.Flatten())
}

func TestGroupKeepsTopLevelTokens(t *testing.T) {
	tree, _, err := group(t, "f a b")
	require.NoError(t, err)
	require.Len(t, tree, 3)
	for _, node := range tree {
		_, ok := node.(Leaf)
		assert.True(t, ok)
	}
	assert.Equal(t, 0, tree.Depth())
}

func TestGroupInterpolationPairsWithBrace(t *testing.T) {
	tree, _, err := group(t, "a.${b}.c")
	require.NoError(t, err)
	require.Len(t, tree, 5)

	g, ok := tree[2].(*Group)
	require.True(t, ok)
	assert.Equal(t, token.INTERPOLATE, g.Kind())
	assert.Equal(t, "}", g.Close().Content)
}

func TestGroupSpan(t *testing.T) {
	tree, _, err := group(t, "x (a\n b)")
	require.NoError(t, err)

	span := tree[1].NodeSpan()
	assert.Equal(t, token.Position{Line: 1, Column: 3, Offset: 2}, span.Start)
	assert.Equal(t, token.Position{Line: 2, Column: 4, Offset: 8}, span.End)
}

func TestGroupErrors(t *testing.T) {
	tests := []struct {
		source string
		code   string
		pos    token.Position
		opener string
	}{
		{"{ a ]", errors.ErrorUnexpectedClosing, token.Position{Line: 1, Column: 5, Offset: 4}, "{"},
		{"${ a )", errors.ErrorUnexpectedClosing, token.Position{Line: 1, Column: 6, Offset: 5}, "${"},
		{"a )", errors.ErrorUnexpectedClosing, token.Position{Line: 1, Column: 3, Offset: 2}, ""},
		{"{ a", errors.ErrorUnterminatedBlock, token.Position{Line: 1, Column: 1, Offset: 0}, "{"},
		{"x ( [ a ]", errors.ErrorUnterminatedBlock, token.Position{Line: 1, Column: 3, Offset: 2}, "("},
		{"[ { } ] {", errors.ErrorUnterminatedBlock, token.Position{Line: 1, Column: 9, Offset: 8}, "{"},
	}

	for _, tt := range tests {
		tree, _, err := group(t, tt.source)
		assert.Nil(t, tree, tt.source)

		var syntaxErr *errors.SyntaxError
		require.True(t, stderrors.As(err, &syntaxErr), "expected SyntaxError for %q, got %v", tt.source, err)
		assert.Equal(t, tt.code, syntaxErr.Code, tt.source)
		assert.Equal(t, tt.pos, syntaxErr.Position, tt.source)
		if tt.opener == "" {
			assert.Nil(t, syntaxErr.Opener, tt.source)
		} else {
			require.NotNil(t, syntaxErr.Opener, tt.source)
			assert.Equal(t, tt.opener, syntaxErr.Opener.Content, tt.source)
		}
	}
}

func TestGroupEmptyInput(t *testing.T) {
	tree, err := GroupTokens(nil)
	require.NoError(t, err)
	assert.Empty(t, tree)
}
