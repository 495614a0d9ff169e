package parser

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnix/internal/errors"
	"gnix/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLiteralRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.INTEGER},
		{"0", token.INTEGER},
		{"1.5", token.FLOAT},
		{"2e10", token.FLOAT},
		{"1.5e-3", token.FLOAT},
		{"true", token.BOOL},
		{"false", token.BOOL},
		{"null", token.NULL},
		{"./configuration.nix", token.PATH},
		{"../lib/default.nix", token.PATH},
		{"/etc/nixos", token.PATH},
		{"~/projects", token.PATH},
		{"nixos/modules", token.PATH},
		{"./hosts/${name}.nix", token.PATH},
		{`"hello"`, token.STRING},
		{`"a ${b} c"`, token.STRING},
		{`"a ${ "}" } b"`, token.STRING},
		{`"escaped \" quote"`, token.STRING},
		{"''multi\n  line''", token.STRING},
		{"''a ''${b} ${c}''", token.STRING},
		{"<nixpkgs>", token.SEARCH_PATH},
		{"<nixpkgs/lib>", token.SEARCH_PATH},
		{"https://nixos.org/channels/nixos-24.05", token.URI},
		{"foo-bar", token.IDENTIFIER},
		{"x'", token.IDENTIFIER},
		{"_private", token.IDENTIFIER},
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		require.NoError(t, err, tt.input)
		require.Len(t, tokens, 1, tt.input)
		assert.Equal(t, tt.kind, tokens[0].Kind, tt.input)
		assert.Equal(t, tt.input, tokens[0].Content, tt.input)
	}
}

func TestKeywordsAreNeverIdentifiers(t *testing.T) {
	input := "assert else if in inherit let or rec then with iff lets"
	expected := []token.Kind{
		token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD,
		token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD, token.KEYWORD,
		token.IDENTIFIER, token.IDENTIFIER,
	}

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Kind != exp {
			t.Errorf("token %d (%q): expected %s, got %s", i, tokens[i].Content, exp, tokens[i].Kind)
		}
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	input := ". ... ? ++ + * / // - -> ! != = == < <= <| > >= && || |> : ; , @"
	expected := []token.Kind{
		token.ATTR_SELECT, token.ELLIPSIS, token.HAS_ATTR, token.LIST_CONCAT, token.ADD,
		token.MUL, token.DIV, token.UPDATE, token.SUB, token.IMPLIES,
		token.LOGICAL_NOT, token.NEQ, token.EQUALS, token.EQ, token.LT,
		token.LTE, token.PIPE_RIGHT, token.GT, token.GTE, token.LOGICAL_AND,
		token.LOGICAL_OR, token.PIPE_LEFT, token.COLON, token.SEMICOLON, token.COMMA,
		token.AT,
	}

	tokens, err := Tokenize(input)
	require.NoError(t, err)
	assert.Equal(t, expected, kinds(tokens))
}

func TestFloatIsNotSplit(t *testing.T) {
	tokens, err := Tokenize("1.5")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.FLOAT}, kinds(tokens))

	// a select on an integer-looking name is still a select
	tokens, err = Tokenize("a.b")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.IDENTIFIER, token.ATTR_SELECT, token.IDENTIFIER}, kinds(tokens))
}

func TestCommentsAndWhitespaceAreDropped(t *testing.T) {
	input := "1 # line comment\n\t2 /* block\ncomment */ 3\r\n"

	tokens, err := Tokenize(input)
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.INTEGER, token.INTEGER, token.INTEGER}, kinds(tokens))
	assert.Equal(t, "3", tokens[2].Content)
}

func TestBracketsAndInterpolation(t *testing.T) {
	tokens, err := Tokenize("{ ${a} = [ (b) ]; }")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.LBRACE, token.INTERPOLATE, token.IDENTIFIER, token.RBRACE, token.EQUALS,
		token.LBRACKET, token.LPAREN, token.IDENTIFIER, token.RPAREN, token.RBRACKET,
		token.SEMICOLON, token.RBRACE,
	}, kinds(tokens))
}

func TestDivisionIsNotAPath(t *testing.T) {
	tokens, err := Tokenize("a / b")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.IDENTIFIER, token.DIV, token.IDENTIFIER}, kinds(tokens))

	tokens, err = Tokenize("a // b")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.IDENTIFIER, token.UPDATE, token.IDENTIFIER}, kinds(tokens))

	tokens, err = Tokenize("a < b")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.IDENTIFIER, token.LT, token.IDENTIFIER}, kinds(tokens))
}

func TestTokenSpans(t *testing.T) {
	tokens, err := Tokenize("a\n  bc")
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Span.Start)
	assert.Equal(t, token.Position{Line: 1, Column: 2, Offset: 1}, tokens[0].Span.End)
	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 4}, tokens[1].Span.Start)
	assert.Equal(t, token.Position{Line: 2, Column: 5, Offset: 6}, tokens[1].Span.End)
}

func TestScannerAtOrigin(t *testing.T) {
	origin := token.Position{Line: 3, Column: 5, Offset: 20}

	tokens, err := NewScannerAt("x + 1", origin).ScanTokens()
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, origin, tokens[0].Span.Start)
	assert.Equal(t, token.Position{Line: 3, Column: 9, Offset: 24}, tokens[2].Span.Start)
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  string
		pos   token.Position
	}{
		{"1 & 2", errors.ErrorUnexpectedCharacter, token.Position{Line: 1, Column: 3, Offset: 2}},
		{"a | b", errors.ErrorUnexpectedCharacter, token.Position{Line: 1, Column: 3, Offset: 2}},
		{"x ^ y", errors.ErrorUnexpectedCharacter, token.Position{Line: 1, Column: 3, Offset: 2}},
		{"$x", errors.ErrorUnexpectedCharacter, token.Position{Line: 1, Column: 1, Offset: 0}},
		{"\n  \"never closed", errors.ErrorUnterminatedString, token.Position{Line: 2, Column: 3, Offset: 3}},
		{"''open", errors.ErrorUnterminatedString, token.Position{Line: 1, Column: 1, Offset: 0}},
		{"1 /* open", errors.ErrorUnterminatedComment, token.Position{Line: 1, Column: 3, Offset: 2}},
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		assert.Nil(t, tokens, "no partial token list for %q", tt.input)

		var lexErr *errors.LexError
		require.True(t, stderrors.As(err, &lexErr), "expected LexError for %q, got %v", tt.input, err)
		assert.Equal(t, tt.code, lexErr.Code, tt.input)
		assert.Equal(t, tt.pos, lexErr.Position, tt.input)
	}
}

func TestTokenEquality(t *testing.T) {
	a := token.Token{Kind: token.INTEGER, Content: "1", Span: token.Span{End: token.Position{Offset: 1}}}
	b := token.Token{Kind: token.INTEGER, Content: "1"}
	c := token.Token{Kind: token.FLOAT, Content: "1"}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, 0, a.Compare(b))
	assert.Equal(t, -1, a.Compare(c))
	assert.Equal(t, 1, c.Compare(a))
}
