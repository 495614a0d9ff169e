package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnix/grammar"
	"gnix/internal/errors"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		input    string
		keys     []string
		rendered string
	}{
		{"imports", []string{"imports"}, "imports"},
		{"services.openssh.enable", []string{"services", "openssh", "enable"}, "services.openssh.enable"},
		{"boot.loader.systemd-boot.enable", []string{"boot", "loader", "systemd-boot", "enable"}, "boot.loader.systemd-boot.enable"},
		{`users.users."alice@host".shell`, []string{"users", "users", "alice@host", "shell"}, `users.users."alice@host".shell`},
		{`"a.b".c`, []string{"a.b", "c"}, `"a.b".c`},
		{` networking . hostName `, []string{"networking", "hostName"}, "networking.hostName"},
		{`"escaped \" quote"`, []string{`escaped " quote`}, `"escaped \" quote"`},
	}

	for _, tt := range tests {
		sel, err := grammar.ParseSelector(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.keys, sel.Keys(), tt.input)
		assert.Equal(t, tt.rendered, sel.String(), tt.input)
	}
}

func TestSelectorPositions(t *testing.T) {
	sel, err := grammar.ParseSelector("nix.settings")
	require.NoError(t, err)
	require.Len(t, sel.Segments, 2)

	span := sel.Segments[1].Span()
	assert.Equal(t, "1:5", span.Start.String())
	assert.Equal(t, "1:13", span.End.String())
	assert.Equal(t, 4, span.Start.Offset)
}

func TestInvalidSelectors(t *testing.T) {
	for _, input := range []string{"", "   ", "a..b", ".a", "a.", "a.1", `"open`, "a b"} {
		_, err := grammar.ParseSelector(input)
		require.Error(t, err, input)

		d := grammar.Diagnostic(err)
		assert.Equal(t, errors.ErrorInvalidSelector, d.Code, input)
		assert.Equal(t, 1, d.Span.Start.Line, input)
	}
}

func TestDiagnosticPointsAtOffendingToken(t *testing.T) {
	_, err := grammar.ParseSelector("a..b")
	require.Error(t, err)

	d := grammar.Diagnostic(err)
	assert.Equal(t, 3, d.Span.Start.Column)
	assert.Contains(t, d.Message, "invalid selector")
}
