package lsp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gnix/internal/errors"
	"gnix/internal/lsp"
)

const uri = "file:///etc/nixos/configuration.nix"

const configuration = `{ pkgs, ... }:
let
  user = "alice";
in {
  imports = [ ./hw.nix ];
  environment.systemPackages = with pkgs; [ git ];
  networking.hostName = lib.mkDefault user;
}
`

type recorder struct {
	published []*protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(*protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last(t *testing.T) []protocol.Diagnostic {
	t.Helper()
	require.NotEmpty(t, r.published)
	return r.published[len(r.published)-1].Diagnostics
}

func open(t *testing.T, h *lsp.NixHandler, ctx *glsp.Context, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "nix", Text: text},
	})
	require.NoError(t, err)
}

func TestInitializeAdvertisesLegend(t *testing.T) {
	h := lsp.NewNixHandler("1.2.3")

	result, err := h.Initialize(&glsp.Context{}, &protocol.InitializeParams{})
	require.NoError(t, err)

	initResult := result.(*protocol.InitializeResult)
	assert.Equal(t, "gnix", initResult.ServerInfo.Name)
	assert.Equal(t, "1.2.3", *initResult.ServerInfo.Version)

	options := initResult.Capabilities.SemanticTokensProvider.(*protocol.SemanticTokensOptions)
	assert.Equal(t, lsp.SemanticTokenTypes, options.Legend.TokenTypes)
}

func TestDiagnosticsArePublished(t *testing.T) {
	h := lsp.NewNixHandler("test")
	r := &recorder{}

	open(t, h, r.context(), configuration)
	assert.Empty(t, r.last(t))

	open(t, h, r.context(), "{ a = ; }")
	diagnostics := r.last(t)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, errors.ErrorExpectedExpression, diagnostics[0].Code.Value)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diagnostics[0].Severity)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 6},
		End:   protocol.Position{Line: 0, Character: 7},
	}, diagnostics[0].Range)

	open(t, h, r.context(), "{ a = 1; a = 2; }")
	diagnostics = r.last(t)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diagnostics[0].Severity)
	require.Len(t, diagnostics[0].RelatedInformation, 1)
}

func TestFatalErrorsBecomeDiagnostics(t *testing.T) {
	h := lsp.NewNixHandler("test")
	r := &recorder{}

	open(t, h, r.context(), "{\n  a = 1;\n")
	diagnostics := r.last(t)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, errors.ErrorUnterminatedBlock, diagnostics[0].Code.Value)
	assert.Equal(t, protocol.Position{Line: 0, Character: 0}, diagnostics[0].Range.Start)

	// no tree, but every request still answers
	tokens, err := h.TextDocumentSemanticTokensFull(r.context(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, tokens.Data)

	symbols, err := h.TextDocumentDocumentSymbol(r.context(), &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestDidChange(t *testing.T) {
	h := lsp.NewNixHandler("test")
	r := &recorder{}
	open(t, h, r.context(), "{ a = 1; }")
	require.Len(t, r.published, 1)

	change := func(changes ...any) {
		err := h.TextDocumentDidChange(r.context(), &protocol.DidChangeTextDocumentParams{
			TextDocument:   protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}},
			ContentChanges: changes,
		})
		require.NoError(t, err)
	}

	// identical content is not reparsed or republished
	change(protocol.TextDocumentContentChangeEventWhole{Text: "{ a = 1; }"})
	assert.Len(t, r.published, 1)

	change(protocol.TextDocumentContentChangeEventWhole{Text: "{ a = ; }"})
	require.Len(t, r.published, 2)
	assert.Len(t, r.last(t), 1)

	// splice "1" back in at column 6
	at := protocol.Position{Line: 0, Character: 6}
	change(protocol.TextDocumentContentChangeEvent{Range: &protocol.Range{Start: at, End: at}, Text: "1"})
	require.Len(t, r.published, 3)
	assert.Empty(t, r.last(t))
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	h := lsp.NewNixHandler("test")
	r := &recorder{}
	open(t, h, r.context(), "{ a = ; }")

	err := h.TextDocumentDidClose(r.context(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Empty(t, r.last(t))

	_, err = h.TextDocumentSemanticTokensFull(r.context(), &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	assert.Error(t, err)
}

func TestShutdownIgnoresLaterEvents(t *testing.T) {
	h := lsp.NewNixHandler("test")
	r := &recorder{}

	require.NoError(t, h.Shutdown(r.context()))
	assert.True(t, h.IsShutdown())

	open(t, h, r.context(), configuration)
	assert.Empty(t, r.published)
}

func TestTextDocumentSemanticTokensFull(t *testing.T) {
	h := lsp.NewNixHandler("test")
	open(t, h, (&recorder{}).context(), configuration)

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	byPosition := map[[2]uint32]DecodedToken{}
	for _, tok := range decoded {
		byPosition[[2]uint32{tok.Line, tok.Char}] = tok
	}

	assertToken(t, byPosition, 0, 2, 4, "parameter", []string{"declaration"})
	assertToken(t, byPosition, 1, 0, 3, "keyword", nil)
	assertToken(t, byPosition, 2, 2, 4, "property", []string{"declaration"})
	assertToken(t, byPosition, 2, 9, 7, "string", nil)
	assertToken(t, byPosition, 3, 0, 2, "keyword", nil)
	assertToken(t, byPosition, 4, 14, 8, "string", nil)
	assertToken(t, byPosition, 5, 31, 4, "keyword", nil)
	assertToken(t, byPosition, 5, 36, 4, "variable", nil)
	assertToken(t, byPosition, 6, 2, 10, "property", []string{"declaration"})
	assertToken(t, byPosition, 6, 13, 8, "property", []string{"declaration"})
	assertToken(t, byPosition, 6, 24, 3, "variable", nil)
	assertToken(t, byPosition, 6, 28, 9, "function", nil)
	assertToken(t, byPosition, 6, 38, 4, "variable", nil)
}

func TestMultiLineTokensAreSplit(t *testing.T) {
	h := lsp.NewNixHandler("test")
	open(t, h, (&recorder{}).context(), "''\n  a\n'' ++ import")

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	decoded, err := decodeSemanticTokens(tokens.Data)
	require.NoError(t, err)
	require.Len(t, decoded, 5)

	assert.Equal(t, DecodedToken{Index: 0, Line: 0, Char: 0, Length: 2, Type: "string"}, decoded[0])
	assert.Equal(t, DecodedToken{Index: 1, Line: 1, Char: 0, Length: 3, Type: "string"}, decoded[1])
	assert.Equal(t, DecodedToken{Index: 2, Line: 2, Char: 0, Length: 2, Type: "string"}, decoded[2])
	assert.Equal(t, "operator", decoded[3].Type)
	assert.Equal(t, []string{"defaultLibrary"}, decoded[4].Modifiers)
}

func TestCompletion(t *testing.T) {
	h := lsp.NewNixHandler("test")
	open(t, h, (&recorder{}).context(), configuration)

	result, err := h.TextDocumentCompletion(&glsp.Context{}, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		},
	})
	require.NoError(t, err)

	var labels []string
	for _, item := range result.(*protocol.CompletionList).Items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "let")
	assert.Contains(t, labels, "inherit")
	assert.Subset(t, labels, []string{"pkgs", "user", "imports", "environment", "networking"})
}

func TestDocumentSymbols(t *testing.T) {
	h := lsp.NewNixHandler("test")
	open(t, h, (&recorder{}).context(), configuration)

	result, err := h.TextDocumentDocumentSymbol(&glsp.Context{}, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)

	symbols := result.([]protocol.DocumentSymbol)
	require.Len(t, symbols, 4)

	expected := []struct {
		name string
		kind protocol.SymbolKind
	}{
		{"user", protocol.SymbolKindString},
		{"imports", protocol.SymbolKindArray},
		{"environment.systemPackages", protocol.SymbolKindVariable},
		{"networking.hostName", protocol.SymbolKindVariable},
	}
	for i, want := range expected {
		assert.Equal(t, want.name, symbols[i].Name)
		assert.Equal(t, want.kind, symbols[i].Kind, want.name)
	}
	assert.Equal(t, protocol.Position{Line: 6, Character: 2}, symbols[3].SelectionRange.Start)
	assert.Equal(t, protocol.Position{Line: 6, Character: 21}, symbols[3].SelectionRange.End)
}

func TestHover(t *testing.T) {
	h := lsp.NewNixHandler("test")
	open(t, h, (&recorder{}).context(), configuration)

	hover, err := h.TextDocumentHover(&glsp.Context{}, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 2, Character: 9},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content := hover.Contents.(protocol.MarkupContent)
	assert.Contains(t, content.Value, "**String**")
	assert.Contains(t, content.Value, `"alice"`)
	assert.Equal(t, protocol.Position{Line: 2, Character: 9}, hover.Range.Start)
}

type DecodedToken struct {
	Index     int
	Line      uint32
	Char      uint32
	Length    uint32
	Type      string
	Modifiers []string
}

func decodeSemanticTokens(raw []uint32) ([]DecodedToken, error) {
	if len(raw)%5 != 0 {
		return nil, fmt.Errorf("raw token data length %d is not a multiple of 5", len(raw))
	}

	var (
		decoded []DecodedToken
		line    uint32
		char    uint32
	)

	for i := 0; i < len(raw); i += 5 {
		deltaLine := raw[i]
		deltaStart := raw[i+1]
		length := raw[i+2]
		tokenTypeIdx := raw[i+3]
		tokenModMask := raw[i+4]

		if deltaLine == 0 {
			char += deltaStart
		} else {
			line += deltaLine
			char = deltaStart
		}

		var modifiers []string
		for j, name := range lsp.SemanticTokenModifiers {
			if tokenModMask&(1<<j) != 0 {
				modifiers = append(modifiers, name)
			}
		}

		if int(tokenTypeIdx) >= len(lsp.SemanticTokenTypes) {
			return nil, fmt.Errorf("token type index %d out of range", tokenTypeIdx)
		}

		decoded = append(decoded, DecodedToken{
			Index:     i / 5,
			Line:      line,
			Char:      char,
			Length:    length,
			Type:      lsp.SemanticTokenTypes[tokenTypeIdx],
			Modifiers: modifiers,
		})
	}

	return decoded, nil
}

func assertToken(t *testing.T, tokens map[[2]uint32]DecodedToken, line, char, length uint32, tokenType string, modifiers []string) {
	t.Helper()
	tok, ok := tokens[[2]uint32{line, char}]
	require.True(t, ok, "no token at %d:%d", line, char)
	assert.Equal(t, length, tok.Length, "length at %d:%d", line, char)
	assert.Equal(t, tokenType, tok.Type, "type at %d:%d", line, char)
	assert.Equal(t, modifiers, tok.Modifiers, "modifiers at %d:%d", line, char)
}
