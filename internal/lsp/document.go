package lsp

import (
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/zeebo/blake3"

	"gnix/internal/errors"
	"gnix/internal/parser"
	"gnix/token"
)

// document is one open editor buffer and the result of parsing it.
type document struct {
	uri    protocol.DocumentUri
	text   string
	sum    [32]byte
	lines  []int // byte offset of the start of each line
	result *parser.ParseResult
	fatal  error // lexer or bracket error; result is nil when set
}

func fingerprint(text string) [32]byte {
	return blake3.Sum256([]byte(text))
}

func newDocument(uri protocol.DocumentUri, text string) *document {
	doc := &document{uri: uri, text: text, sum: fingerprint(text), lines: indexLines(text)}
	doc.result, doc.fatal = parser.ParseSource(text)
	return doc
}

func indexLines(text string) []int {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return lines
}

// diagnostics returns every problem found in the document, fatal or not.
func (d *document) diagnostics() []errors.Diagnostic {
	if d.fatal != nil {
		if diag, ok := errors.AsDiagnostic(d.fatal); ok {
			return []errors.Diagnostic{diag}
		}
		return []errors.Diagnostic{errors.NewError("", d.fatal.Error(), token.Span{}).Build()}
	}
	return d.result.Diagnostics
}

// offset converts an editor position into a byte offset, clamped to the text.
func (d *document) offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(d.lines) {
		return len(d.text)
	}
	return min(d.lines[line]+int(pos.Character), len(d.text))
}

// position converts a byte offset back into an editor position.
func (d *document) position(offset int) protocol.Position {
	line := sort.Search(len(d.lines), func(i int) bool { return d.lines[i] > offset }) - 1
	line = max(line, 0)
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(offset - d.lines[line])}
}

// toRange converts a source span into an editor range.
func toRange(span token.Span) protocol.Range {
	return protocol.Range{Start: toPosition(span.Start), End: toPosition(span.End)}
}

func toPosition(pos token.Position) protocol.Position {
	if pos.Line == 0 {
		return protocol.Position{}
	}
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(max(pos.Column-1, 0)),
	}
}
