package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gnix/internal/errors"
)

const diagnosticSource = "gnix"

// ConvertDiagnostics transforms parser diagnostics into LSP diagnostics for IDE display.
func ConvertDiagnostics(uri protocol.DocumentUri, diagnostics []errors.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diagnostics))

	for _, d := range diagnostics {
		message := d.Message
		if d.HelpText != "" {
			message += "\nhelp: " + d.HelpText
		}
		for _, s := range d.Suggestions {
			message += "\nhelp: " + s.Message
		}

		diagnostic := protocol.Diagnostic{
			Range:    toRange(d.Span),
			Severity: ptrSeverity(severity(d.Level)),
			Source:   ptrString(diagnosticSource),
			Message:  message,
		}
		if d.Code != "" {
			diagnostic.Code = &protocol.IntegerOrString{Value: d.Code}
		}
		for _, note := range d.Notes {
			diagnostic.RelatedInformation = append(diagnostic.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: uri, Range: diagnostic.Range},
				Message:  note,
			})
		}
		out = append(out, diagnostic)
	}

	return out
}

func severity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
