package lsp

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tevino/abool/v2"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gnix/internal/ast"
	"gnix/token"
)

var log = commonlog.GetLogger("gnix.lsp")

// ServerName is reported to clients during initialization.
const ServerName = "gnix"

// NixHandler implements the LSP server handlers for Nix files
type NixHandler struct {
	mu       sync.RWMutex
	docs     map[protocol.DocumentUri]*document
	shutdown *abool.AtomicBool
	version  string
}

// NewNixHandler creates and returns a new NixHandler instance
func NewNixHandler(version string) *NixHandler {
	return &NixHandler{
		docs:     make(map[protocol.DocumentUri]*document),
		shutdown: abool.New(),
		version:  version,
	}
}

// Handler wires the methods into a glsp protocol handler.
func (h *NixHandler) Handler() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentCompletion:         h.TextDocumentCompletion,
		TextDocumentHover:              h.TextDocumentHover,
		TextDocumentDocumentSymbol:     h.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *NixHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			HoverProvider:          true,
			DocumentSymbolProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &h.version,
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities
func (h *NixHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

// Shutdown handles the LSP shutdown request. Later document events are ignored.
func (h *NixHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	h.shutdown.Set()

	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.docs)
	return nil
}

// IsShutdown reports whether the client has requested shutdown.
func (h *NixHandler) IsShutdown() bool {
	return h.shutdown.IsSet()
}

// SetTrace records the trace level requested by the client
func (h *NixHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen parses the opened document and publishes its diagnostics
func (h *NixHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	if h.IsShutdown() {
		return nil
	}
	log.Debugf("opened %s", params.TextDocument.URI)

	doc, _ := h.update(params.TextDocument.URI, params.TextDocument.Text)
	h.publish(ctx, doc)
	return nil
}

// TextDocumentDidChange reparses the document when its content changed
func (h *NixHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if h.IsShutdown() {
		return nil
	}
	uri := params.TextDocument.URI

	text, ok := h.text(uri)
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text, ok = c.Text, true
		case protocol.TextDocumentContentChangeEvent:
			if !ok {
				return fmt.Errorf("incremental change for unknown document %s", uri)
			}
			text = applyChange(text, c)
		}
	}
	if !ok {
		return nil
	}

	doc, changed := h.update(uri, text)
	if changed {
		log.Debugf("changed %s", uri)
		h.publish(ctx, doc)
	}
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *NixHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.docs, params.TextDocument.URI)
	h.mu.Unlock()

	if ctx.Notify != nil {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         params.TextDocument.URI,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

// TextDocumentCompletion offers keywords and the names bound by the enclosing document
func (h *NixHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	items := []protocol.CompletionItem{}

	keywords := make([]string, 0, len(token.Keywords))
	for kw := range token.Keywords {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	for _, kw := range keywords {
		items = append(items, protocol.CompletionItem{
			Label: kw,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindKeyword),
		})
	}

	if doc, ok := h.document(params.TextDocument.URI); ok && doc.result != nil {
		for _, name := range scopeNames(doc.result.Expr) {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  ptrCompletionKind(protocol.CompletionItemKindVariable),
			})
		}
	}

	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// TextDocumentHover describes the innermost expression under the cursor
func (h *NixHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := h.document(params.TextDocument.URI)
	if !ok || doc.result == nil {
		return nil, nil
	}

	node := doc.result.NodeAt(doc.offset(params.Position))
	if node == nil {
		return nil, nil
	}

	text := node.String()
	if len(text) > 200 {
		text = text[:200] + " ..."
	}
	span := toRange(ast.SpanOf(node))
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("**%s**\n```nix\n%s\n```", node.NodeType(), text),
		},
		Range: &span,
	}, nil
}

// TextDocumentDocumentSymbol outlines the bindings of the document
func (h *NixHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := h.document(params.TextDocument.URI)
	if !ok || doc.result == nil {
		return []protocol.DocumentSymbol{}, nil
	}
	return collectSymbols(doc.result.Expr), nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *NixHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, ok := h.document(params.TextDocument.URI)
	if !ok {
		return nil, fmt.Errorf("document %s is not open", params.TextDocument.URI)
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc)),
	}, nil
}

// update stores text for uri, parsing it unless it is unchanged.
func (h *NixHandler) update(uri protocol.DocumentUri, text string) (*document, bool) {
	sum := fingerprint(text)

	h.mu.RLock()
	existing, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok && existing.sum == sum {
		return existing, false
	}

	doc := newDocument(uri, text)

	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()
	return doc, true
}

func (h *NixHandler) document(uri protocol.DocumentUri) (*document, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	doc, ok := h.docs[uri]
	return doc, ok
}

func (h *NixHandler) text(uri protocol.DocumentUri) (string, bool) {
	doc, ok := h.document(uri)
	if !ok {
		return "", false
	}
	return doc.text, true
}

func (h *NixHandler) publish(ctx *glsp.Context, doc *document) {
	diagnostics := ConvertDiagnostics(doc.uri, doc.diagnostics())
	log.Debugf("publishing %d diagnostic(s) for %s", len(diagnostics), doc.uri)

	if ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Diagnostics: diagnostics,
	})
}

// applyChange splices an incremental edit into text.
func applyChange(text string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}
	doc := &document{text: text, lines: indexLines(text)}
	start := doc.offset(change.Range.Start)
	end := max(doc.offset(change.Range.End), start)
	return text[:start] + change.Text + text[end:]
}

// scopeNames lists the names a completion inside the document can refer
// to: function arguments, let bindings and top-level keys.
func scopeNames(root ast.Expr) []string {
	seen := map[string]bool{}
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for e := root; e != nil; {
		switch n := e.(type) {
		case *ast.Function:
			switch head := n.Head.(type) {
			case *ast.FunctionHeadSimple:
				add(head.Identifier)
			case *ast.FunctionHeadDestructured:
				add(head.Identifier)
				for _, arg := range head.Arguments {
					add(arg.Identifier)
				}
			}
			e = n.Body
		case *ast.LetIn:
			for _, key := range ast.Keys(&ast.Map{Bindings: n.Bindings}) {
				add(key)
			}
			e = n.Target
		case *ast.With:
			e = n.Target
		case *ast.Assert:
			e = n.Target
		case *ast.Map:
			for _, key := range ast.Keys(n) {
				add(key)
			}
			e = nil
		default:
			e = nil
		}
	}

	return names
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
