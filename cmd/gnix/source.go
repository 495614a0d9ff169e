package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/internal/parser"
)

const stdinName = "-"

func readSource(name string) (string, error) {
	var data []byte
	var err error
	if name == stdinName {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", displayName(name), err)
	}
	return string(data), nil
}

func displayName(name string) string {
	if name == stdinName {
		return "<stdin>"
	}
	return name
}

// parseFile parses name and writes its diagnostics to errOut. Fatal errors
// are rendered before being returned.
func parseFile(name string, errOut io.Writer) (*parser.ParseResult, error) {
	source, err := readSource(name)
	if err != nil {
		return nil, err
	}
	return parseText(displayName(name), source, errOut)
}

func parseText(filename, source string, errOut io.Writer) (*parser.ParseResult, error) {
	reporter := errors.NewErrorReporter(filename, source)

	result, err := parser.ParseSource(source)
	if err != nil {
		if d, ok := errors.AsDiagnostic(err); ok {
			fmt.Fprint(errOut, reporter.FormatDiagnostic(d))
		}
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	fmt.Fprint(errOut, reporter.FormatAll(result.Diagnostics))
	return result, nil
}

// writeExpr prints node in one of the output formats shared by parse and get.
func writeExpr(ctx context.Context, out io.Writer, node ast.Node, format string, spans bool) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(ast.ToMap(node, spans), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", data)
		return err
	case "yaml":
		data, err := yaml.MarshalContext(ctx, ast.ToMap(node, spans), yaml.Indent(2))
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "tree":
		writeTree(out, node, 0)
		return nil
	default:
		_, err := fmt.Fprintf(out, "%s\n", node)
		return err
	}
}

func writeTree(out io.Writer, node ast.Node, depth int) {
	fmt.Fprintf(out, "%*s%s %s", depth*2, "", node.NodeType(), ast.SpanOf(node))
	switch n := node.(type) {
	case *ast.Identifier:
		fmt.Fprintf(out, " %s", n.ID)
	case *ast.Integer:
		fmt.Fprintf(out, " %s", n.Value)
	case *ast.Float:
		fmt.Fprintf(out, " %s", n.Value)
	case *ast.PartRaw:
		fmt.Fprintf(out, " %q", n.Content)
	case *ast.BinaryOperation:
		fmt.Fprintf(out, " %s", n.Operator.Symbol())
	case *ast.Error:
		fmt.Fprintf(out, " %q", n.Message)
	}
	fmt.Fprintln(out)

	for _, child := range ast.Children(node) {
		writeTree(out, child, depth+1)
	}
}
