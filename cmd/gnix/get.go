package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sahilm/fuzzy"

	"gnix/grammar"
	"gnix/internal/ast"
	"gnix/internal/errors"
)

const maxSuggestions = 3

// GetCmd prints the expression bound at an attribute path.
type GetCmd struct {
	Format string `short:"f" enum:"nix,tree,json,yaml" default:"nix" help:"Output format (${enum})."`
	Spans  bool   `help:"Include source spans in json and yaml output."`

	File     string `arg:"" help:"Nix file to read, or '-' for stdin."`
	Selector string `arg:"" help:"Attribute path such as services.openssh.enable."`
}

// Run executes the get command.
func (c *GetCmd) Run(ctx context.Context) error {
	return c.run(ctx, os.Stdout, os.Stderr)
}

func (c *GetCmd) run(ctx context.Context, out, errOut io.Writer) error {
	selectorReporter := errors.NewErrorReporter("<selector>", c.Selector)

	sel, err := grammar.ParseSelector(c.Selector)
	if err != nil {
		fmt.Fprint(errOut, selectorReporter.FormatDiagnostic(grammar.Diagnostic(err)))
		return fmt.Errorf("invalid selector %q: %w", c.Selector, err)
	}

	result, err := parseFile(c.File, errOut)
	if err != nil {
		return err
	}

	keys := sel.Keys()
	value, candidates := ast.LookupPath(result.Expr, keys)
	if value == nil {
		missing := missingSegment(result.Expr, keys)
		d := errors.UnknownKey(keys[missing], sel.Segments[missing].Span(), suggest(keys[missing], candidates))
		fmt.Fprint(errOut, selectorReporter.FormatDiagnostic(d))
		return fmt.Errorf("%s: no binding at %s", displayName(c.File), sel)
	}

	return writeExpr(ctx, out, value, c.Format, c.Spans)
}

// missingSegment returns the index of the first selector segment that
// could not be resolved.
func missingSegment(root ast.Expr, keys []string) int {
	for i := len(keys) - 1; i > 0; i-- {
		if found, _ := ast.LookupPath(root, keys[:i]); found != nil {
			return i
		}
	}
	return 0
}

// suggest ranks candidates by fuzzy similarity to key.
func suggest(key string, candidates []string) []string {
	var similar []string
	for _, match := range fuzzy.Find(key, candidates) {
		similar = append(similar, match.Str)
		if len(similar) == maxSuggestions {
			break
		}
	}
	return similar
}
