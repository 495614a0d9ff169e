package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gnix/internal/parser"
)

var errSyntax = stderrors.New("input has syntax errors")

// ParseCmd prints the syntax tree of a file.
type ParseCmd struct {
	Format string `short:"f" enum:"nix,tree,json,yaml" default:"nix" help:"Output format (${enum})."`
	Spans  bool   `help:"Include source spans in json and yaml output."`

	File string `arg:"" optional:"" default:"-" help:"Nix file to parse, or '-' for stdin."`
}

// Run executes the parse command.
func (c *ParseCmd) Run(ctx context.Context) error {
	return c.run(ctx, os.Stdout, os.Stderr)
}

func (c *ParseCmd) run(ctx context.Context, out, errOut io.Writer) error {
	result, err := parseFile(c.File, errOut)
	if err != nil {
		return err
	}
	log.Debugf("parsed %s into %d token(s)", displayName(c.File), len(result.Tokens))

	if err := writeExpr(ctx, out, result.Expr, c.Format, c.Spans); err != nil {
		return err
	}
	if result.HasErrors() {
		return errSyntax
	}
	return nil
}

// TokensCmd prints the lexer output of a file.
type TokensCmd struct {
	Spans bool `help:"Prefix each token with its source span."`

	File string `arg:"" optional:"" default:"-" help:"Nix file to tokenize, or '-' for stdin."`
}

// Run executes the tokens command.
func (c *TokensCmd) Run(ctx context.Context) error {
	return c.run(os.Stdout, os.Stderr)
}

func (c *TokensCmd) run(out, errOut io.Writer) error {
	source, err := readSource(c.File)
	if err != nil {
		return err
	}

	tokens, err := parser.Tokenize(source)
	if err != nil {
		_, err = parseText(displayName(c.File), source, errOut)
		return err
	}

	for _, tok := range tokens {
		if c.Spans {
			fmt.Fprintf(out, "%-12s ", tok.Span)
		}
		fmt.Fprintf(out, "%s\n", tok)
	}
	return nil
}
