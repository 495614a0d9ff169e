// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"gnix/internal/errors"
	"gnix/internal/parser"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

// Start reads Nix expressions from in and prints their parsed form to out.
// Input with unclosed brackets continues on the next line. Lines starting
// with :tokens print the token stream instead.
func Start(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	var pending []string

	for {
		if len(pending) == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUATION)
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := scanner.Text()
		if len(pending) == 0 {
			if rest, ok := strings.CutPrefix(line, ":tokens"); ok {
				printTokens(out, rest)
				continue
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
		}

		pending = append(pending, line)
		source := strings.Join(pending, "\n")
		if incomplete(source) {
			continue
		}
		pending = nil
		eval(out, source)
	}
}

// incomplete reports whether source only fails because a bracket or string
// is still open.
func incomplete(source string) bool {
	_, err := parser.ParseSource(source)

	var syntaxErr *errors.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return syntaxErr.Code == errors.ErrorUnterminatedBlock
	}
	var lexErr *errors.LexError
	if stderrors.As(err, &lexErr) {
		return lexErr.Code == errors.ErrorUnterminatedString || lexErr.Code == errors.ErrorUnterminatedComment
	}
	return false
}

func eval(out io.Writer, source string) {
	reporter := errors.NewErrorReporter("<repl>", source)

	expr, diagnostics, err := parser.Parse(source)
	if err != nil {
		if d, ok := errors.AsDiagnostic(err); ok {
			fmt.Fprint(out, reporter.FormatDiagnostic(d))
		} else {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		return
	}

	fmt.Fprint(out, reporter.FormatAll(diagnostics))
	fmt.Fprintf(out, "%s\n", expr)
}

func printTokens(out io.Writer, source string) {
	tokens, err := parser.Tokenize(source)
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return
	}
	for _, tok := range tokens {
		fmt.Fprintf(out, "%s\n", tok)
	}
}
