package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"gnix/internal/errors"
	"gnix/internal/parser"
)

// CheckCmd parses many files concurrently and reports their diagnostics.
type CheckCmd struct {
	Jobs    int           `short:"j" default:"4" help:"Number of files parsed at once."`
	Timeout time.Duration `default:"10s" help:"Give up on a single file after this long."`

	Paths []string `arg:"" name:"path" help:"Nix files, or directories searched for *.nix files."`
}

// fileReport is the outcome of checking one file.
type fileReport struct {
	path        string
	source      string
	diagnostics []errors.Diagnostic
	err         error
}

func (r fileReport) failed() bool {
	if r.err != nil {
		return true
	}
	for _, d := range r.diagnostics {
		if d.Level == errors.Error {
			return true
		}
	}
	return false
}

// Run executes the check command.
func (c *CheckCmd) Run(ctx context.Context) error {
	return c.run(ctx, os.Stdout, os.Stderr)
}

func (c *CheckCmd) run(ctx context.Context, out, errOut io.Writer) error {
	startTime := time.Now()

	files, err := collectFiles(c.Paths)
	if err != nil {
		return err
	}

	reports := make([]fileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, c.Jobs))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			reports[i] = checkFile(gctx, path, c.Timeout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, report := range reports {
		if report.failed() {
			failed++
		}
		if report.err != nil {
			fmt.Fprintf(errOut, "%s: %v\n", color.RedString("error"), report.err)
			continue
		}
		fmt.Fprint(errOut, errors.NewErrorReporter(report.path, report.source).FormatAll(report.diagnostics))
	}

	formattedDuration := formatDuration(time.Since(startTime))
	if failed > 0 {
		color.New(color.FgRed).Fprintf(out, "%d of %d file(s) failed after %s\n", failed, len(files), formattedDuration)
		return fmt.Errorf("%d file(s) with errors", failed)
	}
	color.New(color.FgGreen).Fprintf(out, "Successfully checked %d file(s) in %s\n", len(files), formattedDuration)
	return nil
}

// checkFile parses path, abandoning the parse once timeout elapses.
func checkFile(ctx context.Context, path string, timeout time.Duration) fileReport {
	report := fileReport{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		report.err = fmt.Errorf("failed to read %s: %w", path, err)
		return report
	}
	report.source = string(data)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type parsed struct {
		result *parser.ParseResult
		err    error
	}
	done := make(chan parsed, 1)
	go func() {
		result, err := parser.ParseSource(report.source)
		done <- parsed{result, err}
	}()

	select {
	case <-ctx.Done():
		report.err = fmt.Errorf("failed to parse %s: %w", path, ctx.Err())
	case p := <-done:
		if p.err == nil {
			report.diagnostics = p.result.Diagnostics
			break
		}
		if d, ok := errors.AsDiagnostic(p.err); ok {
			report.diagnostics = []errors.Diagnostic{d}
		} else {
			report.err = fmt.Errorf("failed to parse %s: %w", path, p.err)
		}
	}
	return report
}

// collectFiles expands directories into the .nix files below them.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() && p != path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !d.IsDir() && strings.HasSuffix(p, ".nix") {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, stderrors.New("no .nix files to check")
	}
	return files, nil
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
