package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/kong"

	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/internal/parser"
)

var configDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gnix")
})

func configFile(name string) string {
	return filepath.Join(configDir(), name)
}

// loadConfig is a [kong.ConfigurationLoader] for configuration files written
// in Nix. The file must evaluate to an attribute set, optionally behind a
// function head or let block:
//
//	{
//	  verbose = 1;
//	  no_color = true;
//	  check = { jobs = 8; timeout = "30s"; };
//	}
//
// Nested sets and dotted keys are flattened with hyphens, so check.jobs
// configures the jobs flag of the check command. Underscores may stand in
// for hyphens. Flags given on the command line take precedence.
func loadConfig(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	expr, diagnostics, err := parser.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for _, d := range diagnostics {
		if d.Level == errors.Error {
			return nil, fmt.Errorf("failed to parse config: %w", d)
		}
	}

	root := ast.TopLevel(expr)
	if root == nil {
		return nil, fmt.Errorf("config must be an attribute set, found %s", expr.NodeType())
	}

	cfg := config{}
	if err := cfg.collect("", root); err != nil {
		return nil, err
	}
	return cfg, nil
}

// config implements [kong.Resolver] over flattened Nix bindings.
type config map[string]any

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver]. Command flags are looked up under
// their command name first.
func (c config) Resolve(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
	names := []string{flag.Name}
	if parent != nil && parent.Command != nil {
		names = append([]string{parent.Command.Name + "-" + flag.Name}, names...)
	}

	for _, name := range names {
		if value, ok := c[name]; ok {
			return value, nil
		}
		if value, ok := c[strings.ReplaceAll(name, "-", "_")]; ok {
			return value, nil
		}
	}
	return nil, nil
}

func (c config) collect(prefix string, m *ast.Map) error {
	for _, binding := range m.Bindings {
		b, ok := binding.(*ast.BindingKeyValue)
		if !ok {
			return fmt.Errorf("%s: inherit is not supported in config", ast.SpanOf(binding).Start)
		}
		key, ok := ast.StaticKey(b.From)
		if !ok {
			return fmt.Errorf("%s: config keys must be static", b.Span.Start)
		}
		key = prefix + strings.ReplaceAll(key, ".", "-")

		if nested, ok := b.To.(*ast.Map); ok {
			if err := c.collect(key+"-", nested); err != nil {
				return err
			}
			continue
		}

		value, err := configValue(b.To)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", b.Span.Start, key, err)
		}
		if value != nil {
			c[key] = value
		}
	}
	return nil
}

// configValue converts a literal into the form kong expects. Numbers stay
// strings so the flag mapper parses them.
func configValue(e ast.Expr) (any, error) {
	switch v := e.(type) {
	case *ast.Integer:
		return v.Value, nil
	case *ast.Float:
		return v.Value, nil
	case *ast.Identifier:
		switch v.ID {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
	case *ast.String:
		return literalText(v.Parts)
	case *ast.IndentedString:
		return literalText(v.Parts)
	case *ast.Path:
		return v.String(), nil
	case *ast.List:
		values := make([]any, 0, len(v.Elements))
		for _, el := range v.Elements {
			value, err := configValue(el)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return values, nil
	}
	return nil, fmt.Errorf("unsupported value %s", e.NodeType())
}

func literalText(parts []ast.Part) (string, error) {
	var b strings.Builder
	for _, part := range parts {
		raw, ok := part.(*ast.PartRaw)
		if !ok {
			return "", fmt.Errorf("interpolation is not supported in config")
		}
		b.WriteString(raw.Content)
	}
	return b.String(), nil
}
