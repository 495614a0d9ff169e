// Package nixos reads facts out of existing NixOS configuration files.
package nixos

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gnix/internal/ast"
	"gnix/internal/parser"
)

// DefaultRoot is where NixOS keeps the system configuration.
const DefaultRoot = "/etc/nixos"

// Files that make up a freshly generated configuration, in the order they are imported.
var configFiles = []string{"hardware-configuration.nix", "configuration.nix"}

// Discover returns the generated configuration files present under root.
func Discover(root string) []string {
	var found []string
	for _, name := range configFiles {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			found = append(found, path)
		}
	}
	return found
}

// Imports parses the file at path and returns the source form of every
// element of its top-level imports list. A file without imports yields an
// empty list.
func Imports(path string) ([]string, error) {
	elements, err := importElements(path)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(elements))
	for i, e := range elements {
		out[i] = e.String()
	}
	return out, nil
}

// ImportFiles resolves the path literals of the imports list against the
// directory of path. Directories resolve to their default.nix. Search paths,
// interpolated paths and computed entries are skipped.
func ImportFiles(path string) ([]string, error) {
	elements, err := importElements(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	var files []string
	for _, e := range elements {
		p, ok := e.(*ast.Path)
		if !ok || len(p.Parts) != 1 {
			continue
		}
		raw, ok := p.Parts[0].(*ast.PartRaw)
		if !ok {
			continue
		}

		target := raw.Content
		switch {
		case strings.HasPrefix(target, "~/"):
			home, err := os.UserHomeDir()
			if err != nil {
				continue
			}
			target = filepath.Join(home, target[2:])
		case !filepath.IsAbs(target):
			target = filepath.Join(dir, target)
		}

		if info, err := os.Stat(target); err == nil && info.IsDir() {
			target = filepath.Join(target, "default.nix")
		}
		files = append(files, target)
	}
	return files, nil
}

func importElements(path string) ([]ast.Expr, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	expr, _, err := parser.Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	binding, ok := ast.FindBinding(expr, "imports").(*ast.BindingKeyValue)
	if !ok {
		return []ast.Expr{}, nil
	}
	return listElements(binding.To), nil
}

// listElements flattens "[ a ] ++ [ b ]" chains; anything that is not a
// list literal counts as a single entry.
func listElements(e ast.Expr) []ast.Expr {
	switch n := e.(type) {
	case *ast.List:
		return n.Elements
	case *ast.BinaryOperation:
		if n.Operator == ast.Concatenation {
			out := append([]ast.Expr{}, listElements(n.Left)...)
			return append(out, listElements(n.Right)...)
		}
	case *ast.Error:
		return []ast.Expr{}
	}
	return []ast.Expr{e}
}
