package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gnix/internal/nixos"
)

// ImportsCmd lists the imports of a NixOS configuration.
type ImportsCmd struct {
	Resolve bool   `short:"r" help:"Print the files that path imports resolve to."`
	Root    string `default:"${nixos_root}" help:"Directory searched when no file is given."`

	File string `arg:"" optional:"" help:"Configuration file to read."`
}

// Run executes the imports command.
func (c *ImportsCmd) Run(ctx context.Context) error {
	return c.run(os.Stdout)
}

func (c *ImportsCmd) run(out io.Writer) error {
	file, err := c.file()
	if err != nil {
		return err
	}
	log.Debugf("reading imports of %s", file)

	var imports []string
	if c.Resolve {
		imports, err = nixos.ImportFiles(file)
	} else {
		imports, err = nixos.Imports(file)
	}
	if err != nil {
		return err
	}

	for _, imp := range imports {
		fmt.Fprintln(out, imp)
	}
	return nil
}

func (c *ImportsCmd) file() (string, error) {
	if c.File != "" {
		return c.File, nil
	}
	for _, path := range nixos.Discover(c.Root) {
		if filepath.Base(path) == "configuration.nix" {
			return path, nil
		}
	}
	return "", fmt.Errorf("no configuration.nix found in %s", c.Root)
}
