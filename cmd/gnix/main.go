// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"gnix/internal/nixos"
)

var (
	version = "0.1.0"
	log     = commonlog.GetLogger("gnix.cli")
)

// CLI is the top-level gnix command line.
type CLI struct {
	Verbose int              `short:"v" type:"counter" help:"Increase log verbosity (repeatable)."`
	LogFile string           `name:"log-file" help:"Write logs to this file instead of stderr."`
	NoColor bool             `name:"no-color" help:"Disable colored output."`
	Version kong.VersionFlag `help:"Print the version and exit."`

	Parse   ParseCmd   `cmd:"" help:"Parse a Nix file and print its syntax tree."`
	Tokens  TokensCmd  `cmd:"" help:"Print the token stream of a Nix file."`
	Get     GetCmd     `cmd:"" help:"Print the expression bound at an attribute path."`
	Imports ImportsCmd `cmd:"" help:"List the imports of a NixOS configuration."`
	Check   CheckCmd   `cmd:"" help:"Parse files concurrently and report their diagnostics."`
}

func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	return kong.New(cli, append([]kong.Option{
		kong.Name("gnix"),
		kong.Description("Parse and inspect Nix expressions."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"version":    version,
			"nixos_root": nixos.DefaultRoot,
		},
	}, options...)...)
}

func main() {
	var cli CLI

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	options := []kong.Option{kong.BindTo(ctx, (*context.Context)(nil))}
	if dir := configDir(); dir != "" {
		options = append(options,
			kong.Configuration(kong.JSON, configFile("config.json")),
			kong.Configuration(loadConfig, configFile("config.nix")),
		)
	}

	parser, err := newParser(&cli, options...)
	if err != nil {
		panic(err)
	}
	ktx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	var logFile *string
	if cli.LogFile != "" {
		logFile = &cli.LogFile
	}
	commonlog.Configure(cli.Verbose, logFile)
	if cli.NoColor {
		color.NoColor = true
	}
	log.Debugf("running %s", ktx.Command())

	ktx.FatalIfErrorf(ktx.Run())
}
