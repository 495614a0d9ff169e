// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp/server"

	"gnix/internal/lsp"
)

var version = "0.1.0"

type options struct {
	Verbosity int              `short:"v" default:"1" help:"Log verbosity."`
	LogFile   string           `name:"log-file" help:"Write logs to this file instead of stderr."`
	Debug     bool             `help:"Log every protocol message."`
	Version   kong.VersionFlag `help:"Print the version and exit."`
}

func main() {
	var opts options
	kong.Parse(&opts,
		kong.Name("gnix-lsp"),
		kong.Description("Nix language server speaking LSP over stdio."),
		kong.Vars{"version": version},
	)

	var path *string
	if opts.LogFile != "" {
		path = &opts.LogFile
	}
	commonlog.Configure(opts.Verbosity, path)
	log := commonlog.GetLogger("gnix.lsp")

	handler := lsp.NewNixHandler(version)
	s := server.NewServer(handler.Handler(), lsp.ServerName, opts.Debug)

	log.Infof("starting %s %s", lsp.ServerName, version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
