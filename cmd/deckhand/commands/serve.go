// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
	"github.com/bureau-foundation/deckhand/cmd/deckhand/mcp"
	"github.com/bureau-foundation/deckhand/cmd/deckhand/tools"
	"github.com/bureau-foundation/deckhand/lib/config"
	"github.com/bureau-foundation/deckhand/lib/fileserver"
	"github.com/bureau-foundation/deckhand/lib/netutil"
	"github.com/bureau-foundation/deckhand/lib/registry"
	"github.com/bureau-foundation/deckhand/lib/version"
)

// serveParams are the serve flags. Every flag except --config
// overrides the matching configuration value only when given.
type serveParams struct {
	Config    string `flag:"config,c" desc:"YAML configuration file (default: $DECKHAND_CONFIG, else built-in defaults)"`
	Host      string `flag:"host" desc:"host the file server binds and advertises in URLs"`
	PortBase  int    `flag:"port-base" desc:"first port probed for the file server"`
	PortMax   int    `flag:"port-max" desc:"last port probed for the file server"`
	OutputDir string `flag:"output-dir,o" desc:"directory finished decks are written to and served from"`
	LogLevel  string `flag:"log-level" desc:"log level: debug, info, warn or error"`
}

func serveCommand() *cli.Command {
	var params serveParams
	var flagSet *pflag.FlagSet

	return &cli.Command{
		Name:    "serve",
		Summary: "Run the MCP server on stdio and the download file server",
		Description: `Run the MCP server on stdin/stdout together with a local HTTP file
server for finished decks.

The file server binds the first free port in [port-base, port-max] on
host. Failing to find one, or to create the output directory, is fatal
before any MCP message is read. Logs go to stderr; stdout carries only
JSON-RPC. The process exits when stdin closes or on SIGINT/SIGTERM.`,
		Usage: "deckhand serve [flags]",
		Flags: func() *pflag.FlagSet {
			params = serveParams{}
			flagSet = cli.FlagsFromParams("serve", &params)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			cfg, err := resolveServeConfig(&params, flagSet.Changed)
			if err != nil {
				return err
			}
			level, _ := cfg.LogLevel()
			logger := cli.NewCommandLogger(level)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, os.Stdin, os.Stdout, logger)
		},
	}
}

// resolveServeConfig loads the configuration and layers the flags
// that were set on top of it.
func resolveServeConfig(params *serveParams, changed func(string) bool) (*config.Config, error) {
	cfg, err := config.Load(params.Config)
	if err != nil {
		return nil, err
	}
	if changed("host") {
		cfg.Server.Host = params.Host
	}
	if changed("port-base") {
		cfg.Server.PortBase = params.PortBase
	}
	if changed("port-max") {
		cfg.Server.PortMax = params.PortMax
	}
	if changed("output-dir") {
		cfg.Output.Directory = config.ExpandVars(params.OutputDir, nil)
	}
	if changed("log-level") {
		cfg.Logging.Level = params.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// serve runs the file server and the MCP loop until input ends or ctx
// is cancelled, then shuts the file server down.
func serve(ctx context.Context, cfg *config.Config, input io.Reader, output io.Writer, logger *slog.Logger) error {
	shutdownTimeout, err := cfg.ShutdownTimeout()
	if err != nil {
		return err
	}

	directory, err := fileserver.NewDirectory(cfg.Output.Directory)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	listener, err := netutil.ListenFirstFree(cfg.Server.Host, cfg.Server.PortBase, cfg.Server.PortMax)
	if err != nil {
		return fmt.Errorf("file server: %w", err)
	}

	files := fileserver.NewServer(fileserver.Config{
		Listener:        listener,
		Directory:       directory,
		Host:            cfg.Server.Host,
		ShutdownTimeout: shutdownTimeout,
		Logger:          logger.With("component", "fileserver"),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	filesDone := make(chan error, 1)
	go func() {
		filesDone <- files.Serve(ctx)
	}()
	select {
	case <-files.Ready():
	case err := <-filesDone:
		return fmt.Errorf("file server: %w", err)
	case <-ctx.Done():
		return ctx.Err()
	}

	server, err := newToolServer(files, files.BaseURL(), logger)
	if err != nil {
		return err
	}

	logger.Info("deckhand ready",
		"version", version.Short(),
		"files", files.BaseURL(),
		"directory", directory.Root(),
	)

	mcpDone := make(chan error, 1)
	go func() {
		mcpDone <- server.Run(ctx, input, output)
	}()

	var runErr error
	select {
	case runErr = <-mcpDone:
		if runErr == nil || netutil.IsExpectedCloseError(runErr) || errors.Is(runErr, context.Canceled) {
			logger.Info("client disconnected")
			runErr = nil
		}
	case <-ctx.Done():
		logger.Info("shutting down", "reason", context.Cause(ctx))
	case err := <-filesDone:
		runErr = errors.New("file server stopped unexpectedly")
		if err != nil {
			runErr = fmt.Errorf("file server: %w", err)
		}
		filesDone = nil
	}

	cancel()
	if filesDone != nil {
		if err := <-filesDone; err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// newToolServer builds the MCP server over a fresh registry, publishing
// finished decks through publisher.
func newToolServer(publisher tools.Publisher, location string, logger *slog.Logger) (*mcp.Server, error) {
	return mcp.NewServer(
		tools.List(tools.Dependencies{
			Registry:  registry.New(),
			Publisher: publisher,
			Location:  location,
			Logger:    logger.With("component", "tools"),
		}),
		mcp.WithLogger(logger.With("component", "mcp")),
		mcp.WithInstructions(tools.Instructions),
	)
}
