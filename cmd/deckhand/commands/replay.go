// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/deckhand/cmd/deckhand/cli"
	"github.com/bureau-foundation/deckhand/lib/config"
	"github.com/bureau-foundation/deckhand/lib/fileserver"
	"github.com/bureau-foundation/deckhand/lib/script"
)

type replayParams struct {
	Config    string `flag:"config,c" desc:"YAML configuration file (default: $DECKHAND_CONFIG, else built-in defaults)"`
	OutputDir string `flag:"output-dir,o" desc:"directory finished decks are written to (default: the configured output directory)"`
	JSON      bool   `flag:"json" desc:"print step results as JSON"`
}

func replayCommand() *cli.Command {
	var params replayParams

	return &cli.Command{
		Name:    "replay",
		Summary: "Run a JSONC script of tool calls without a client",
		Description: `Replay a recorded sequence of tool calls against a fresh, in-process
server and write finished decks to the output directory. No network
listener is opened; get-file-url returns file:// URLs.

The script is JSONC: {"steps": [{"tool": ..., "arguments": {...}}]}.
A string argument "$N" is replaced by the id returned by step N.
The replay stops at the first failing step (unless the step sets
"expectError") and exits with status 1.`,
		Usage: "deckhand replay FILE.jsonc [flags]",
		Flags: func() *pflag.FlagSet {
			params = replayParams{}
			return cli.FlagsFromParams("replay", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return errors.New("exactly one script file is required")
			}
			cfg, err := config.Load(params.Config)
			if err != nil {
				return err
			}
			if params.OutputDir != "" {
				cfg.Output.Directory = config.ExpandVars(params.OutputDir, nil)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			level, _ := cfg.LogLevel()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return replay(ctx, args[0], cfg.Output.Directory, params.JSON, os.Stdout, cli.NewCommandLogger(level))
		},
	}
}

// stepRecord is the JSON form of one replayed step.
type stepRecord struct {
	Step       int             `json:"step"`
	Tool       string          `json:"tool"`
	IsError    bool            `json:"isError"`
	Category   string          `json:"category,omitempty"`
	Content    []string        `json:"content,omitempty"`
	Structured json.RawMessage `json:"structured,omitempty"`
	Rejected   string          `json:"rejected,omitempty"`
}

func replay(ctx context.Context, path, outputDir string, asJSON bool, stdout io.Writer, logger *slog.Logger) error {
	loaded, err := script.ReadFile(path)
	if err != nil {
		return err
	}
	directory, err := fileserver.NewDirectory(outputDir)
	if err != nil {
		return fmt.Errorf("output directory: %w", err)
	}
	server, err := newToolServer(directory, directory.Root(), logger)
	if err != nil {
		return err
	}

	results, runErr := script.Run(ctx, server, loaded, logger.With("component", "replay", "script", path))

	if asJSON {
		records := make([]stepRecord, len(results))
		for i, result := range results {
			records[i] = stepRecord{
				Step:       result.Number,
				Tool:       result.Tool,
				IsError:    result.Failed(),
				Category:   result.Result.Category,
				Content:    result.Result.Content,
				Structured: result.Result.Structured,
			}
			if result.Rejected != nil {
				records[i].Rejected = result.Rejected.Error()
			}
		}
		if err := cli.WriteJSON(stdout, records); err != nil {
			return err
		}
	} else {
		for _, result := range results {
			printStep(stdout, result)
		}
	}

	if errors.Is(runErr, script.ErrStepFailed) {
		logger.Error("replay stopped", "error", runErr)
		return &cli.ExitError{Code: 1}
	}
	return runErr
}

func printStep(w io.Writer, result script.StepResult) {
	switch {
	case result.Rejected != nil:
		fmt.Fprintf(w, "[%d] %s: rejected: %v\n", result.Number, result.Tool, result.Rejected)
	case result.Result.IsError:
		fmt.Fprintf(w, "[%d] %s: error (%s): %s\n", result.Number, result.Tool, result.Result.Category,
			strings.Join(result.Result.Content, " "))
	default:
		fmt.Fprintf(w, "[%d] %s: %s\n", result.Number, result.Tool, strings.Join(result.Result.Content, "\n    "))
	}
}
