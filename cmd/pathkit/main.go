// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command pathkit offsets, dashes and measures vector paths.
//
// Usage:
//
//	pathkit [-config file] [-log-level level] <command> [flags] [file]
//
// Paths are read as JSON documents from the file argument or standard input,
// or given inline as SVG path data with -d. Path results are written to
// standard output as a JSON array (default) or SVG path data; summaries and
// logs go to standard error.
//
// Examples:
//
//	pathkit length -d "M0 0 L100 0"
//	pathkit offset -distance 4 -join round shape.json
//	pathkit dash -pattern 10,5 -format svg -png dashes.png shape.json
//	pathkit batch -op offset -distance 2 -workers 8 a.json b.json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pathkit"
	"github.com/gogpu/pathkit/internal/config"
	"github.com/gogpu/pathkit/internal/logging"
)

// errUsage marks command-line mistakes; main exits with status 2 for them.
var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, "pathkit:", err)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "pathkit:", err)
		os.Exit(1)
	}
}

// app carries the per-invocation state shared by all commands.
type app struct {
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
	p      *message.Printer
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{"length", "print the length of each path", runLength},
	{"point", "print the point at -at along each path", runPoint},
	{"tangent", "print the unit tangent at -at along each path", runTangent},
	{"info", "print length, area, bounds and segment count", runInfo},
	{"dash", "split paths into dashes with -pattern", runDash},
	{"offset", "offset closed paths by -distance", runOffset},
	{"align", "offset paths for an inside or outside stroke", runAlign},
	{"outline", "build the even-odd stroke ring of width -weight", runOutline},
	{"batch", "apply one operation to many files concurrently", runBatch},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pathkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file (default $XDG_CONFIG_HOME/pathkit/config.yaml)")
	logLevel := fs.String("log-level", "", "log level override: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: pathkit [flags] <command> [command flags] [file]")
		fmt.Fprintln(stderr, "\nCommands:")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %-8s %s\n", c.name, c.usage)
		}
		fmt.Fprintln(stderr, "\nFlags:")
		fs.PrintDefaults()
	}
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, ok := lookup(fs.Arg(0))
	if !ok {
		fs.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, fs.Arg(0))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger, closer := logging.New(stderr, logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	defer closer.Close()
	pathkit.SetLogger(logger)
	defer pathkit.SetLogger(nil)

	a := &app{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    logger.With("command", cmd.name),
		p:      message.NewPrinter(language.English),
	}
	a.log.Debug("starting",
		slog.Float64("tolerance", cfg.Geometry.Tolerance),
		slog.String("join", cfg.Geometry.Join))
	return cmd.run(ctx, a, fs.Args()[1:])
}

// parseFlags parses args and marks parse failures as usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("pathkit "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// flattenOptions applies the configured tolerance to query functions.
func (a *app) flattenOptions() []pathkit.Option {
	return []pathkit.Option{pathkit.WithTolerance(a.cfg.Geometry.Tolerance)}
}
