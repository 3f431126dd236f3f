// Package cli implements the launchrank command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/launchrank/internal/config"
	"github.com/dshills/launchrank/internal/frecency"
	"github.com/dshills/launchrank/internal/launcher"
)

// options are shared by every subcommand
type options struct {
	configPath string
	logLevel   string

	// runner and stderr are replaced in tests
	runner launcher.Runner
	stderr io.Writer
}

// Execute runs the root command with os.Args
func Execute() error {
	return newRootCmd(&options{stderr: os.Stderr}).Execute()
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "launchrank",
		Short:         "Rank and launch desktop applications by fuzzy match and usage",
		Long:          "launchrank finds installed applications with fuzzy search, ranks them by how often and how recently you start them, and launches them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")

	root.AddCommand(
		newSearchCmd(opts),
		newLaunchCmd(opts),
		newIconCmd(opts),
		newHistoryCmd(opts),
		newStatusCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)
	return root
}

// session is one loaded launcher with its backing resources
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *frecency.Store
	launcher *launcher.Launcher
	closer   io.Closer
}

func (s *session) Close() error {
	return s.closer.Close()
}

// openSession loads config, logging, history and the catalog
func openSession(ctx context.Context, opts *options) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	logger, err := newLogger(opts.stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	store, closer, err := launcher.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	l, err := launcher.New(ctx, cfg, launcher.Deps{
		Store:  store,
		Runner: opts.runner,
		Logger: logger,
	})
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, store: store, launcher: l, closer: closer}, nil
}

// newLogger writes text records to w; stdout stays free for command output
// and MCP frames
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := config.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
