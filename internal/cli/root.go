// Package cli defines the command-line interface for rpncalc.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/rpncalc/internal/logging"
	"github.com/codex-k8s/rpncalc/internal/session"
)

const (
	// defaultConfigPath is the default path to the calculator configuration file.
	defaultConfigPath = "rpncalc.yaml"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	EnvFiles   []string
	LogLevel   logging.Level
	Rows       int
	Strict     bool

	// keymap is resolved from config bindings before any subcommand runs.
	keymap session.Keymap
}

// sessionOptions builds the options for a fresh calculator session.
func (o *Options) sessionOptions(logger *slog.Logger) session.Options {
	return session.Options{
		Rows:   o.Rows,
		Strict: o.Strict,
		Keymap: o.keymap,
		Logger: logger,
	}
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: defaultConfigPath,
		LogLevel:   logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rpncalc",
		Short:         "rpncalc is a Reverse Polish Notation calculator",
		Long:          "rpncalc is a stack-based Reverse Polish Notation calculator with an interactive mode and one-shot evaluation.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := resolveSettings(cmd, opts); err != nil {
				return err
			}
			logger = logging.NewLogger(cmd.ErrOrStderr(), opts.LogLevel)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("settings resolved",
				"config", opts.ConfigPath,
				"level", opts.LogLevel,
				"rows", opts.Rows,
				"strict", opts.Strict,
			)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to rpncalc.yaml configuration file")
	cmd.PersistentFlags().StringArrayVar(&opts.EnvFiles, "env-file", nil, "Additional .env file with RPNCALC_* variables (repeatable)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().IntVar(&opts.Rows, "rows", 0, "Number of stack rows to display")
	cmd.PersistentFlags().BoolVar(&opts.Strict, "strict", false, "Reject numbers with trailing characters")

	cmd.AddCommand(
		newEvalCommand(opts),
		newReplCommand(opts),
		newOpsCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
