package cli

import (
	"fmt"
	"path/filepath"

	envparse "github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/codex-k8s/rpncalc/internal/config"
	"github.com/codex-k8s/rpncalc/internal/env"
	"github.com/codex-k8s/rpncalc/internal/logging"
	"github.com/codex-k8s/rpncalc/internal/session"
)

// locateEnv holds the variables needed before the config file is read.
type locateEnv struct {
	// ConfigPath is the rpncalc.yaml path from RPNCALC_CONFIG.
	ConfigPath string `env:"RPNCALC_CONFIG"`
}

// baseEnv defines root CLI defaults sourced from RPNCALC_* env vars.
type baseEnv struct {
	// LogLevel is the logging level from RPNCALC_LOG_LEVEL.
	LogLevel string `env:"RPNCALC_LOG_LEVEL"`
	// Rows is the displayed stack depth from RPNCALC_ROWS.
	Rows int `env:"RPNCALC_ROWS"`
	// Strict toggles strict number parsing from RPNCALC_STRICT.
	Strict bool `env:"RPNCALC_STRICT"`
}

// parseEnv fills target from vars via caarlos0/env.
func parseEnv(target any, vars env.Vars) error {
	return envparse.ParseWithOptions(target, envparse.Options{Environment: vars})
}

// resolveSettings merges flags, RPNCALC_* variables and the config file into opts.
// Flags win over the environment, the environment wins over the config file.
func resolveSettings(cmd *cobra.Command, opts *Options) error {
	flags := cmd.Flags()

	flagVars, err := env.LoadEnvFiles("", opts.EnvFiles)
	if err != nil {
		return err
	}
	vars := env.Merge(env.FromOS(), flagVars)

	var loc locateEnv
	if err := parseEnv(&loc, vars); err != nil {
		return fmt.Errorf("parse RPNCALC_CONFIG: %w", err)
	}
	configRequired := flags.Changed("config")
	if !configRequired && loc.ConfigPath != "" {
		opts.ConfigPath = loc.ConfigPath
		configRequired = true
	}

	cfg, err := config.Load(opts.ConfigPath, configRequired)
	if err != nil {
		return err
	}

	baseDir := cfg.Dir
	if baseDir == "" {
		baseDir = filepath.Dir(opts.ConfigPath)
	}
	fileVars, err := env.LoadEnvFiles(baseDir, cfg.EnvFiles)
	if err != nil {
		return err
	}
	// Explicit --env-file values still override files listed in the config.
	vars = env.Merge(env.FromOS(), fileVars, flagVars)

	var base baseEnv
	if err := parseEnv(&base, vars); err != nil {
		return fmt.Errorf("parse RPNCALC_* variables: %w", err)
	}

	level := cfg.LogLevel
	if vars.Present("RPNCALC_LOG_LEVEL") {
		level = base.LogLevel
	}
	if flags.Changed("log-level") {
		level = flags.Lookup("log-level").Value.String()
	}
	opts.LogLevel = logging.ParseLevel(level)

	if !flags.Changed("rows") {
		opts.Rows = cfg.Display.Rows
		if vars.Present("RPNCALC_ROWS") {
			opts.Rows = base.Rows
		}
	}
	if opts.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", opts.Rows)
	}

	if !flags.Changed("strict") {
		opts.Strict = cfg.Parse.Strict
		if vars.Present("RPNCALC_STRICT") {
			opts.Strict = base.Strict
		}
	}

	keymap, err := session.NewKeymap(cfg.Bindings)
	if err != nil {
		return fmt.Errorf("config bindings: %w", err)
	}
	opts.keymap = keymap
	return nil
}
