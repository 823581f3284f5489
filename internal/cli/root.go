// Package cli implements the aoc command line.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tOgg1/aoc2024/internal/config"
	"github.com/tOgg1/aoc2024/internal/logging"
	"github.com/tOgg1/aoc2024/internal/problems"
)

// app holds what every command needs once the root command has loaded
// configuration.
type app struct {
	version  string
	registry *problems.Registry

	// Terminal endpoints for the live display and the picker.
	termIn  *os.File
	termOut *os.File
	isTTY   func() bool
	now     func() time.Time

	cfg     *config.Config
	cfgFile string
	logFile io.Closer
}

func newApp(version string) *app {
	return &app{
		version:  version,
		registry: problems.Default(),
		termIn:   os.Stdin,
		termOut:  os.Stdout,
		isTTY:    hasTTY,
		now:      time.Now,
	}
}

// Execute runs the aoc command line.
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	a := newApp(version)
	return a.run(ctx, newRootCmd(a))
}

// run executes cmd and closes the log file on every exit path.
func (a *app) run(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if closeErr := a.teardown(); err == nil {
		err = closeErr
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aoc",
		Short: "Advent of Code 2024 solutions with a live progress display",
		Long: "aoc runs Advent of Code 2024 solvers against puzzle inputs in the data directory.\n" +
			"Without a subcommand on a terminal it opens a day picker.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       a.version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.isTTY() {
				return cmd.Help()
			}
			return a.pickAndSolve(cmd.Context(), cmd.OutOrStdout())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/aoc/config.yaml)")
	flags.String("data-dir", "", "Directory holding puzzle inputs named <day>.txt")
	flags.String("log-level", "", "Log level (debug, info, warn, error, disabled)")
	flags.String("log-format", "", "Log format (console, json)")
	flags.String("log-file", "", "Write logs to this file")

	cmd.AddCommand(
		newSolveCmd(a),
		newListCmd(a),
		newPickCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
	)

	return cmd
}

// flagOverrides maps persistent flags onto config keys.
var flagOverrides = map[string]string{
	"data-dir":   "global.data_dir",
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"log-file":   "logging.file",
}

// setup loads configuration with flag overrides applied and initialises
// logging.
func (a *app) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if a.cfgFile != "" {
		loader.SetConfigFile(a.cfgFile)
	}
	for flag, key := range flagOverrides {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			loader.Set(key, f.Value.String())
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return Exitf(ExitCodeUsage, "%v", err)
	}
	a.cfg = cfg
	if err := cfg.EnsureDirectories(); err != nil {
		return Exitf(ExitCodeFailure, "%v", err)
	}

	logCfg := logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		Output:       cmd.ErrOrStderr(),
		EnableCaller: cfg.Logging.EnableCaller,
	}
	if cfg.Logging.File != "" {
		f, err := logging.OpenFile(cfg.Logging.File)
		if err != nil {
			return Exitf(ExitCodeFailure, "%v", err)
		}
		a.logFile = f
		logCfg.Output = f
	}
	logging.Init(logCfg)

	if used := loader.ConfigFileUsed(); used != "" {
		logging.Debug().Str("file", used).Msg("loaded config")
	}
	return nil
}

func (a *app) teardown() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}
