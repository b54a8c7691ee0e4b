// Package main is the entry point for the linestack editor.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dshills/linestack/internal/app"
	"github.com/dshills/linestack/internal/config"
	"github.com/dshills/linestack/internal/config/watcher"
	"github.com/dshills/linestack/internal/engine"
	"github.com/dshills/linestack/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Flags
var (
	configPath string
	outputPath string
	logLevel   string
	logFile    string
	noColor    bool
	saveAfter  bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		// Error already printed by cobra
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "linestack",
		Short: "Line editor with undo and redo",
		Long: `linestack is a menu-driven line editor. Lines are inserted, deleted
and replaced by number; every edit can be undone and redone.

  linestack                 Start the interactive menu
  linestack run SCRIPT.lua  Apply a Lua editing script
  linestack version         Print version information`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "file written by save (default "+config.DefaultOutputPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		newRunCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Run a Lua editing script",
		Long: `Run a Lua script against an empty buffer, then print the result.
The script edits through the global buf table (buf.insert, buf.delete,
buf.replace, buf.undo, buf.redo, buf.lines, buf.line, buf.len,
buf.clear, buf.save).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0])
		},
	}
	cmd.Flags().BoolVar(&saveAfter, "save", false, "save the buffer when the script finishes")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "linestack %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// loadOptions turns the persistent flags into config load options. Only
// flags given on the command line override lower layers.
func loadOptions(cmd *cobra.Command) config.Options {
	overrides := make(map[string]any)
	flags := cmd.Flags()
	if flags.Changed("output") {
		overrides["editor.output_path"] = outputPath
	}
	if flags.Changed("log-level") {
		overrides["logging.level"] = logLevel
	}
	if flags.Changed("log-file") {
		overrides["logging.file"] = logFile
	}
	if flags.Changed("no-color") {
		overrides["ui.color"] = !noColor
	}

	return config.Options{
		Path:      configPath,
		Overrides: overrides,
	}
}

// setup loads the configuration and opens the log.
func setup(cmd *cobra.Command) (*config.Config, config.Options, *app.Logger, error) {
	opts := loadOptions(cmd)
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, opts, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := app.NewLogger(app.LoggerConfig{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, opts, nil, fmt.Errorf("opening log: %w", err)
	}

	logger.Info("linestack starting",
		"version", version,
		"commit", commit,
		"config", opts.Path,
	)
	return cfg, opts, logger, nil
}

func runEditor(cmd *cobra.Command) error {
	cfg, opts, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	var updates <-chan *config.Config
	w, err := watcher.New(opts, watcher.WithLogger(logger.WithComponent("config")))
	if err != nil {
		logger.Warn("config reload disabled", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: config reload disabled: %v\n", err)
	} else {
		defer w.Close()
		updates = w.Updates()
	}

	prompter := app.NewLinePrompter()
	defer prompter.Close()

	application, err := app.New(app.Options{
		Config:   cfg,
		Engine:   engine.New(engine.WithMaxUndoEntries(cfg.History.MaxEntries)),
		Prompter: prompter,
		Out:      cmd.OutOrStdout(),
		Logger:   logger,
		Updates:  updates,
	})
	if err != nil {
		return err
	}

	return application.Run()
}

func runScript(cmd *cobra.Command, path string) error {
	cfg, _, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Close()

	out := cmd.OutOrStdout()
	eng := engine.New(engine.WithMaxUndoEntries(cfg.History.MaxEntries))
	saver := app.NewSaver(afero.NewOsFs())
	save := func(target string) error {
		return saver.Save(eng, target)
	}

	runner := lua.NewRunner(eng,
		lua.WithSaveFunc(save, cfg.Editor.OutputPath),
		lua.WithScriptOutput(out),
		lua.WithLogger(logger.WithComponent("script")),
	)
	if err := runner.RunFile(cmd.Context(), path); err != nil {
		return err
	}

	printer := app.NewPrinter(out, cfg.UI.Color, cfg.UI.MaxWidth)
	printer.Buffer(eng.Lines())

	if saveAfter {
		if err := save(cfg.Editor.OutputPath); err != nil {
			return err
		}
		printer.Success("Saved data to '%s' successfully.", cfg.Editor.OutputPath)
	}
	return nil
}
