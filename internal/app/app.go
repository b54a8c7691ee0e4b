// Package app runs the interactive line editor menu.
//
// An Application ties together the editing engine, a Prompter for input,
// a Printer for output, a Saver for the output file, and an optional
// stream of configuration reloads applied between prompts.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/dshills/linestack/internal/config"
	"github.com/dshills/linestack/internal/engine"
)

// Options configures an Application.
type Options struct {
	// Config is the initial configuration. Defaults to config.Default().
	Config *config.Config

	// Engine is the buffer to edit. Defaults to an empty engine.
	Engine *engine.Engine

	// Prompter reads user input. Required.
	Prompter Prompter

	// Out receives menu output. Defaults to os.Stdout.
	Out io.Writer

	// FS is where saves are written. Defaults to the OS file system.
	FS afero.Fs

	// Logger defaults to a discarding logger.
	Logger *Logger

	// Updates delivers reloaded configurations.
	Updates <-chan *config.Config
}

// Application is one interactive editing session.
type Application struct {
	cfg      *config.Config
	engine   *engine.Engine
	prompter Prompter
	printer  *Printer
	saver    *Saver
	logger   *Logger
	log      *slog.Logger
	updates  <-chan *config.Config
}

// New creates an Application.
func New(opts Options) (*Application, error) {
	if opts.Prompter == nil {
		return nil, errors.New("app: prompter is required")
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = NopLogger()
	}
	if opts.Engine == nil {
		opts.Engine = engine.New()
	}

	cfg := opts.Config.Clone()
	app := &Application{
		cfg:      cfg,
		engine:   opts.Engine,
		prompter: opts.Prompter,
		printer:  NewPrinter(opts.Out, cfg.UI.Color, cfg.UI.MaxWidth),
		saver:    NewSaver(opts.FS),
		logger:   opts.Logger,
		log:      opts.Logger.WithComponent("app"),
		updates:  opts.Updates,
	}
	app.engine.SetMaxUndoEntries(maxEntries(cfg))

	return app, nil
}

// Engine returns the edited buffer.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	return app.cfg.Clone()
}

// Run shows the menu until the user exits or input ends.
func (app *Application) Run() error {
	app.log.Info("session started", "output", app.cfg.Editor.OutputPath)
	defer func() {
		app.log.Info("session ended", "lines", app.engine.Len())
	}()

	for {
		app.drainUpdates()
		app.showMenu()

		choice, err := app.prompter.Prompt(app.cfg.UI.Prompt)
		if err != nil {
			if errors.Is(err, ErrQuit) {
				app.printer.Plain(msgExiting)
				return nil
			}
			app.log.Error("reading choice failed", "error", err)
			return fmt.Errorf("reading choice: %w", err)
		}

		if err := app.dispatch(choice); err != nil {
			if errors.Is(err, ErrQuit) {
				app.printer.Plain(msgExiting)
				return nil
			}
			app.log.Error("reading input failed", "error", err)
			return err
		}
	}
}

func (app *Application) showMenu() {
	app.printer.Heading(menuTitle)
	for _, item := range menu {
		app.printer.Plain("%s. %s", item.key, item.label)
	}
}

// drainUpdates applies every pending configuration reload.
func (app *Application) drainUpdates() {
	if app.updates == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-app.updates:
			if !ok {
				app.updates = nil
				return
			}
			if cfg != nil {
				app.ApplyConfig(cfg)
			}
		default:
			return
		}
	}
}

// ApplyConfig switches to cfg for everything that can change mid-session.
func (app *Application) ApplyConfig(cfg *config.Config) {
	app.cfg = cfg.Clone()

	app.printer.SetColor(cfg.UI.Color)
	app.printer.SetMaxWidth(cfg.UI.MaxWidth)
	app.engine.SetMaxUndoEntries(maxEntries(cfg))
	if err := app.logger.SetLevel(cfg.Logging.Level); err != nil {
		app.log.Warn("ignoring log level", "level", cfg.Logging.Level, "error", err)
	}

	app.log.Info("config applied",
		"output", cfg.Editor.OutputPath,
		"max_entries", cfg.History.MaxEntries,
		"level", cfg.Logging.Level,
	)
}

func maxEntries(cfg *config.Config) int {
	if cfg.History.MaxEntries <= 0 {
		return engine.DefaultMaxUndoEntries
	}
	return cfg.History.MaxEntries
}
