package lua

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dshills/linestack/internal/engine"
)

// Runner executes editing scripts against one engine.
type Runner struct {
	engine      *engine.Engine
	save        SaveFunc
	defaultPath string
	out         io.Writer
	timeout     time.Duration
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSaveFunc enables buf.save. path is used when the script passes none.
func WithSaveFunc(save SaveFunc, path string) RunnerOption {
	return func(r *Runner) {
		r.save = save
		r.defaultPath = path
	}
}

// WithScriptOutput sets where script print output goes.
func WithScriptOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.out = w
	}
}

// WithTimeout bounds each script run.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner for eng.
func NewRunner(eng *engine.Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine:  eng,
		out:     os.Stdout,
		timeout: DefaultExecutionTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunFile executes the script at path in a fresh state.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	return r.run(ctx, path, func(s *State) error {
		return s.DoFile(ctx, path)
	})
}

// RunString executes code in a fresh state.
func (r *Runner) RunString(ctx context.Context, code string) error {
	return r.run(ctx, "<string>", func(s *State) error {
		return s.DoString(ctx, code)
	})
}

func (r *Runner) run(ctx context.Context, name string, exec func(*State) error) error {
	state := NewState(WithExecutionTimeout(r.timeout), WithOutput(r.out))
	defer state.Close()

	NewBufferModule(r.engine, r.save, r.defaultPath).Register(state.LuaState())

	start := time.Now()
	if err := exec(state); err != nil {
		r.logger.Warn("script failed", "script", name, "error", err)
		return fmt.Errorf("script %s: %w", name, err)
	}

	r.logger.Debug("script finished",
		"script", name,
		"lines", r.engine.Len(),
		"elapsed", time.Since(start),
	)
	return nil
}
