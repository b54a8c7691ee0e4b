package engine

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithLines sets the initial content of the engine. Initial lines are not
// recorded in history.
func WithLines(lines ...string) Option {
	return func(e *Engine) {
		e.initLines = append([]string(nil), lines...)
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}
