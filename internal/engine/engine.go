package engine

import (
	"io"
	"sync"

	"github.com/dshills/linestack/internal/engine/buffer"
	"github.com/dshills/linestack/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// Line is a numbered copy of one buffer line.
	Line = buffer.Line

	// Command is a recorded line mutation.
	Command = history.Command

	// OperationInfo describes one recorded command.
	OperationInfo = history.OperationInfo
)

// replayer applies recorded commands to the buffer without recording them.
type replayer struct {
	buf *buffer.Buffer
}

func (r replayer) ApplyInsert(line int, text string) error {
	_, err := r.buf.Insert(line, text)
	return err
}

func (r replayer) ApplyDelete(line int) error {
	_, err := r.buf.Delete(line)
	return err
}

func (r replayer) ApplyReplace(line int, text string) error {
	_, err := r.buf.Replace(line, text)
	return err
}

// Engine owns one line buffer and its undo/redo history.
//
// Fresh edits (Insert, Delete, Replace) are recorded and clear the redo
// stack. Undo and Redo replay recorded commands and never record.
type Engine struct {
	mu sync.Mutex

	buf     *buffer.Buffer
	history *history.History

	maxUndoEntries int
	initLines      []string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxUndoEntries: DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.NewFromLines(e.initLines...)
	e.history = history.NewHistory(e.maxUndoEntries)
	e.initLines = nil

	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Len returns the number of lines.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Len()
}

// Lines returns every line in order, numbered from 1.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Lines()
}

// Strings returns the text of every line in order.
func (e *Engine) Strings() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Strings()
}

// Line returns the text of line n.
func (e *Engine) Line(n int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Line(n)
}

// WriteTo writes every line followed by a newline.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.WriteTo(w)
}

// ============================================================================
// Edit Operations
// ============================================================================

// Insert adds text as line n and records the edit. It returns the line the
// text landed on, which is Len() when n was past the end.
func (e *Engine) Insert(n int, text string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	at, err := e.buf.Insert(n, text)
	if err != nil {
		return 0, err
	}
	e.history.RecordInsert(at, text)
	return at, nil
}

// Delete removes line n and records the edit.
func (e *Engine) Delete(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed, err := e.buf.Delete(n)
	if err != nil {
		return err
	}
	e.history.RecordDelete(n, removed)
	return nil
}

// Replace overwrites line n and records the edit.
func (e *Engine) Replace(n int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	old, err := e.buf.Replace(n, text)
	if err != nil {
		return err
	}
	e.history.RecordReplace(n, old, text)
	return nil
}

// Clear removes every line. It is not recorded and leaves history as is.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buf.Clear()
}

// ============================================================================
// History Operations
// ============================================================================

// Undo reverses the most recent recorded edit and returns it.
func (e *Engine) Undo() (Command, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Undo(replayer{buf: e.buf})
}

// Redo re-applies the most recently undone edit and returns it.
func (e *Engine) Redo() (Command, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Redo(replayer{buf: e.buf})
}

// CanUndo returns true if there is an edit to undo.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if there is an edit to redo.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoInfo describes the undo stack, oldest first.
func (e *Engine) UndoInfo() []OperationInfo {
	return e.history.UndoInfo()
}

// RedoInfo describes the redo stack, oldest first.
func (e *Engine) RedoInfo() []OperationInfo {
	return e.history.RedoInfo()
}

// SetMaxUndoEntries changes the undo stack limit.
func (e *Engine) SetMaxUndoEntries(max int) {
	e.history.SetMaxEntries(max)
}

// MaxUndoEntries returns the undo stack limit.
func (e *Engine) MaxUndoEntries() int {
	return e.history.MaxEntries()
}

// ClearHistory discards all undo/redo entries.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}
