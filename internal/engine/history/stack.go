package history

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrUnknownKind   = errors.New("unknown command kind")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// OperationInfo provides read-only info about a recorded command.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	Kind        Kind
	Line        int
	Description string
	Timestamp   time.Time
}

// History manages the undo and redo stacks for one buffer.
type History struct {
	mu sync.Mutex

	undoStack []Command
	redoStack []Command

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// RecordInsert records a line inserted at line.
func (h *History) RecordInsert(line int, text string) {
	h.Push(NewInsertCommand(line, text))
}

// RecordDelete records a line removed from line.
func (h *History) RecordDelete(line int, removed string) {
	h.Push(NewDeleteCommand(line, removed))
}

// RecordReplace records line overwritten from oldText to newText.
func (h *History) RecordReplace(line int, oldText, newText string) {
	h.Push(NewReplaceCommand(line, oldText, newText))
}

// Push adds a command to the undo stack.
// Clears the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, cmd)
	h.redoStack = nil
	h.trimLocked()
}

// trimLocked drops the oldest undo entries beyond maxEntries.
func (h *History) trimLocked() {
	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = append([]Command(nil), h.undoStack[excess:]...)
	}
}

// Undo pops the last command and applies its inverse to target.
// On success the command moves to the redo stack. A command that no longer
// applies is discarded, so the next Undo reaches older history.
func (h *History) Undo(target Applier) (Command, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return Command{}, ErrNothingToUndo
	}

	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := cmd.Invert().Apply(target); err != nil {
		return cmd, fmt.Errorf("undo %s: %w", cmd.Kind, err)
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, cmd)
	h.mu.Unlock()
	return cmd, nil
}

// Redo pops the last undone command and applies it to target again.
// Replay leaves the rest of the redo stack intact. On success the command
// returns to the undo stack; a command that no longer applies is discarded.
func (h *History) Redo(target Applier) (Command, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return Command{}, ErrNothingToRedo
	}

	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := cmd.Apply(target); err != nil {
		return cmd, fmt.Errorf("redo %s: %w", cmd.Kind, err)
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, cmd)
	h.trimLocked()
	h.mu.Unlock()
	return cmd, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infoOf(h.undoStack)
}

// RedoInfo returns info about available redo operations, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infoOf(h.redoStack)
}

// PeekUndo returns the next command Undo would reverse.
func (h *History) PeekUndo() (Command, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Command{}, false
	}
	return h.undoStack[len(h.undoStack)-1], true
}

// PeekRedo returns the next command Redo would replay.
func (h *History) PeekRedo() (Command, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Command{}, false
	}
	return h.redoStack[len(h.redoStack)-1], true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max
	h.trimLocked()
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

func infoOf(stack []Command) []OperationInfo {
	result := make([]OperationInfo, len(stack))
	for i, cmd := range stack {
		result[i] = OperationInfo{
			Kind:        cmd.Kind,
			Line:        cmd.Line,
			Description: cmd.Description(),
			Timestamp:   cmd.Timestamp,
		}
	}
	return result
}
