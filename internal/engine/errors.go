package engine

import (
	"github.com/dshills/linestack/internal/engine/buffer"
	"github.com/dshills/linestack/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrInvalidLine indicates a line number outside the buffer.
	ErrInvalidLine = buffer.ErrInvalidLine

	// ErrCorrupt indicates the line chain disagrees with the line count.
	ErrCorrupt = buffer.ErrCorrupt

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo
)
