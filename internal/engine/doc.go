// Package engine provides the core of the line editor.
//
// The Engine owns exactly one line buffer and one history. It is the only
// place where edits are recorded, so callers never touch the undo stack
// directly.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - buffer: arena-backed singly linked list of lines
//   - history: Command records and the undo/redo stacks
//
// # Basic Usage
//
//	e := engine.New()
//
//	e.Insert(1, "a")  // ["a"]
//	e.Insert(2, "b")  // ["a", "b"]
//	e.Replace(1, "A") // ["A", "b"]
//
//	e.Undo() // ["a", "b"]
//	e.Redo() // ["A", "b"]
//
// Clear empties the buffer without recording anything, so entries recorded
// before a Clear may no longer apply; undoing one then fails with
// ErrInvalidLine and the entry stays on its stack.
//
// # Thread Safety
//
// Engine methods serialize on a mutex. The editor drives the engine from a
// single goroutine.
package engine
