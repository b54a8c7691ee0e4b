// Package history provides undo/redo functionality for the line editor.
//
// Every successful edit is recorded as a Command: a tagged record of the
// mutation kind, the line it touched and the text needed to reverse and
// replay it.
//
//   - Insert keeps the inserted text and the line it landed on.
//   - Delete keeps the removed text, so undo restores the original line.
//   - Replace keeps both the previous and the new content.
//
// # History Stack
//
// The History type holds two LIFO stacks:
//
//	h := history.NewHistory(1000) // Max 1000 undo entries
//
//	h.RecordInsert(1, "hello") // pushes onto undo, clears redo
//
//	h.Undo(target) // applies the inverse, moves the command to redo
//	h.Redo(target) // applies it again, moves it back to undo
//
// Recording a new command always empties the redo stack. Undo and Redo
// never record: they drive the buffer through the Applier interface,
// which applies mutations without touching history.
package history
