// Package buffer provides the line buffer for the editor engine: an ordered
// sequence of text lines kept as a singly linked list.
//
// Lines live in an arena of records addressed by stable index. Each record
// holds its text and the index of the next record; the buffer keeps the
// head and tail indices and a line count, so the first and last line are
// reachable in O(1) while positional edits walk the chain in O(position).
// Slots freed by Delete are recycled by later inserts.
//
// All line numbers are 1-based:
//
//	buf := buffer.New()
//	buf.Insert(1, "first")  // ["first"]
//	buf.Insert(9, "last")   // ["first", "last"], appended
//	buf.Insert(2, "middle") // ["first", "middle", "last"]
//	buf.Delete(1)           // ["middle", "last"]
//
// Line numbers outside the valid range are rejected with ErrInvalidLine
// and leave the buffer untouched. Insert is the exception for numbers past
// the end: any line number greater than Len() appends.
//
// If a walk along the chain runs out of records before reaching the
// requested position, the operation fails with ErrCorrupt instead of
// touching memory it does not own.
//
// A Buffer is not safe for concurrent use; the engine serializes access.
package buffer
