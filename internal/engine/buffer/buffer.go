package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Errors returned by buffer operations.
var (
	ErrInvalidLine = errors.New("invalid line number")
	ErrCorrupt     = errors.New("line chain corrupt")
)

// nilIndex terminates the chain.
const nilIndex = -1

// record is one arena slot.
type record struct {
	text string
	next int
	used bool
}

// Line is a numbered copy of one buffer line.
type Line struct {
	Number int
	Text   string
}

// Buffer is an ordered sequence of text lines.
type Buffer struct {
	records []record
	free    []int
	head    int
	tail    int
	count   int
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{
		head: nilIndex,
		tail: nilIndex,
	}
}

// NewFromLines creates a buffer holding lines in order.
func NewFromLines(lines ...string) *Buffer {
	b := New()
	for _, line := range lines {
		b.pushBack(line)
	}
	return b
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	return b.count
}

// IsEmpty returns true if the buffer holds no lines.
func (b *Buffer) IsEmpty() bool {
	return b.count == 0
}

// First returns the first line.
func (b *Buffer) First() (string, bool) {
	if !b.valid(b.head) {
		return "", false
	}
	return b.records[b.head].text, true
}

// Last returns the last line.
func (b *Buffer) Last() (string, bool) {
	if !b.valid(b.tail) {
		return "", false
	}
	return b.records[b.tail].text, true
}

// Insert adds text so that it becomes line n and returns the line number
// it actually occupies. A line number greater than Len() appends, so the
// returned number is Len() in that case.
func (b *Buffer) Insert(n int, text string) (int, error) {
	if n < 1 {
		return 0, b.lineError(n)
	}

	if n == 1 {
		b.pushFront(text)
		return 1, nil
	}
	if n > b.count {
		b.pushBack(text)
		return b.count, nil
	}

	prev, err := b.walk(n - 1)
	if err != nil {
		return 0, err
	}

	idx := b.alloc(text)
	b.records[idx].next = b.records[prev].next
	b.records[prev].next = idx
	b.count++
	return n, nil
}

// Delete removes line n and returns its text.
func (b *Buffer) Delete(n int) (string, error) {
	if n < 1 || n > b.count {
		return "", b.lineError(n)
	}

	if n == 1 {
		idx := b.head
		if !b.valid(idx) {
			return "", fmt.Errorf("delete line 1: %w", ErrCorrupt)
		}
		text := b.records[idx].text
		b.head = b.records[idx].next
		if b.head == nilIndex {
			b.tail = nilIndex
		}
		b.release(idx)
		b.count--
		return text, nil
	}

	prev, err := b.walk(n - 1)
	if err != nil {
		return "", err
	}
	target := b.records[prev].next
	if !b.valid(target) {
		return "", fmt.Errorf("delete line %d: %w", n, ErrCorrupt)
	}

	text := b.records[target].text
	b.records[prev].next = b.records[target].next
	if target == b.tail {
		b.tail = prev
	}
	b.release(target)
	b.count--
	return text, nil
}

// Replace overwrites line n and returns the text it held before.
func (b *Buffer) Replace(n int, text string) (string, error) {
	if n < 1 || n > b.count {
		return "", b.lineError(n)
	}

	idx, err := b.walk(n)
	if err != nil {
		return "", err
	}

	old := b.records[idx].text
	b.records[idx].text = text
	return old, nil
}

// Line returns the text of line n.
func (b *Buffer) Line(n int) (string, error) {
	if n < 1 || n > b.count {
		return "", b.lineError(n)
	}

	idx, err := b.walk(n)
	if err != nil {
		return "", err
	}
	return b.records[idx].text, nil
}

// Lines returns every line in order, numbered from 1.
func (b *Buffer) Lines() []Line {
	lines := make([]Line, 0, b.count)
	b.each(func(n int, text string) bool {
		lines = append(lines, Line{Number: n, Text: text})
		return true
	})
	return lines
}

// Strings returns the text of every line in order.
func (b *Buffer) Strings() []string {
	out := make([]string, 0, b.count)
	b.each(func(_ int, text string) bool {
		out = append(out, text)
		return true
	})
	return out
}

// WriteTo writes every line followed by a newline.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	var err error

	b.each(func(_ int, text string) bool {
		var n int
		n, err = bw.WriteString(text)
		total += int64(n)
		if err != nil {
			return false
		}
		err = bw.WriteByte('\n')
		if err != nil {
			return false
		}
		total++
		return true
	})
	if err != nil {
		return total, err
	}

	return total, bw.Flush()
}

// Clear removes every line.
func (b *Buffer) Clear() {
	b.records = nil
	b.free = nil
	b.head = nilIndex
	b.tail = nilIndex
	b.count = 0
}

// each visits lines in order. It stops after Len() lines so a cycle in the
// chain cannot loop forever.
func (b *Buffer) each(fn func(n int, text string) bool) {
	idx := b.head
	for n := 1; n <= b.count && b.valid(idx); n++ {
		if !fn(n, b.records[idx].text) {
			return
		}
		idx = b.records[idx].next
	}
}

// walk returns the arena index of line n.
func (b *Buffer) walk(n int) (int, error) {
	idx := b.head
	for i := 1; i < n; i++ {
		if !b.valid(idx) {
			return nilIndex, fmt.Errorf("walk to line %d stopped at %d: %w", n, i, ErrCorrupt)
		}
		idx = b.records[idx].next
	}
	if !b.valid(idx) {
		return nilIndex, fmt.Errorf("walk to line %d: %w", n, ErrCorrupt)
	}
	return idx, nil
}

func (b *Buffer) valid(idx int) bool {
	return idx >= 0 && idx < len(b.records) && b.records[idx].used
}

func (b *Buffer) pushFront(text string) {
	idx := b.alloc(text)
	b.records[idx].next = b.head
	b.head = idx
	if b.tail == nilIndex {
		b.tail = idx
	}
	b.count++
}

func (b *Buffer) pushBack(text string) {
	idx := b.alloc(text)
	if b.tail == nilIndex {
		b.head = idx
	} else {
		b.records[b.tail].next = idx
	}
	b.tail = idx
	b.count++
}

// alloc takes a slot from the free list or grows the arena.
func (b *Buffer) alloc(text string) int {
	rec := record{text: text, next: nilIndex, used: true}
	if n := len(b.free); n > 0 {
		idx := b.free[n-1]
		b.free = b.free[:n-1]
		b.records[idx] = rec
		return idx
	}
	b.records = append(b.records, rec)
	return len(b.records) - 1
}

func (b *Buffer) release(idx int) {
	b.records[idx] = record{next: nilIndex}
	b.free = append(b.free, idx)
}

func (b *Buffer) lineError(n int) error {
	return fmt.Errorf("line %d (buffer has %d): %w", n, b.count, ErrInvalidLine)
}
