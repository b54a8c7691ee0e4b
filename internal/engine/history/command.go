package history

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Kind identifies the mutation a Command records.
type Kind uint8

const (
	// KindInsert records a line inserted at Line with content Text.
	KindInsert Kind = iota + 1
	// KindDelete records a line removed from Line whose content was Text.
	KindDelete
	// KindReplace records line Line overwritten from Text to NewText.
	KindReplace
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Applier applies line mutations without recording them.
// History drives undo and redo through it.
type Applier interface {
	ApplyInsert(line int, text string) error
	ApplyDelete(line int) error
	ApplyReplace(line int, text string) error
}

// Command is a recorded line mutation.
type Command struct {
	Kind Kind
	Line int

	// Text is the inserted line for KindInsert, the removed line for
	// KindDelete and the previous content for KindReplace.
	Text string

	// NewText is the content written by KindReplace.
	NewText string

	Timestamp time.Time
}

// NewInsertCommand records text inserted at line.
func NewInsertCommand(line int, text string) Command {
	return Command{Kind: KindInsert, Line: line, Text: text, Timestamp: time.Now()}
}

// NewDeleteCommand records removed deleted from line.
func NewDeleteCommand(line int, removed string) Command {
	return Command{Kind: KindDelete, Line: line, Text: removed, Timestamp: time.Now()}
}

// NewReplaceCommand records line overwritten from oldText to newText.
func NewReplaceCommand(line int, oldText, newText string) Command {
	return Command{Kind: KindReplace, Line: line, Text: oldText, NewText: newText, Timestamp: time.Now()}
}

// Invert returns the command that reverses c.
func (c Command) Invert() Command {
	inv := c
	switch c.Kind {
	case KindInsert:
		inv.Kind = KindDelete
	case KindDelete:
		inv.Kind = KindInsert
	case KindReplace:
		inv.Text, inv.NewText = c.NewText, c.Text
	}
	return inv
}

// Apply performs the forward mutation of c on target.
func (c Command) Apply(target Applier) error {
	switch c.Kind {
	case KindInsert:
		return target.ApplyInsert(c.Line, c.Text)
	case KindDelete:
		return target.ApplyDelete(c.Line)
	case KindReplace:
		return target.ApplyReplace(c.Line, c.NewText)
	default:
		return fmt.Errorf("apply %s command: %w", c.Kind, ErrUnknownKind)
	}
}

// Description returns a human-readable description.
func (c Command) Description() string {
	switch c.Kind {
	case KindInsert:
		return fmt.Sprintf("Insert line %d %s", c.Line, quote(c.Text))
	case KindDelete:
		return fmt.Sprintf("Delete line %d %s", c.Line, quote(c.Text))
	case KindReplace:
		return fmt.Sprintf("Replace line %d %s with %s", c.Line, quote(c.Text), quote(c.NewText))
	default:
		return "Unknown command"
	}
}

func quote(s string) string {
	if utf8.RuneCountInString(s) <= 20 {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("(%d characters)", utf8.RuneCountInString(s))
}
