package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrQuit signals that the session should end normally.
	ErrQuit = errors.New("quit requested")

	// ErrInvalidChoice is returned by lookupChoice for an unknown menu key.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrInvalidNumber is returned by parseLineNumber for non-integer input.
	ErrInvalidNumber = errors.New("invalid number")
)

// OpError records which menu operation failed and on what.
type OpError struct {
	Op     string // "save", "insert", "delete", "replace"
	Target string // file path or "line N"
	Stage  string // step within Op, e.g. "write"; optional
	Err    error
}

// NewOpError wraps err as a failure of op on target.
func NewOpError(op, target string, err error) *OpError {
	return &OpError{Op: op, Target: target, Err: err}
}

// At sets the failing stage. Nil-safe.
func (e *OpError) At(stage string) *OpError {
	if e != nil {
		e.Stage = stage
	}
	return e
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Target != "" {
		b.WriteString(" " + e.Target)
	}
	if e.Stage != "" {
		b.WriteString(" (" + e.Stage + ")")
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is an *OpError whose non-empty Op and Target
// both match e. errors.Is(err, &OpError{Op: "save"}) finds any save failure.
// Other targets are checked against the wrapped error by errors.Is.
func (e *OpError) Is(target error) bool {
	t, ok := target.(*OpError)
	if !ok || e == nil || t == nil {
		return false
	}
	return (t.Op == "" || t.Op == e.Op) && (t.Target == "" || t.Target == e.Target)
}

func lineTarget(n int) string {
	return "line " + strconv.Itoa(n)
}

func invalidNumber(input string) error {
	return fmt.Errorf("%w: %q", ErrInvalidNumber, input)
}
