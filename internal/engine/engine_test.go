package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/linestack/internal/engine/history"
)

func TestNew(t *testing.T) {
	e := New()

	assert.Equal(t, 0, e.Len())
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())
	assert.Equal(t, DefaultMaxUndoEntries, e.MaxUndoEntries())
}

func TestNewWithOptions(t *testing.T) {
	e := New(WithLines("a", "b"), WithMaxUndoEntries(5))

	assert.Equal(t, []string{"a", "b"}, e.Strings())
	assert.False(t, e.CanUndo(), "initial lines are not recorded")
	assert.Equal(t, 5, e.MaxUndoEntries())

	e = New(WithMaxUndoEntries(0))
	assert.Equal(t, DefaultMaxUndoEntries, e.MaxUndoEntries())
}

func TestInsertGrowsByOne(t *testing.T) {
	for n := 1; n <= 4; n++ {
		e := New(WithLines("a", "b", "c"))

		at, err := e.Insert(n, "x")
		require.NoError(t, err)

		assert.Equal(t, n, at)
		assert.Equal(t, 4, e.Len())
		text, err := e.Line(n)
		require.NoError(t, err)
		assert.Equal(t, "x", text)
	}
}

func TestDeleteShrinksByOne(t *testing.T) {
	for n := 1; n <= 3; n++ {
		e := New(WithLines("a", "b", "c"))
		want := append([]string{}, e.Strings()...)
		want = append(want[:n-1], want[n:]...)

		require.NoError(t, e.Delete(n))

		assert.Equal(t, want, e.Strings())
		assert.Equal(t, 2, e.Len())
	}
}

func TestReplaceKeepsLength(t *testing.T) {
	e := New(WithLines("a", "b", "c"))

	require.NoError(t, e.Replace(2, "B"))

	assert.Equal(t, []string{"a", "B", "c"}, e.Strings())
	assert.Equal(t, 3, e.Len())
}

func TestInvalidLineLeavesStateUnchanged(t *testing.T) {
	e := New()

	err := e.Delete(1)
	assert.ErrorIs(t, err, ErrInvalidLine)
	assert.Equal(t, 0, e.Len())
	assert.False(t, e.CanUndo())

	_, err = e.Insert(1, "a")
	require.NoError(t, err)

	err = e.Replace(2, "x")
	assert.ErrorIs(t, err, ErrInvalidLine)
	_, err = e.Insert(0, "x")
	assert.ErrorIs(t, err, ErrInvalidLine)

	assert.Equal(t, []string{"a"}, e.Strings())
	assert.Len(t, e.UndoInfo(), 1)
}

func TestInsertUndoRedoScenario(t *testing.T) {
	e := New()

	_, err := e.Insert(1, "a")
	require.NoError(t, err)
	_, err = e.Insert(2, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, e.Strings())

	cmd, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, history.KindInsert, cmd.Kind)
	assert.Equal(t, []string{"a"}, e.Strings())

	_, err = e.Redo()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, e.Strings())
}

func TestDeleteScenario(t *testing.T) {
	e := New(WithLines("a", "b", "c"))

	require.NoError(t, e.Delete(2))
	assert.Equal(t, []string{"a", "c"}, e.Strings())
	assert.Equal(t, 2, e.Len())

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, e.Strings())

	_, err = e.Redo()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, e.Strings())
}

func TestDeleteLastUndo(t *testing.T) {
	e := New(WithLines("a", "b", "c"))

	require.NoError(t, e.Delete(3))
	_, err := e.Undo()
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, e.Strings())
}

func TestReplaceUndoRedo(t *testing.T) {
	e := New(WithLines("old"))

	require.NoError(t, e.Replace(1, "new"))

	_, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, e.Strings())

	_, err = e.Redo()
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, e.Strings())
}

func TestAppendPastEndUndo(t *testing.T) {
	e := New(WithLines("a"))

	at, err := e.Insert(10, "z")
	require.NoError(t, err)
	assert.Equal(t, 2, at)

	_, err = e.Undo()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, e.Strings())
}

func TestFreshEditClearsRedo(t *testing.T) {
	e := New()
	_, err := e.Insert(1, "a")
	require.NoError(t, err)
	_, err = e.Undo()
	require.NoError(t, err)
	require.True(t, e.CanRedo())

	_, err = e.Insert(1, "b")
	require.NoError(t, err)

	assert.False(t, e.CanRedo())
	_, err = e.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestEmptyHistory(t *testing.T) {
	e := New()

	_, err := e.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	_, err = e.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestMixedUndoRedoSequence(t *testing.T) {
	e := New()
	_, err := e.Insert(1, "a")
	require.NoError(t, err)
	_, err = e.Insert(2, "b")
	require.NoError(t, err)
	require.NoError(t, e.Replace(1, "A"))
	require.NoError(t, e.Delete(2))
	assert.Equal(t, []string{"A"}, e.Strings())

	states := [][]string{
		{"A", "b"},
		{"a", "b"},
		{"a"},
		{},
	}
	for _, want := range states {
		_, err := e.Undo()
		require.NoError(t, err)
		assert.Equal(t, want, e.Strings())
	}

	for i := len(states) - 2; i >= 0; i-- {
		_, err := e.Redo()
		require.NoError(t, err)
		assert.Equal(t, states[i], e.Strings())
	}
	_, err = e.Redo()
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, e.Strings())
	assert.False(t, e.CanRedo())
}

func TestClearIsNotRecorded(t *testing.T) {
	e := New()
	_, err := e.Insert(1, "a")
	require.NoError(t, err)

	e.Clear()
	assert.Equal(t, 0, e.Len())
	assert.Len(t, e.UndoInfo(), 1)

	_, err = e.Undo()
	assert.ErrorIs(t, err, ErrInvalidLine)
	assert.Empty(t, e.UndoInfo())
}

func TestUndoAfterClearReachesOlderHistory(t *testing.T) {
	e := New()
	for i, text := range []string{"a", "b"} {
		_, err := e.Insert(i+1, text)
		require.NoError(t, err)
	}
	e.Clear()
	_, err := e.Insert(1, "x")
	require.NoError(t, err)

	cmd, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, "x", cmd.Text)
	assert.Equal(t, 0, e.Len())

	// "b" and "a" were cleared away; each stale entry is dropped in turn
	_, err = e.Undo()
	assert.ErrorIs(t, err, ErrInvalidLine)
	_, err = e.Undo()
	assert.ErrorIs(t, err, ErrInvalidLine)

	_, err = e.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	assert.Len(t, e.RedoInfo(), 1)
}

func TestPrintIsIdempotent(t *testing.T) {
	e := New(WithLines("a", "b"))

	assert.Equal(t, e.Lines(), e.Lines())
	assert.Equal(t, []Line{{Number: 1, Text: "a"}, {Number: 2, Text: "b"}}, e.Lines())
}

func TestWriteTo(t *testing.T) {
	e := New(WithLines("a", "b"))

	var out bytes.Buffer
	_, err := e.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", out.String())
}

func TestSetMaxUndoEntries(t *testing.T) {
	e := New()
	for i := 1; i <= 4; i++ {
		_, err := e.Insert(i, "x")
		require.NoError(t, err)
	}

	e.SetMaxUndoEntries(2)
	assert.Len(t, e.UndoInfo(), 2)

	e.ClearHistory()
	assert.False(t, e.CanUndo())
}
