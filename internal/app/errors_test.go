package app

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpError(t *testing.T) {
	base := errors.New("disk full")
	err := NewOpError("save", "out.txt", base).At("write")

	assert.Equal(t, "save out.txt (write): disk full", err.Error())
	assert.ErrorIs(t, err, base)

	var nilErr *OpError
	assert.Nil(t, nilErr.At("x"))
	assert.Equal(t, "", nilErr.Error())
	assert.NoError(t, nilErr.Unwrap())
}

func TestOpError_IsMatchesOpAndTarget(t *testing.T) {
	err := fmt.Errorf("menu: %w", NewOpError("delete", lineTarget(3), errors.New("gone")))

	assert.ErrorIs(t, err, &OpError{Op: "delete"})
	assert.ErrorIs(t, err, &OpError{Target: "line 3"})
	assert.ErrorIs(t, err, &OpError{Op: "delete", Target: "line 3"})
	assert.NotErrorIs(t, err, &OpError{Op: "save"})
	assert.NotErrorIs(t, err, &OpError{Op: "delete", Target: "line 4"})
	assert.NotErrorIs(t, err, ErrInvalidNumber)
}

func TestLookupChoice(t *testing.T) {
	item, err := lookupChoice(" 9 ")
	require.NoError(t, err)
	assert.Equal(t, "Show history", item.label)

	for _, bad := range []string{"", "42", "x", "-1"} {
		_, err := lookupChoice(bad)
		assert.ErrorIs(t, err, ErrInvalidChoice, "choice %q", bad)
	}
}

func TestParseLineNumber(t *testing.T) {
	n, err := parseLineNumber(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n, err = parseLineNumber("-2")
	require.NoError(t, err)
	assert.Equal(t, -2, n)

	_, err = parseLineNumber("twelve")
	assert.ErrorIs(t, err, ErrInvalidNumber)
	assert.Contains(t, err.Error(), `"twelve"`)
}

func TestMenuDisplayOrder(t *testing.T) {
	keys := make([]string, len(menu))
	for i, item := range menu {
		keys[i] = item.key
	}
	assert.Equal(t, "1234675890", strings.Join(keys, ""))
}
