package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePassthrough(t *testing.T) {
	in := Fail("boom")
	out := Normalize("op", in)
	assert.Equal(t, in, out)

	ok := OK([]int{1, 2})
	assert.Equal(t, ok, Normalize("op", ok))
}

func TestNormalizeSlice(t *testing.T) {
	out := Normalize("get_contacts", []string{"a", "b"})
	assert.True(t, out.Success)
	assert.Equal(t, []string{"a", "b"}, out.Data)

	// an empty list is a valid, successful result
	out = Normalize("get_contacts", []string{})
	assert.True(t, out.Success)
}

func TestNormalizeBool(t *testing.T) {
	out := Normalize("op", true)
	assert.True(t, out.Success)
	assert.Nil(t, out.Data)

	out = Normalize("op", false)
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "op returned no result")
}

func TestNormalizeNilAndZero(t *testing.T) {
	out := Normalize("save", nil)
	assert.False(t, out.Success)
	assert.Equal(t, "save returned no result", out.Error)

	out = Normalize("save", "")
	assert.False(t, out.Success)

	var nilPtr *Result
	out = Normalize("save", nilPtr)
	assert.False(t, out.Success)
}

func TestNormalizeTruthyValue(t *testing.T) {
	out := Normalize("count", 42)
	assert.True(t, out.Success)
	assert.Equal(t, 42, out.Data)

	out = Normalize("name", "alice")
	assert.True(t, out.Success)
	assert.Equal(t, "alice", out.Data)
}

func TestNormalizeError(t *testing.T) {
	out := Normalize("op", errors.New("disk full"))
	assert.False(t, out.Success)
	assert.Equal(t, "disk full", out.Error)
}

func TestNormalizeFieldHints(t *testing.T) {
	out := Normalize("add_expense", Fail("missing title"), "title", "price")
	assert.False(t, out.Success)
	assert.Contains(t, out.Error, "missing title")
	assert.Contains(t, out.Error, "Title")
	assert.Contains(t, out.Error, "Price")

	// hints never touch successful results
	out = Normalize("add_expense", OK(nil), "title")
	assert.True(t, out.Success)
	assert.Empty(t, out.Error)
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Price", LabelFor("price"))
	assert.Equal(t, "unknown_field", LabelFor("unknown_field"))
}
