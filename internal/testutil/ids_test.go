package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedIDs_ReturnsInOrder(t *testing.T) {
	ids := NewFixedIDs("a", "b", "c")

	assert.Equal(t, 3, ids.Remaining())
	assert.Equal(t, "a", ids.NewID())
	assert.Equal(t, "b", ids.NewID())
	assert.Equal(t, "c", ids.NewID())
	assert.Equal(t, 0, ids.Remaining())
}

func TestFixedIDs_PanicsWhenExhausted(t *testing.T) {
	ids := NewFixedIDs("only")
	ids.NewID()

	assert.PanicsWithValue(t, "testutil.FixedIDs: all 1 ids consumed", func() {
		ids.NewID()
	})
}

func TestSequentialIDs(t *testing.T) {
	ids := NewSequentialIDs("user")

	assert.Equal(t, "user-1", ids.NewID())
	assert.Equal(t, "user-2", ids.NewID())
	assert.Equal(t, "user-3", ids.NewID())
}
