package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemIndexAddKeepsOrder(t *testing.T) {
	idx := newItemIndex()

	for _, id := range []uint64{3, 1, 7, 5} {
		idx.Add(id)
	}

	assert.Equal(t, []uint64{1, 3, 5, 7}, idx.Ids())
	assert.Equal(t, 4, idx.Len())
}

func TestItemIndexAddIsIdempotent(t *testing.T) {
	idx := newItemIndex()

	idx.Add(2)
	idx.Add(2)

	assert.Equal(t, []uint64{2}, idx.Ids())
}

func TestItemIndexRemove(t *testing.T) {
	idx := newItemIndex()

	for _, id := range []uint64{1, 2, 3} {
		idx.Add(id)
	}

	idx.Remove(2)
	assert.Equal(t, []uint64{1, 3}, idx.Ids())
	assert.False(t, idx.Has(2))

	// Removing an absent id is a no-op.
	idx.Remove(9)
	assert.Equal(t, []uint64{1, 3}, idx.Ids())

	// Re-adding restores the sorted position.
	idx.Add(2)
	assert.Equal(t, []uint64{1, 2, 3}, idx.Ids())
	assert.True(t, idx.Has(2))
}

func TestItemIndexIdsReturnsCopy(t *testing.T) {
	idx := newItemIndex()

	idx.Add(1)
	idx.Add(2)

	ids := idx.Ids()
	ids[0] = 99

	assert.Equal(t, []uint64{1, 2}, idx.Ids())
}
