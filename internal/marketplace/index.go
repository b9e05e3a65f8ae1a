package marketplace

import "sort"

// itemIndex is the derived set of unsold item ids, kept in ascending order so
// enumeration never needs to touch the item table. It is only ever mutated
// while the ledger lock is held.
type itemIndex struct {
	ids     []uint64
	members map[uint64]struct{}
}

func newItemIndex() *itemIndex {
	return &itemIndex{
		ids:     make([]uint64, 0),
		members: map[uint64]struct{}{},
	}
}

func (x *itemIndex) Add(id uint64) {
	if _, ok := x.members[id]; ok {
		return
	}

	pos := sort.Search(len(x.ids), func(i int) bool { return x.ids[i] >= id })

	x.ids = append(x.ids, 0)
	copy(x.ids[pos+1:], x.ids[pos:])
	x.ids[pos] = id
	x.members[id] = struct{}{}
}

func (x *itemIndex) Remove(id uint64) {
	if _, ok := x.members[id]; !ok {
		return
	}

	pos := sort.Search(len(x.ids), func(i int) bool { return x.ids[i] >= id })
	x.ids = append(x.ids[:pos], x.ids[pos+1:]...)
	delete(x.members, id)
}

func (x *itemIndex) Has(id uint64) bool {
	_, ok := x.members[id]
	return ok
}

func (x *itemIndex) Len() int {
	return len(x.ids)
}

func (x *itemIndex) Ids() []uint64 {
	ids := make([]uint64, len(x.ids))
	copy(ids, x.ids)

	return ids
}
