package dict

import (
	"unsafe"

	"github.com/dsprim/kvstructs/internal/xhash"
)

// Iterator walks every entry in a Dict. Construct one with
// [Dict.Iterator] (unsafe) or [Dict.SafeIterator] (safe); always call
// [Iterator.Release] when done, typically via defer.
//
// An unsafe iterator must not observe any mutation of the dictionary
// between its first Next call and Release; doing so panics on Release via
// a fingerprint mismatch, spec.md's "fatal, not recoverable" treatment of
// this invariant. A safe iterator tolerates mutation — including deleting
// the entry just yielded, since the next entry is precomputed before
// returning — at the cost of suspending incremental rehashing for its
// lifetime.
type Iterator struct {
	d       *Dict
	safe    bool
	started bool

	tableIdx int
	index    int64
	entry    *entry
	nextNode *entry

	fingerprint uint64
}

// Iterator returns a new unsafe iterator over d.
func (d *Dict) Iterator() *Iterator {
	return &Iterator{d: d, index: -1}
}

// SafeIterator returns a new safe iterator over d.
func (d *Dict) SafeIterator() *Iterator {
	return &Iterator{d: d, index: -1, safe: true}
}

func (it *Iterator) tableAt(i int) *table {
	if i == 0 {
		return &it.d.t0
	}

	return &it.d.t1
}

// Next advances the iterator and returns the next (key, value) pair. ok is
// false once every entry has been visited.
func (it *Iterator) Next() (key, val any, ok bool) {
	for {
		if it.entry == nil {
			if !it.started {
				it.started = true

				if it.safe {
					it.d.iterators++
				} else {
					it.fingerprint = it.d.fingerprint()
				}
			}

			tbl := it.tableAt(it.tableIdx)
			it.index++

			if uint64(it.index) >= tbl.size {
				if it.tableIdx == 0 && it.d.IsRehashing() {
					it.tableIdx = 1
					it.index = 0
					tbl = it.tableAt(1)

					if uint64(it.index) >= tbl.size {
						return nil, nil, false
					}
				} else {
					return nil, nil, false
				}
			}

			it.entry = tbl.buckets[it.index]
		} else {
			it.entry = it.nextNode
		}

		if it.entry != nil {
			it.nextNode = it.entry.next
			return it.entry.key, it.entry.val, true
		}
	}
}

// Release ends iteration. For a safe iterator it re-enables incremental
// rehashing once no other safe iterator is outstanding. For an unsafe
// iterator it asserts the dictionary's fingerprint is unchanged since the
// first Next call, panicking if a mutation slipped through.
func (it *Iterator) Release() {
	if !it.started {
		return
	}

	if it.safe {
		it.d.iterators--
		return
	}

	if it.fingerprint != it.d.fingerprint() {
		panic("dict: unsafe iterator fingerprint mismatch: dictionary was mutated during iteration")
	}
}

// fingerprint combines both tables' bucket-array identity and size/used
// counters via a seeded 64-bit mixer, per spec.md's definition. The
// bucket-array pointer changes on expand/rehash-completion; used changes
// on every insert/delete; together they catch any mutating call made
// between an unsafe iterator's first Next and its Release.
func (d *Dict) fingerprint() uint64 {
	p0 := uint64(uintptr(unsafe.Pointer(unsafe.SliceData(d.t0.buckets))))
	p1 := uint64(uintptr(unsafe.Pointer(unsafe.SliceData(d.t1.buckets))))

	return xhash.MixFingerprint(p0, d.t0.size, d.t0.used, p1, d.t1.size, d.t1.used)
}
