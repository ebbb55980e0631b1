// Package intset implements a compact sorted set of int64 values, packed
// into a single contiguous buffer at the narrowest element width (16, 32,
// or 64 bits) that fits every stored value.
//
// An IntSet is not safe for concurrent use; callers own exclusive access,
// the same single-owner contract spec.md places on all three primitives in
// this module.
package intset

import (
	"math/rand/v2"
	"sort"

	"github.com/dsprim/kvstructs/internal/lebytes"
)

// Encoding is the packed element width of an IntSet.
type Encoding uint8

const (
	// Enc16 stores elements as little-endian int16.
	Enc16 Encoding = 2
	// Enc32 stores elements as little-endian int32.
	Enc32 Encoding = 4
	// Enc64 stores elements as little-endian int64.
	Enc64 Encoding = 8
)

// IntSet is a sorted, duplicate-free set of int64 values packed at adaptive
// width. The zero value is not usable; construct one with [New].
type IntSet struct {
	encoding Encoding
	length   uint32
	data     []byte
}

// New returns an empty IntSet at the narrowest encoding, Enc16.
func New() *IntSet {
	return &IntSet{encoding: Enc16}
}

// Encoding returns the set's current element width. It never narrows once
// widened, even after removals (spec.md §4.1's "no downgrade" rule).
func (s *IntSet) Encoding() Encoding {
	return s.encoding
}

// Len returns the number of elements currently stored.
func (s *IntSet) Len() int {
	return int(s.length)
}

// ByteSize returns the size in bytes of the packed element buffer, not
// counting the Go struct header.
func (s *IntSet) ByteSize() int {
	return len(s.data)
}

// widthFor returns the narrowest Encoding that can represent v.
func widthFor(v int64) Encoding {
	switch {
	case v >= -32768 && v <= 32767:
		return Enc16
	case v >= -2147483648 && v <= 2147483647:
		return Enc32
	default:
		return Enc64
	}
}

// Get returns the element at position pos in ascending order, if any.
func (s *IntSet) Get(pos int) (int64, bool) {
	if pos < 0 || pos >= int(s.length) {
		return 0, false
	}

	return s.getAt(pos), true
}

func (s *IntSet) getAt(pos int) int64 {
	off := pos * int(s.encoding)

	switch s.encoding {
	case Enc16:
		return int64(lebytes.Int16(s.data[off : off+2]))
	case Enc32:
		return int64(lebytes.Int32(s.data[off : off+4]))
	default:
		return lebytes.Int64(s.data[off : off+8])
	}
}

func (s *IntSet) putAt(pos int, v int64) {
	off := pos * int(s.encoding)

	switch s.encoding {
	case Enc16:
		lebytes.PutInt16(s.data[off:off+2], int16(v))
	case Enc32:
		lebytes.PutInt32(s.data[off:off+4], int32(v))
	default:
		lebytes.PutInt64(s.data[off:off+8], v)
	}
}

// search performs the closed-form binary search described in spec.md
// §4.1: three fast paths (empty, beyond-last, before-first) ahead of a
// classic bisection. It returns the position of v if present, and the
// position v would be inserted at if not, mirroring sort.Search's contract
// but without probing positions the fast paths already ruled out.
func (s *IntSet) search(v int64) (pos int, found bool) {
	length := int(s.length)
	if length == 0 {
		return 0, false
	}

	if v > s.getAt(length-1) {
		return length, false
	}

	if v < s.getAt(0) {
		return 0, false
	}

	min, max := uint(0), uint(length-1)

	for min <= max {
		mid := (min + max) >> 1

		cur := s.getAt(int(mid))

		switch {
		case cur == v:
			return int(mid), true
		case cur < v:
			min = mid + 1
		default:
			if mid == 0 {
				return 0, false
			}

			max = mid - 1
		}
	}

	return int(min), false
}

// Contains reports whether v is a member of the set.
func (s *IntSet) Contains(v int64) bool {
	if widthFor(v) > s.encoding {
		return false
	}

	_, found := s.search(v)

	return found
}

// Add inserts v into the set, upgrading the element width first if
// necessary. It reports whether v was newly inserted (false if v was
// already present).
func (s *IntSet) Add(v int64) bool {
	width := widthFor(v)
	if width > s.encoding {
		s.upgradeAndAdd(width, v)
		return true
	}

	pos, found := s.search(v)
	if found {
		return false
	}

	s.insertAt(pos, v)

	return true
}

// insertAt grows the buffer by one element and shifts the tail right,
// writing v at index pos. pos must already be the correct sorted position.
func (s *IntSet) insertAt(pos int, v int64) {
	width := int(s.encoding)
	oldLen := len(s.data)

	s.data = append(s.data, make([]byte, width)...)

	off := pos * width
	copy(s.data[off+width:], s.data[off:oldLen])
	s.length++
	s.putAt(pos, v)
}

// upgradeAndAdd implements spec.md's upgrade path: v forces the encoding
// wider, so by construction v is strictly outside the current value range
// (strictly less than the minimum when negative, strictly greater than the
// maximum otherwise — see spec.md §9's open question on this invariant).
// The existing elements are re-encoded in place into a freshly sized
// buffer, and v is placed at whichever end the new range opened up.
func (s *IntSet) upgradeAndAdd(newEncoding Encoding, v int64) {
	oldLength := int(s.length)
	prepend := v < 0

	newData := make([]byte, (oldLength+1)*int(newEncoding))

	destBase := 0
	if prepend {
		destBase = int(newEncoding)
	}

	for i := range oldLength {
		val := s.getAt(i)
		off := destBase + i*int(newEncoding)
		putAtWidth(newData[off:], newEncoding, val)
	}

	insertPos := 0
	if !prepend {
		insertPos = oldLength
	}

	putAtWidth(newData[insertPos*int(newEncoding):], newEncoding, v)

	s.encoding = newEncoding
	s.data = newData
	s.length = uint32(oldLength + 1)
}

func putAtWidth(buf []byte, enc Encoding, v int64) {
	switch enc {
	case Enc16:
		lebytes.PutInt16(buf, int16(v))
	case Enc32:
		lebytes.PutInt32(buf, int32(v))
	default:
		lebytes.PutInt64(buf, v)
	}
}

// Remove deletes v from the set if present. It reports whether v was
// removed. Removing an element never narrows the encoding, per spec.md's
// no-downgrade rule.
func (s *IntSet) Remove(v int64) bool {
	if widthFor(v) > s.encoding {
		return false
	}

	pos, found := s.search(v)
	if !found {
		return false
	}

	width := int(s.encoding)
	off := pos * width

	copy(s.data[off:], s.data[off+width:])
	s.data = s.data[:len(s.data)-width]
	s.length--

	return true
}

// Random returns a uniformly random element of the set. It panics if the
// set is empty; callers must check Len first, matching the contract of
// Go's own slice-indexing panics rather than returning a sentinel the
// caller could silently ignore.
func (s *IntSet) Random() int64 {
	if s.length == 0 {
		panic("intset: Random on empty set")
	}

	return s.getAt(rand.IntN(int(s.length)))
}

// Slice returns the set's contents as an ascending []int64. It is provided
// for tests, debugging, and the ambient CLI/dump tooling; the primitive
// itself never needs a full materialized copy.
func (s *IntSet) Slice() []int64 {
	out := make([]int64, s.length)
	for i := range out {
		out[i] = s.getAt(i)
	}

	return out
}

// FromSlice builds an IntSet containing the given values, deduplicated and
// sorted, at the narrowest encoding that fits them all.
func FromSlice(values []int64) *IntSet {
	s := New()

	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, v := range sorted {
		s.Add(v)
	}

	return s
}
