// Package sds implements a binary-safe, append-friendly mutable byte
// string with a length/free header conceptually stored ahead of the
// payload, amortized growth, and a small family of formatting and
// splitting helpers.
//
// An SDS is not safe for concurrent use; callers own exclusive access. Any
// byte slice obtained from [SDS.Bytes] or [SDS.CBytes] is a view into the
// current backing array: a subsequent mutating call may reallocate that
// array, invalidating the view, the same handle-invalidation hazard
// spec.md §9 calls out for the original pointer-into-payload design.
package sds

import (
	"fmt"

	"github.com/dsprim/kvstructs/internal/arena"
)

// header mirrors the conceptual {len, free} header spec.md places
// immediately before the payload; it is never stored directly (Go slices
// already carry their own length/capacity), but its size is used by
// [SDS.AllocSize] so that value matches what a C-style accounting would
// report.
type header struct {
	length uint64
	free   uint64
}

const headerSize = 16 // unsafe.Sizeof(header{}) on a 64-bit platform

// SDS is a binary-safe mutable string. The zero value is not usable;
// construct one with [New] or [Empty].
type SDS struct {
	raw []byte // raw[:length] is content, raw[length] == 0 is the trailing NUL
}

// New creates an SDS containing a copy of b.
func New(b []byte) *SDS {
	s := &SDS{}
	s.raw = make([]byte, len(b)+1)
	copy(s.raw, b)

	return s
}

// Empty creates an SDS with zero length and zero pre-allocated free space.
func Empty() *SDS {
	return &SDS{raw: []byte{0}}
}

// FromCStr creates an SDS from a NUL-terminated byte slice, taking
// everything up to (not including) the first NUL byte. If cstr has no NUL
// byte, the whole slice is used.
func FromCStr(cstr []byte) *SDS {
	for i, b := range cstr {
		if b == 0 {
			return New(cstr[:i])
		}
	}

	return New(cstr)
}

// Dup returns an independent copy of s with no shared backing array.
func Dup(s *SDS) *SDS {
	return New(s.Bytes())
}

// Free releases s. The Go runtime reclaims the backing array once
// unreachable; Free exists only to mirror spec.md's explicit free(handle)
// lifecycle step and to make call sites self-documenting about ownership
// transfer.
func Free(_ *SDS) {}

// Len returns the number of content bytes, excluding the trailing NUL.
func (s *SDS) Len() int {
	return len(s.raw) - 1
}

// Avail returns the number of bytes of free space beyond the content and
// its trailing NUL.
func (s *SDS) Avail() int {
	return cap(s.raw) - len(s.raw)
}

// AllocSize returns header size + len + free + 1, matching spec.md's
// invariant 3 definition of total allocation accounting.
func (s *SDS) AllocSize() int {
	return headerSize + s.Len() + s.Avail() + 1
}

// Bytes returns the current content as a byte slice. The returned slice
// aliases s's backing array and is invalidated by the next mutating call.
func (s *SDS) Bytes() []byte {
	return s.raw[:s.Len()]
}

// CBytes returns the content plus its trailing NUL byte.
func (s *SDS) CBytes() []byte {
	return s.raw
}

// String returns the content as a Go string (a copy).
func (s *SDS) String() string {
	return string(s.Bytes())
}

// MakeRoomFor ensures at least n bytes of free space beyond the current
// content, growing the backing array per spec.md's amortized policy
// (double below [arena.PreallocThreshold], linear increment above it) if
// needed. It is a no-op if free space already suffices.
func (s *SDS) MakeRoomFor(n int) {
	if s.Avail() >= n {
		return
	}

	length := s.Len()
	target := arena.GrowTarget(length, n)

	next := make([]byte, length+1, target+1)
	copy(next, s.raw[:length+1])
	s.raw = next
}

// ShrinkToFit releases all free space, setting Avail to zero.
func (s *SDS) ShrinkToFit() {
	length := s.Len()
	next := make([]byte, length+1)
	copy(next, s.raw[:length+1])
	s.raw = next
}

// IncrLen adjusts the content length by delta after the caller has
// written directly into the free space returned by growing Bytes'
// capacity (a zero-copy scatter-fill pattern), or truncates it when delta
// is negative. It panics if the adjustment would read past the free
// budget or truncate past zero, mirroring spec.md's "fatal, not
// recoverable" treatment of this invariant violation.
func (s *SDS) IncrLen(delta int) {
	switch {
	case delta > 0 && delta > s.Avail():
		panic("sds: IncrLen delta exceeds available free space")
	case delta < 0 && -delta > s.Len():
		panic("sds: IncrLen negative delta exceeds length")
	}

	newLen := s.Len() + delta
	s.raw = s.raw[:newLen+1]
	s.raw[newLen] = 0
}

// GrowZero extends the content to at least totalLen bytes, zero-filling
// the newly appended region. It is a no-op if the content is already at
// least that long.
func (s *SDS) GrowZero(totalLen int) {
	if totalLen <= s.Len() {
		return
	}

	extra := totalLen - s.Len()
	s.MakeRoomFor(extra)

	oldLen := s.Len()
	s.raw = s.raw[:totalLen+1]

	for i := oldLen; i < totalLen+1; i++ {
		s.raw[i] = 0
	}
}

// AppendBytes appends b to the content.
func (s *SDS) AppendBytes(b []byte) {
	if len(b) == 0 {
		return
	}

	s.MakeRoomFor(len(b))

	oldLen := s.Len()
	s.raw = s.raw[:oldLen+len(b)+1]
	copy(s.raw[oldLen:], b)
	s.raw[oldLen+len(b)] = 0
}

// AppendSDS appends other's content to s.
func (s *SDS) AppendSDS(other *SDS) {
	s.AppendBytes(other.Bytes())
}

// AppendCStr appends the bytes of cstr up to its first NUL byte.
func (s *SDS) AppendCStr(cstr []byte) {
	for i, b := range cstr {
		if b == 0 {
			s.AppendBytes(cstr[:i])
			return
		}
	}

	s.AppendBytes(cstr)
}

// CopyBytes destructively replaces the content with b, growing the backing
// array if needed.
func (s *SDS) CopyBytes(b []byte) {
	if len(b) > s.Len()+s.Avail() {
		s.MakeRoomFor(len(b) - s.Len())
	}

	s.raw = s.raw[:len(b)+1]
	copy(s.raw, b)
	s.raw[len(b)] = 0
}

// CatPrintf appends the result of formatting args with format, delegating
// to [fmt.Sprintf]. Unlike the C original this cannot truncate, so there is
// no retry-with-larger-buffer loop to perform.
func (s *SDS) CatPrintf(format string, args ...any) {
	s.AppendBytes([]byte(fmt.Sprintf(format, args...)))
}

// Join concatenates parts with sep between them into a freshly allocated
// SDS.
func Join(parts [][]byte, sep []byte) *SDS {
	out := Empty()

	for i, p := range parts {
		if i > 0 {
			out.AppendBytes(sep)
		}

		out.AppendBytes(p)
	}

	return out
}

// Compare lexicographically compares a and b over their shared prefix; on
// a tie, the longer string is greater. The comparison is binary-safe:
// embedded NUL bytes participate like any other byte.
func Compare(a, b *SDS) int {
	ab, bb := a.Bytes(), b.Bytes()

	n := min(len(bb), len(ab))

	for i := range n {
		if ab[i] != bb[i] {
			if ab[i] < bb[i] {
				return -1
			}

			return 1
		}
	}

	switch {
	case len(ab) < len(bb):
		return -1
	case len(ab) > len(bb):
		return 1
	default:
		return 0
	}
}
