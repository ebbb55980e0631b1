// Package arena centralizes the buffer growth arithmetic that sds and
// intset both rely on, playing the role spec.md assigns to an external
// allocator collaborator (alloc/calloc/realloc/free).
//
// Go has no failable allocation primitive to plumb a distinguished
// out-of-memory value through (the runtime panics instead), so unlike the
// C allocator spec.md describes, Grow here cannot fail: see DESIGN.md for
// why this is a deliberate, documented deviation rather than an oversight.
package arena

// PreallocThreshold is the growth-policy cutover point from spec.md §4.2:
// below it sds.MakeRoomFor doubles the requested size; at or above it, it
// adds a fixed increment instead, bounding over-allocation for large
// strings.
const PreallocThreshold = 1024 * 1024

// GrowTarget returns the new backing-array length MakeRoomFor(n) should
// request given the string's current length and the additional free space
// needed, implementing spec.md's amortized-doubling-below-threshold policy.
func GrowTarget(length, needed int) int {
	need := length + needed
	if need < PreallocThreshold {
		return need * 2
	}

	return need + PreallocThreshold
}

// Grow returns a new slice of length newLen with buf's contents copied into
// the front, analogous to a realloc that always succeeds. It never shrinks
// the capacity below newLen.
func Grow(buf []byte, newLen int) []byte {
	if cap(buf) >= newLen {
		return buf[:newLen]
	}

	next := make([]byte, newLen)
	copy(next, buf)

	return next
}
