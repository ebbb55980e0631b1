// Package dict implements a hash table dictionary with two underlying
// tables and incremental (amortized O(1)) rehashing between them,
// pluggable key/value disciplines, safe and unsafe iteration, cursor-based
// scanning, and random sampling.
//
// A Dict is not safe for concurrent use; callers own exclusive access, the
// same single-owner contract spec.md places on all three primitives in
// this module.
package dict

import "github.com/dsprim/kvstructs/internal/xhash"

// Policy is the caller-supplied type descriptor spec.md §4.3 describes: a
// hash function, optional key/value duplicators, a key comparator, and
// optional key/value destructors. A nil duplicator means "store by
// reference/value as given"; a nil destructor means "no cleanup needed".
// The privateData given to [New] is forwarded, unchanged, to every callback
// except Hash, which receives only the key; the way the teacher's fs.FS
// implementations are handed caller-owned state.
type Policy struct {
	// Hash computes the hash of a key. Required.
	Hash func(key any) uint32

	// KeyEqual reports whether a and b denote the same key. Required.
	KeyEqual func(privateData any, a, b any) bool

	// KeyDup duplicates a key on insert. Nil means store by reference.
	KeyDup func(privateData any, key any) any

	// ValDup duplicates a value on insert/replace. Nil means store by
	// reference.
	ValDup func(privateData any, val any) any

	// KeyDestructor is called when an entry's key is discarded. Nil means
	// no cleanup.
	KeyDestructor func(privateData any, key any)

	// ValDestructor is called when an entry's value is discarded. Nil
	// means no cleanup.
	ValDestructor func(privateData any, val any)
}

// StringPolicy returns a Policy for string keys hashed with the seeded
// MurmurHash2 variant dict uses by default, comparing keys with ==. Values
// are stored and compared by reference.
func StringPolicy(seed uint32) Policy {
	return Policy{
		Hash: func(key any) uint32 {
			return xhash.Murmur2([]byte(key.(string)), seed)
		},
		KeyEqual: func(_ any, a, b any) bool {
			return a.(string) == b.(string)
		},
	}
}

// CaseInsensitiveStringPolicy returns a Policy for string keys hashed and
// compared without regard to ASCII case, using the DJB-times-33 variant
// spec.md assigns to case-insensitive keys.
func CaseInsensitiveStringPolicy() Policy {
	return Policy{
		Hash: func(key any) uint32 {
			return xhash.DJB2CaseInsensitive([]byte(key.(string)))
		},
		KeyEqual: func(_ any, a, b any) bool {
			return equalFoldASCII(a.(string), b.(string))
		},
	}
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}

		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}

		if ca != cb {
			return false
		}
	}

	return true
}
