package dict

import "math/bits"

// ScanFunc is called once per entry visited by [Dict.Scan].
type ScanFunc func(key, val any)

// Scan implements the Noordhuis stateless cursor-scan algorithm from
// spec.md §4.3: callers start with cursor 0 and keep calling Scan with the
// returned cursor until it comes back as 0, at which point a full pass is
// complete. The scan tolerates concurrent mutation: every entry present
// throughout the whole scan is visited at least once, but entries
// inserted or removed mid-scan may or may not appear, and during a resize
// an entry may be visited more than once.
func (d *Dict) Scan(cursor uint64, fn ScanFunc) uint64 {
	if d.t0.size == 0 {
		return 0
	}

	if !d.IsRehashing() {
		return scanTable(&d.t0, cursor, fn)
	}

	small, big := &d.t0, &d.t1
	if small.size > big.size {
		small, big = big, small
	}

	visitBucket(small, cursor&small.mask, fn)

	lowBits := cursor & small.mask

	for {
		visitBucket(big, cursor&big.mask, fn)

		cursor = reverseIncrement(cursor, big.mask)

		if cursor&small.mask != lowBits {
			break
		}
	}

	return cursor
}

func scanTable(t *table, cursor uint64, fn ScanFunc) uint64 {
	visitBucket(t, cursor&t.mask, fn)
	return reverseIncrement(cursor, t.mask)
}

func visitBucket(t *table, idx uint64, fn ScanFunc) {
	for e := t.buckets[idx]; e != nil; e = e.next {
		fn(e.key, e.val)
	}
}

// reverseIncrement advances cursor by OR'ing in the complement of mask,
// bit-reversing, incrementing, and bit-reversing again — the trick that
// makes the high-order bits of cursor carry into the low-order bits on
// wraparound, so growing or shrinking the table mid-scan still covers
// every bucket that exists at both ends of the scan.
func reverseIncrement(cursor, mask uint64) uint64 {
	cursor |= ^mask
	cursor = bits.Reverse64(cursor)
	cursor++

	return bits.Reverse64(cursor)
}
