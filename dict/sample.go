package dict

import "math/rand/v2"

// Entry is a (key, value) pair returned by [Dict.GetSomeKeys].
type Entry struct {
	Key   any
	Value any
}

// GetRandomKey returns a uniformly random (key, value) pair. ok is false
// if the dictionary is empty.
func (d *Dict) GetRandomKey() (key, val any, ok bool) {
	total := d.t0.used + d.t1.used
	if total == 0 {
		return nil, nil, false
	}

	d.maybeRehash()

	var e *entry

	if d.IsRehashing() {
		span := d.t0.size + d.t1.size - uint64(d.rehashidx)
		for e == nil {
			idx := uint64(d.rehashidx) + rand.Uint64N(span)
			if idx >= d.t0.size {
				e = d.t1.buckets[idx-d.t0.size]
			} else {
				e = d.t0.buckets[idx]
			}
		}
	} else {
		for e == nil {
			e = d.t0.buckets[rand.Uint64N(d.t0.size)]
		}
	}

	length := 1
	for p := e; p.next != nil; p = p.next {
		length++
	}

	target := rand.IntN(length)
	for range target {
		e = e.next
	}

	return e.key, e.val, true
}

// GetSomeKeys scatter-samples up to count entries using a random starting
// bucket and the same reverse-increment walk [Dict.Scan] uses, jumping to
// a fresh random starting bucket after max(5, count) consecutive empty
// buckets and giving up after 10*count total steps. It returns the
// entries actually collected, each at most once, which may be fewer than
// count.
func (d *Dict) GetSomeKeys(count int) []Entry {
	total := d.t0.used + d.t1.used
	if total == 0 || count <= 0 {
		return nil
	}

	if uint64(count) > total {
		count = int(total)
	}

	out := make([]Entry, 0, count)
	seen := make(map[*entry]struct{}, count)

	maxSteps := 10 * count
	emptyLimit := count

	if emptyLimit < 5 {
		emptyLimit = 5
	}

	cursor := rand.Uint64()
	emptyRun := 0

	mask := d.t0.mask
	if d.IsRehashing() && d.t1.mask > mask {
		mask = d.t1.mask
	}

	for steps := 0; len(out) < count && steps < maxSteps; steps++ {
		visited := d.collectBucket(cursor, &out, count, seen)

		if visited == 0 {
			emptyRun++
		} else {
			emptyRun = 0
		}

		if emptyRun >= emptyLimit {
			cursor = rand.Uint64()
			emptyRun = 0
		} else {
			cursor = reverseIncrement(cursor, mask)
		}
	}

	return out
}

// collectBucket appends entries from the bucket cursor maps to in T0 (and,
// while rehashing, the corresponding bucket(s) of T1) into out, stopping
// once out reaches limit entries. Entries already in seen are skipped, so
// no entry is returned twice. It returns how many entries it added.
func (d *Dict) collectBucket(cursor uint64, out *[]Entry, limit int, seen map[*entry]struct{}) int {
	added := 0

	for e := d.t0.buckets[cursor&d.t0.mask]; e != nil && len(*out) < limit; e = e.next {
		if _, dup := seen[e]; dup {
			continue
		}

		seen[e] = struct{}{}
		*out = append(*out, Entry{e.key, e.val})
		added++
	}

	if d.IsRehashing() {
		for e := d.t1.buckets[cursor&d.t1.mask]; e != nil && len(*out) < limit; e = e.next {
			if _, dup := seen[e]; dup {
				continue
			}

			seen[e] = struct{}{}
			*out = append(*out, Entry{e.key, e.val})
			added++
		}
	}

	return added
}
