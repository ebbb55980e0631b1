package dict

import "time"

// RehashStep migrates up to n non-empty buckets from T0 to T1, bounding
// its probing to at most 10*n empty buckets so a sparse T0 cannot turn a
// single step into unbounded latency. It is a no-op if no rehash is in
// progress. Exposed publicly so callers (and the maintenance tick modeled
// by [Dict.RehashMilliseconds]) can drive migration explicitly in
// addition to the automatic single-bucket step every foreground operation
// performs.
func (d *Dict) RehashStep(n int) {
	d.rehashStep(n)
}

func (d *Dict) rehashStep(n int) {
	if !d.IsRehashing() {
		return
	}

	emptyVisits := n * 10

	for n > 0 && d.t0.used != 0 {
		for d.t0.buckets[d.rehashidx] == nil {
			d.rehashidx++
			emptyVisits--

			if emptyVisits == 0 {
				return
			}
		}

		d.migrateBucket(uint64(d.rehashidx))
		d.rehashidx++
		n--
	}

	d.maybeFinishRehash()
}

// migrateBucket splices every node in T0's bucket at idx into its target
// bucket in T1, recomputing the hash against T1's mask, then clears the
// T0 bucket.
func (d *Dict) migrateBucket(idx uint64) {
	e := d.t0.buckets[idx]
	for e != nil {
		next := e.next

		target := uint64(d.policy.Hash(e.key)) & d.t1.mask
		e.next = d.t1.buckets[target]
		d.t1.buckets[target] = e

		d.t0.used--
		d.t1.used++

		e = next
	}

	d.t0.buckets[idx] = nil
}

func (d *Dict) maybeFinishRehash() {
	if d.t0.used != 0 {
		return
	}

	d.t0 = d.t1
	d.t1 = table{}
	d.rehashidx = -1
}

// RehashMilliseconds runs 100-bucket rehash steps until either the rehash
// completes or the given time budget is exhausted, modeling spec.md's
// periodic-maintenance-tick batch rehash entry point. It returns the
// number of T0 bucket positions its batches advanced over, empty buckets
// included.
func (d *Dict) RehashMilliseconds(ms int) int {
	if !d.IsRehashing() {
		return 0
	}

	deadline := time.Now().Add(time.Duration(ms) * time.Millisecond)
	migrated := 0

	for d.IsRehashing() {
		before, oldSize := d.rehashidx, int64(d.t0.size)
		d.rehashStep(100)
		migrated += stepsAdvanced(before, d.rehashidx, oldSize)

		if time.Now().After(deadline) {
			break
		}
	}

	return migrated
}

// stepsAdvanced accounts for rehashidx resetting to -1 when a rehash
// finishes mid-batch: the batch then covered every position from before up
// to oldSize, the old table's size.
func stepsAdvanced(before, after, oldSize int64) int {
	if after == -1 {
		return int(oldSize - before)
	}

	return int(after - before)
}
