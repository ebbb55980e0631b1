package dict

const (
	initialSize = 4
	forceRatio  = 5
)

// entry is a single chained node. Chains are owned exclusively by the
// bucket that heads them; spec.md §9 notes this is conceptually an owned
// singly-linked list, which a GC'd language gets for free via ordinary
// pointers.
type entry struct {
	key  any
	val  any
	next *entry
}

// table is one of the dict's two underlying hash tables.
type table struct {
	buckets []*entry
	size    uint64 // power of two; 0 means unallocated
	mask    uint64 // size - 1
	used    uint64
}

// Dict is a two-table, incrementally-rehashing hash dictionary. The zero
// value is not usable; construct one with [New].
type Dict struct {
	policy        Policy
	privateData   any
	t0, t1        table
	rehashidx     int64 // -1 when no rehash is in progress
	iterators     int   // live safe iterators; rehash is suspended while > 0
	resizeEnabled bool
}

// New creates an empty Dict using policy for hashing, comparison, and
// optional duplication/destruction of keys and values. privateData is
// forwarded verbatim to every Policy callback except Hash, which receives
// only the key. It panics if policy.Hash or
// policy.KeyEqual is nil — both are mandatory per spec.md §4.3.
func New(policy Policy, privateData any) *Dict {
	if policy.Hash == nil || policy.KeyEqual == nil {
		panic("dict: Policy.Hash and Policy.KeyEqual are required")
	}

	return &Dict{
		policy:        policy,
		privateData:   privateData,
		rehashidx:     -1,
		resizeEnabled: true,
	}
}

// Len returns the total number of entries across both live tables.
func (d *Dict) Len() int {
	return int(d.t0.used + d.t1.used)
}

// IsRehashing reports whether an incremental rehash is currently in
// progress.
func (d *Dict) IsRehashing() bool {
	return d.rehashidx != -1
}

// SetResizeEnabled toggles whether ExpandIfNeeded may grow the table
// opportunistically as soon as used reaches size, versus only once the
// load factor exceeds the forced-resize ratio. Disabling this models
// spec.md's "resize enabled" flag, used e.g. while a background save is in
// progress and copy-on-write pages should not be churned by a resize.
func (d *Dict) SetResizeEnabled(enabled bool) {
	d.resizeEnabled = enabled
}

func nextPow2(n uint64) uint64 {
	if n < 1 {
		return 1
	}

	p := uint64(1)
	for p < n {
		p <<= 1
	}

	return p
}

// ExpandIfNeeded runs the sizing policy from spec.md §4.3: it allocates
// the first table lazily, then grows once used reaches size, provided
// resizing is enabled or the load factor has exceeded forceRatio. It is
// called automatically before every insertion-path operation; exposed
// publicly so callers and tests can trigger it deterministically.
func (d *Dict) ExpandIfNeeded() {
	if d.IsRehashing() {
		return
	}

	if d.t0.size == 0 {
		_ = d.expand(initialSize)
		return
	}

	if d.t0.used >= d.t0.size && (d.resizeEnabled || d.t0.used/d.t0.size > forceRatio) {
		_ = d.expand(d.t0.used * 2)
	}
}

// Expand requests a resize to the smallest power of two at least newSize.
// It returns [ErrAlreadyRehashing] if a rehash is already running, or
// [ErrSizeTooSmall] if newSize is less than the number of entries already
// stored. A first-time call (before any table is allocated) installs the
// table directly rather than starting a rehash.
func (d *Dict) Expand(newSize uint64) error {
	return d.expand(newSize)
}

func (d *Dict) expand(newSize uint64) error {
	if d.IsRehashing() {
		return ErrAlreadyRehashing
	}

	if newSize < d.t0.used {
		return ErrSizeTooSmall
	}

	size := nextPow2(newSize)
	if size < initialSize {
		size = initialSize
	}

	nt := table{buckets: make([]*entry, size), size: size, mask: size - 1}

	if d.t0.size == 0 {
		d.t0 = nt
		return nil
	}

	d.t1 = nt
	d.rehashidx = 0

	return nil
}

// Resize shrinks the table to the smallest power of two that still fits
// the current entry count (never below initialSize), matching spec.md's
// description of an externally-driven shrink.
func (d *Dict) Resize() error {
	minimal := d.t0.used
	if minimal < initialSize {
		minimal = initialSize
	}

	return d.expand(minimal)
}

// dupKey applies the policy's key duplicator, if any.
func (d *Dict) dupKey(key any) any {
	if d.policy.KeyDup != nil {
		return d.policy.KeyDup(d.privateData, key)
	}

	return key
}

// dupVal applies the policy's value duplicator, if any.
func (d *Dict) dupVal(val any) any {
	if d.policy.ValDup != nil {
		return d.policy.ValDup(d.privateData, val)
	}

	return val
}

// findEntry locates the live node for key, or nil. It does not trigger a
// rehash step; callers that are on a foreground operation path should call
// maybeRehash themselves first.
func (d *Dict) findEntry(key any) *entry {
	if d.t0.size == 0 {
		return nil
	}

	h := uint64(d.policy.Hash(key))

	if e := findInTable(&d.t0, h, key, d.policy, d.privateData); e != nil {
		return e
	}

	if d.IsRehashing() {
		return findInTable(&d.t1, h, key, d.policy, d.privateData)
	}

	return nil
}

func findInTable(t *table, h uint64, key any, policy Policy, privateData any) *entry {
	for e := t.buckets[h&t.mask]; e != nil; e = e.next {
		if policy.KeyEqual(privateData, key, e.key) {
			return e
		}
	}

	return nil
}

// Find returns the value stored for key, and whether it was present.
func (d *Dict) Find(key any) (any, bool) {
	d.maybeRehash()

	e := d.findEntry(key)
	if e == nil {
		return nil, false
	}

	return e.val, true
}

// Contains reports whether key is present.
func (d *Dict) Contains(key any) bool {
	_, ok := d.Find(key)
	return ok
}

// Add inserts key with value. It returns [ErrKeyExists] without modifying
// the dictionary if key is already present — spec.md's "soft failure"
// duplicate-insert case.
func (d *Dict) Add(key, value any) error {
	d.maybeRehash()
	d.ExpandIfNeeded()

	if d.findEntry(key) != nil {
		return ErrKeyExists
	}

	tbl := &d.t0
	if d.IsRehashing() {
		tbl = &d.t1
	}

	idx := uint64(d.policy.Hash(key)) & tbl.mask
	e := &entry{key: d.dupKey(key), val: d.dupVal(value), next: tbl.buckets[idx]}
	tbl.buckets[idx] = e
	tbl.used++

	return nil
}

// Replace inserts key with value, overwriting any existing value. It
// returns true if this replaced an existing entry, false if it was a
// fresh insert. On replace, the new value is installed before the old
// value is released via the policy's destructor, matching spec.md's
// ordering requirement for reference-counted values where new == old.
func (d *Dict) Replace(key, value any) bool {
	if err := d.Add(key, value); err == nil {
		return false
	}

	e := d.findEntry(key)

	oldVal := e.val
	e.val = d.dupVal(value)

	if d.policy.ValDestructor != nil {
		d.policy.ValDestructor(d.privateData, oldVal)
	}

	return true
}

// Delete removes key, releasing its key/value via the policy's
// destructors if set. It reports whether key was present.
func (d *Dict) Delete(key any) bool {
	return d.delete(key, true)
}

// DeleteNoFree removes key without invoking the policy's destructors,
// letting the caller take over ownership of the removed key/value.
func (d *Dict) DeleteNoFree(key any) bool {
	return d.delete(key, false)
}

func (d *Dict) delete(key any, runDestructors bool) bool {
	if d.t0.size == 0 {
		return false
	}

	d.maybeRehash()

	h := uint64(d.policy.Hash(key))

	if d.deleteFrom(&d.t0, h, key, runDestructors) {
		return true
	}

	if d.IsRehashing() {
		return d.deleteFrom(&d.t1, h, key, runDestructors)
	}

	return false
}

func (d *Dict) deleteFrom(t *table, h uint64, key any, runDestructors bool) bool {
	idx := h & t.mask

	var prev *entry

	for e := t.buckets[idx]; e != nil; e = e.next {
		if !d.policy.KeyEqual(d.privateData, key, e.key) {
			prev = e
			continue
		}

		if prev == nil {
			t.buckets[idx] = e.next
		} else {
			prev.next = e.next
		}

		if runDestructors {
			if d.policy.KeyDestructor != nil {
				d.policy.KeyDestructor(d.privateData, e.key)
			}

			if d.policy.ValDestructor != nil {
				d.policy.ValDestructor(d.privateData, e.val)
			}
		}

		t.used--

		return true
	}

	return false
}

// maybeRehash performs a single opportunistic rehash bucket migration, the
// way spec.md says every non-iterating lookup/insert/delete should, unless
// a safe iterator is currently outstanding.
func (d *Dict) maybeRehash() {
	if d.iterators == 0 {
		d.rehashStep(1)
	}
}
