package dict

import "errors"

// ErrKeyExists is returned by Add when the key is already present — a
// soft, return-code-style failure per spec.md §7.
var ErrKeyExists = errors.New("dict: key already exists")

// ErrKeyNotFound is the sentinel for an absent key. Dict's own lookup and
// delete methods do not return it; they report absence with a bool.
var ErrKeyNotFound = errors.New("dict: key not found")

// ErrAlreadyRehashing is returned by Expand when a rehash is already in
// progress.
var ErrAlreadyRehashing = errors.New("dict: already rehashing")

// ErrSizeTooSmall is returned by Expand when the requested size cannot
// hold the entries already stored.
var ErrSizeTooSmall = errors.New("dict: new size smaller than used count")
