package main

import (
	"fmt"
	"sort"

	"github.com/dsprim/kvstructs/dict"
	"github.com/dsprim/kvstructs/intset"
	"github.com/dsprim/kvstructs/sds"
)

// Store is the in-memory namespace cmd/primitives operates on: any number
// of named instances of each primitive, addressed by a caller-chosen
// name. It has no concurrency protection of its own, matching every
// primitive's single-owner contract; the REPL and one-shot commands are
// the sole owners of a given Store for the lifetime of a process.
type Store struct {
	intsets map[string]*intset.IntSet
	sdses   map[string]*sds.SDS
	dicts   map[string]*dict.Dict
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		intsets: map[string]*intset.IntSet{},
		sdses:   map[string]*sds.SDS{},
		dicts:   map[string]*dict.Dict{},
	}
}

var (
	errNotFound = fmt.Errorf("not found")
)

func (s *Store) intSet(name string, create bool) (*intset.IntSet, error) {
	if v, ok := s.intsets[name]; ok {
		return v, nil
	}

	if !create {
		return nil, fmt.Errorf("intset %q: %w", name, errNotFound)
	}

	v := intset.New()
	s.intsets[name] = v

	return v, nil
}

func (s *Store) sdsVal(name string, create bool) (*sds.SDS, error) {
	if v, ok := s.sdses[name]; ok {
		return v, nil
	}

	if !create {
		return nil, fmt.Errorf("sds %q: %w", name, errNotFound)
	}

	v := sds.Empty()
	s.sdses[name] = v

	return v, nil
}

func (s *Store) dictVal(name string, create bool) (*dict.Dict, error) {
	if v, ok := s.dicts[name]; ok {
		return v, nil
	}

	if !create {
		return nil, fmt.Errorf("dict %q: %w", name, errNotFound)
	}

	v := dict.New(dict.StringPolicy(hashSeed), nil)
	s.dicts[name] = v

	return v, nil
}

// names returns every name across all three namespaces, sorted, for the
// REPL's listing.
func (s *Store) names() []string {
	out := make([]string, 0, len(s.intsets)+len(s.sdses)+len(s.dicts))

	for n := range s.intsets {
		out = append(out, "intset/"+n)
	}

	for n := range s.sdses {
		out = append(out, "sds/"+n)
	}

	for n := range s.dicts {
		out = append(out, "dict/"+n)
	}

	sort.Strings(out)

	return out
}

// hashSeed is set from config at startup; it is package-level because the
// Store's dict constructor has no other way to receive it without
// threading a parameter through every call site that lazily creates a
// dict.
var hashSeed uint32
