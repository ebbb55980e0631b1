package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dsprim/kvstructs/dict"
	"github.com/dsprim/kvstructs/intset"
	"github.com/dsprim/kvstructs/pkg/fs"
	"github.com/dsprim/kvstructs/sds"
)

// defaultFS backs every Save/Load call with the real filesystem. Tests
// inject an [fs.Chaos] by calling [saveTo]/[loadFrom] directly instead.
var defaultFS fs.FS = fs.NewReal()

// snapshotFile is the on-disk and --format=yaml representation of a Store.
// It is intentionally a plain, portable shape (sorted slices and string
// maps) rather than a dump of the primitives' internal encodings, so a
// snapshot survives across the adaptive IntSet width or Dict table size
// changing between saves.
type snapshotFile struct {
	IntSets map[string][]int64           `json:"intsets" yaml:"intsets"`
	SDS     map[string]string            `json:"sds"     yaml:"sds"`
	Dicts   map[string]map[string]string `json:"dicts"   yaml:"dicts"`
}

const snapshotFileName = "store.json"

func toSnapshot(s *Store) snapshotFile {
	out := snapshotFile{
		IntSets: map[string][]int64{},
		SDS:     map[string]string{},
		Dicts:   map[string]map[string]string{},
	}

	for name, set := range s.intsets {
		out.IntSets[name] = set.Slice()
	}

	for name, str := range s.sdses {
		out.SDS[name] = str.String()
	}

	for name, d := range s.dicts {
		entries := map[string]string{}

		it := d.Iterator()
		for {
			k, v, ok := it.Next()
			if !ok {
				break
			}

			entries[k.(string)] = fmt.Sprint(v)
		}

		it.Release()

		out.Dicts[name] = entries
	}

	return out
}

func fromSnapshot(snap snapshotFile) *Store {
	s := NewStore()

	for name, values := range snap.IntSets {
		s.intsets[name] = intset.FromSlice(values)
	}

	for name, str := range snap.SDS {
		s.sdses[name] = sds.New([]byte(str))
	}

	for name, entries := range snap.Dicts {
		d := dict.New(dict.StringPolicy(hashSeed), nil)

		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			_ = d.Add(k, entries[k])
		}

		s.dicts[name] = d
	}

	return s
}

// Save writes the store to dir/store.json on the real filesystem.
func Save(s *Store, dir string) error {
	return saveTo(defaultFS, s, dir)
}

// saveTo writes the store to fsys, using [fs.AtomicWriter] for
// write-to-temp, fsync, rename, fsync-parent-dir durability,
// fault-injectable in tests via [fs.Chaos].
func saveTo(fsys fs.FS, s *Store, dir string) error {
	if err := fsys.MkdirAll(dir, 0o755); err != nil { //nolint:gosec
		return fmt.Errorf("creating snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(toSnapshot(s), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	path := filepath.Join(dir, snapshotFileName)
	writer := fs.NewAtomicWriter(fsys)

	if err := writer.WriteWithDefaults(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// Load reads dir/store.json from the real filesystem. A missing file
// yields an empty Store rather than an error, matching spec.md's
// treatment of a fresh, never-saved instance.
func Load(dir string) (*Store, error) {
	return loadFrom(defaultFS, dir)
}

func loadFrom(fsys fs.FS, dir string) (*Store, error) {
	path := filepath.Join(dir, snapshotFileName)

	exists, err := fsys.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("checking snapshot: %w", err)
	}

	if !exists {
		return NewStore(), nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap snapshotFile

	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	return fromSnapshot(snap), nil
}

// printJSON writes snap to stdout as indented JSON, the default `dump`
// format.
func printJSON(snap snapshotFile) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	fmt.Println(string(data))

	return nil
}

// DumpYAML renders the store in the --format=yaml shape `primitives dump`
// produces, an alternative to the JSON snapshot format meant for humans
// rather than round-tripping.
func DumpYAML(s *Store) (string, error) {
	data, err := yaml.Marshal(toSnapshot(s))
	if err != nil {
		return "", fmt.Errorf("marshaling yaml: %w", err)
	}

	return string(data), nil
}
