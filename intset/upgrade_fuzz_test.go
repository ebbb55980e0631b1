package intset_test

import (
	"sort"
	"testing"

	"github.com/dsprim/kvstructs/intset"
)

// Fuzz_IntSet_MatchesReferenceSet exercises the adaptive-encoding upgrade
// path against a plain Go map used as an oracle: whatever encoding the
// set ends up at, its sorted contents must equal the oracle's, and the
// encoding must never narrow.
func Fuzz_IntSet_MatchesReferenceSet(f *testing.F) {
	f.Add(int64(0), int64(1), int64(-1))
	f.Add(int64(70000), int64(-70000), int64(1)<<40)
	f.Add(int64(0), int64(0), int64(0))

	f.Fuzz(func(t *testing.T, a, b, c int64) {
		s := intset.New()
		oracle := map[int64]bool{}
		widestSeen := intset.Enc16

		for _, v := range []int64{a, b, c, a, b ^ c} {
			s.Add(v)
			oracle[v] = true

			if w := widthFor(v); w > widestSeen {
				widestSeen = w
			}

			if s.Encoding() < widestSeen {
				t.Fatalf("encoding narrowed: have %d, saw width %d for value %d", s.Encoding(), widestSeen, v)
			}
		}

		want := make([]int64, 0, len(oracle))
		for v := range oracle {
			want = append(want, v)
		}

		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

		got := s.Slice()

		if len(got) != len(want) {
			t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
		}

		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("contents mismatch at %d: got %d, want %d", i, got[i], want[i])
			}
		}

		for i := 1; i < len(got); i++ {
			if got[i-1] >= got[i] {
				t.Fatalf("not strictly sorted at %d: %d >= %d", i, got[i-1], got[i])
			}
		}
	})
}

func widthFor(v int64) intset.Encoding {
	switch {
	case v >= -32768 && v <= 32767:
		return intset.Enc16
	case v >= -2147483648 && v <= 2147483647:
		return intset.Enc32
	default:
		return intset.Enc64
	}
}
