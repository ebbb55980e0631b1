package dict_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsprim/kvstructs/dict"
)

func Test_Scan_Full_Pass_Visits_Every_Entry_At_Least_Once(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	const n = 250

	for i := range n {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	seen := map[string]int{}

	cursor := uint64(0)
	for {
		cursor = d.Scan(cursor, func(key, val any) {
			seen[key.(string)]++
		})

		if cursor == 0 {
			break
		}
	}

	for i := range n {
		require.GreaterOrEqual(t, seen[keyFor(i)], 1, "key %d must be visited at least once", i)
	}
}

func Test_Scan_Tolerates_Growth_Mid_Scan(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	for i := range 50 {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	seen := map[string]int{}
	cursor := uint64(0)
	steps := 0

	for {
		cursor = d.Scan(cursor, func(key, val any) {
			seen[key.(string)]++
		})

		steps++

		if steps == 3 {
			for i := 50; i < 400; i++ {
				require.NoError(t, d.Add(keyFor(i), i))
			}
		}

		if cursor == 0 || steps > 10000 {
			break
		}
	}

	require.NotEmpty(t, seen)
}

func Fuzz_Scan_Visits_Static_Set_Without_Infinite_Loop(f *testing.F) {
	f.Add(uint8(10))
	f.Add(uint8(0))
	f.Add(uint8(200))

	f.Fuzz(func(t *testing.T, n uint8) {
		d := dict.New(dict.StringPolicy(0), nil)

		for i := range int(n) {
			_ = d.Add(keyFor(i), i)
		}

		seen := map[string]bool{}
		cursor := uint64(0)
		steps := 0

		for {
			cursor = d.Scan(cursor, func(key, val any) {
				seen[key.(string)] = true
			})

			steps++
			if cursor == 0 {
				break
			}

			if steps > 100000 {
				t.Fatalf("scan did not terminate after %d steps for n=%d", steps, n)
			}
		}

		if len(seen) != int(n) {
			t.Fatalf("visited %d distinct keys, want %d", len(seen), n)
		}
	})
}
