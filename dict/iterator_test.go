package dict_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsprim/kvstructs/dict"
)

func Test_Iterator_Visits_Every_Entry_Exactly_Once(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	const n = 300

	for i := range n {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	it := d.Iterator()

	seen := map[string]bool{}

	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}

		require.False(t, seen[k.(string)], "duplicate visit of %q", k)
		seen[k.(string)] = true
		require.Equal(t, keyFor(v.(int)), k)
	}

	it.Release()

	require.Len(t, seen, n)
}

func Test_Unsafe_Iterator_Panics_On_Mutation(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)
	require.NoError(t, d.Add("a", 1))
	require.NoError(t, d.Add("b", 2))

	it := d.Iterator()
	_, _, ok := it.Next()
	require.True(t, ok)

	require.NoError(t, d.Add("c", 3))

	require.Panics(t, func() { it.Release() }, "mutating the dict mid-iteration must be caught by the fingerprint check")
}

func Test_Safe_Iterator_Tolerates_Deleting_The_Current_Entry(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)
	require.NoError(t, d.Add("a", 1))
	require.NoError(t, d.Add("b", 2))
	require.NoError(t, d.Add("c", 3))

	it := d.SafeIterator()

	var visited []string

	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}

		visited = append(visited, k.(string))
		d.Delete(k.(string))
	}

	it.Release()

	require.Len(t, visited, 3)
	require.Equal(t, 0, d.Len())
}

func Test_Safe_Iterator_Visits_Every_Entry_While_Dict_Is_Mid_Rehash(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	for i := range 300 {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	require.True(t, d.IsRehashing())

	it := d.SafeIterator()

	count := 0
	for {
		_, _, ok := it.Next()
		if !ok {
			break
		}

		count++
	}

	it.Release()

	require.Equal(t, 300, count)
}
