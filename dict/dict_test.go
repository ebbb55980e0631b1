package dict_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsprim/kvstructs/dict"
)

func Test_Dict_Add_Find_Delete_Roundtrip(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	require.NoError(t, d.Add("a", 1))
	require.NoError(t, d.Add("b", 2))
	require.ErrorIs(t, d.Add("a", 99), dict.ErrKeyExists)

	v, ok := d.Find("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	require.True(t, d.Delete("a"))
	require.False(t, d.Delete("a"), "deleting an absent key reports false")

	_, ok = d.Find("a")
	require.False(t, ok)
	require.Equal(t, 1, d.Len())
}

func Test_Dict_Replace_Overwrites_Existing_Value(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	require.False(t, d.Replace("k", 1), "replace on a fresh key is an insert, not a replace")

	v, _ := d.Find("k")
	require.Equal(t, 1, v)

	require.True(t, d.Replace("k", 2))

	v, _ = d.Find("k")
	require.Equal(t, 2, v)
	require.Equal(t, 1, d.Len())
}

func Test_Dict_CaseInsensitiveStringPolicy_Folds_ASCII_Case(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.CaseInsensitiveStringPolicy(), nil)

	require.NoError(t, d.Add("Key", 1))
	require.ErrorIs(t, d.Add("KEY", 2), dict.ErrKeyExists)

	v, ok := d.Find("key")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func Test_Dict_Grows_And_Rehashes_As_Entries_Are_Added(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	const n = 500

	for i := range n {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	require.Equal(t, n, d.Len())

	for i := range n {
		v, ok := d.Find(keyFor(i))
		require.True(t, ok, "key %d should still be found after growth/rehash", i)
		require.Equal(t, i, v)
	}
}

func Test_Dict_DeleteNoFree_Skips_Destructors(t *testing.T) {
	t.Parallel()

	var destroyed []string

	policy := dict.StringPolicy(0)
	policy.ValDestructor = func(_ any, val any) {
		destroyed = append(destroyed, val.(string))
	}

	d := dict.New(policy, nil)
	require.NoError(t, d.Add("a", "va"))
	require.NoError(t, d.Add("b", "vb"))

	require.True(t, d.DeleteNoFree("a"))
	require.Empty(t, destroyed, "DeleteNoFree must not invoke the value destructor")

	require.True(t, d.Delete("b"))
	require.Equal(t, []string{"vb"}, destroyed)
}

func Test_Dict_Expand_Rejects_Size_Below_Entry_Count(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)
	require.NoError(t, d.Add("a", 1))
	require.NoError(t, d.Add("b", 2))
	require.NoError(t, d.Add("c", 3))

	require.ErrorIs(t, d.Expand(1), dict.ErrSizeTooSmall)
}

func Test_Dict_Expand_While_Rehashing_Reports_Error(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	for i := range 100 {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	require.True(t, d.IsRehashing(), "bulk insert should have triggered a resize still mid-rehash")
	require.ErrorIs(t, d.Expand(1024), dict.ErrAlreadyRehashing)
}

func Test_Dict_GetRandomKey_On_Empty_Dict(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	_, _, ok := d.GetRandomKey()
	require.False(t, ok)
}

func Test_Dict_GetRandomKey_Returns_Member(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)
	for i := range 50 {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	for range 25 {
		k, v, ok := d.GetRandomKey()
		require.True(t, ok)

		found, ok := d.Find(k)
		require.True(t, ok)
		require.Equal(t, v, found)
	}
}

func Test_Dict_GetSomeKeys_Never_Exceeds_Count_Or_Dict_Size(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)
	for i := range 20 {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	entries := d.GetSomeKeys(8)
	require.LessOrEqual(t, len(entries), 8)

	seen := map[string]bool{}
	for _, e := range entries {
		seen[e.Key.(string)] = true
	}
	require.Len(t, seen, len(entries), "GetSomeKeys must not return duplicate keys")

	require.LessOrEqual(t, len(d.GetSomeKeys(1000)), 20)
}

func keyFor(i int) string {
	return "key-" + strconv.Itoa(i)
}
