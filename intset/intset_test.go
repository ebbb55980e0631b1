package intset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsprim/kvstructs/intset"
)

func Test_IntSet_Add_Starts_At_Enc16_And_Upgrades_As_Needed(t *testing.T) {
	t.Parallel()

	s := intset.New()
	require.Equal(t, intset.Enc16, s.Encoding())

	require.True(t, s.Add(1))
	require.True(t, s.Add(2))
	require.Equal(t, intset.Enc16, s.Encoding(), "small values stay at the narrowest width")

	require.True(t, s.Add(70000))
	require.Equal(t, intset.Enc32, s.Encoding(), "a value outside int16 range upgrades to Enc32")

	require.True(t, s.Add(int64(1)<<40))
	require.Equal(t, intset.Enc64, s.Encoding(), "a value outside int32 range upgrades to Enc64")

	require.Equal(t, []int64{1, 2, 70000, int64(1) << 40}, s.Slice())
}

func Test_IntSet_Add_Rejects_Duplicates(t *testing.T) {
	t.Parallel()

	s := intset.New()
	require.True(t, s.Add(5))
	require.False(t, s.Add(5), "adding an existing value reports false and leaves the set unchanged")
	require.Equal(t, 1, s.Len())
}

func Test_IntSet_Upgrade_Places_Value_At_Correct_End(t *testing.T) {
	t.Parallel()

	t.Run("NegativeValueUpgradesAndPrepends", func(t *testing.T) {
		t.Parallel()

		s := intset.New()
		s.Add(1)
		s.Add(2)
		s.Add(-40000)

		require.Equal(t, intset.Enc32, s.Encoding())
		require.Equal(t, []int64{-40000, 1, 2}, s.Slice())
	})

	t.Run("PositiveValueUpgradesAndAppends", func(t *testing.T) {
		t.Parallel()

		s := intset.New()
		s.Add(-1)
		s.Add(-2)
		s.Add(40000)

		require.Equal(t, intset.Enc32, s.Encoding())
		require.Equal(t, []int64{-2, -1, 40000}, s.Slice())
	})
}

func Test_IntSet_Contains_And_Remove(t *testing.T) {
	t.Parallel()

	s := intset.FromSlice([]int64{5, 1, 3, 70000})

	require.True(t, s.Contains(1))
	require.True(t, s.Contains(70000))
	require.False(t, s.Contains(2))

	require.True(t, s.Remove(3))
	require.False(t, s.Contains(3))
	require.False(t, s.Remove(3), "removing an absent value reports false")

	require.Equal(t, intset.Enc32, s.Encoding(), "removal never narrows the encoding")
}

func Test_IntSet_FromSlice_Dedupes_And_Sorts(t *testing.T) {
	t.Parallel()

	s := intset.FromSlice([]int64{3, 1, 3, 2, 1})

	require.Equal(t, []int64{1, 2, 3}, s.Slice())
	require.Equal(t, 3, s.Len())
}

func Test_IntSet_Get_Reports_Ok_False_Out_Of_Range(t *testing.T) {
	t.Parallel()

	s := intset.FromSlice([]int64{1, 2, 3})

	v, ok := s.Get(1)
	require.True(t, ok)
	require.Equal(t, int64(2), v)

	_, ok = s.Get(3)
	require.False(t, ok)

	_, ok = s.Get(-1)
	require.False(t, ok)
}

func Test_IntSet_Random_Panics_On_Empty_Set(t *testing.T) {
	t.Parallel()

	s := intset.New()
	require.Panics(t, func() { s.Random() })
}

func Test_IntSet_Random_Returns_Member(t *testing.T) {
	t.Parallel()

	s := intset.FromSlice([]int64{10, 20, 30})

	for range 50 {
		require.True(t, s.Contains(s.Random()))
	}
}
