package dict_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsprim/kvstructs/dict"
)

func Test_Dict_RehashStep_Migrates_Buckets_Until_Complete(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	for i := range 200 {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	require.True(t, d.IsRehashing())

	for d.IsRehashing() {
		d.RehashStep(4)
	}

	for i := range 200 {
		v, ok := d.Find(keyFor(i))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func Test_Dict_RehashMilliseconds_Completes_Or_Returns_Early(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)

	for i := range 1000 {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	migrated := d.RehashMilliseconds(50)
	require.GreaterOrEqual(t, migrated, 0)

	for d.IsRehashing() {
		d.RehashStep(50)
	}

	require.Equal(t, 1000, d.Len())
}

func Test_Dict_RehashStep_NoOp_When_Not_Rehashing(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)
	require.NoError(t, d.Add("a", 1))
	require.False(t, d.IsRehashing())

	d.RehashStep(10)
	require.Equal(t, 1, d.Len())
}

func Test_Dict_SetResizeEnabled_Disabled_Defers_Opportunistic_Growth(t *testing.T) {
	t.Parallel()

	d := dict.New(dict.StringPolicy(0), nil)
	d.SetResizeEnabled(false)

	for i := range 4 {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	require.False(t, d.IsRehashing(), "at load factor 1 with resizing disabled, no resize should start yet")

	for i := 4; i < 25; i++ {
		require.NoError(t, d.Add(keyFor(i), i))
	}

	require.True(t, d.IsRehashing(), "once the forced-resize ratio is exceeded, a resize must start regardless of the flag")
}
