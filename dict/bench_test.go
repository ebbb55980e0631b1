package dict_test

import (
	"strconv"
	"testing"

	"github.com/dsprim/kvstructs/dict"
)

func BenchmarkDict_Add_Growing(b *testing.B) {
	for b.Loop() {
		d := dict.New(dict.StringPolicy(0), nil)
		for i := range 1000 {
			_ = d.Add(strconv.Itoa(i), i)
		}
	}
}

func BenchmarkDict_Find_Hit(b *testing.B) {
	d := dict.New(dict.StringPolicy(0), nil)
	for i := range 10000 {
		_ = d.Add(strconv.Itoa(i), i)
	}

	b.ResetTimer()

	for b.Loop() {
		d.Find("5000")
	}
}
