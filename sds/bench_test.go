package sds_test

import (
	"testing"

	"github.com/dsprim/kvstructs/sds"
)

func BenchmarkSDS_AppendBytes_Amortized(b *testing.B) {
	for b.Loop() {
		s := sds.Empty()
		for range 1000 {
			s.AppendBytes([]byte("x"))
		}
	}
}

func BenchmarkSDS_CatFmt(b *testing.B) {
	for b.Loop() {
		s := sds.Empty()
		s.CatFmt("%s=%i", "k", 42)
	}
}
