// Command primitives-bench reports the amortized per-call cost of the
// core intset, sds, and dict operations, the in-process analogue of the
// teacher's tk-bench (which times an external binary via hyperfine; here
// there is no subprocess to shell out to, so the measurement happens
// directly against the library).
package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/dsprim/kvstructs/dict"
	"github.com/dsprim/kvstructs/internal/bench"
	"github.com/dsprim/kvstructs/intset"
	"github.com/dsprim/kvstructs/sds"
)

func main() {
	runs := flag.Int("runs", 2000, "number of timed runs per benchmark")
	flag.Parse()

	results := []bench.Result{
		bench.Run("intset.Add/sequential", *runs, benchIntSetAddSequential),
		bench.Run("sds.AppendBytes/amortized", *runs, benchSDSAppend),
		bench.Run("dict.Add/growing", *runs, benchDictAddGrowing),
	}

	for _, r := range results {
		fmt.Printf("%-28s runs=%-6d mean=%-12s min=%-12s max=%s\n",
			r.Label, r.Runs, r.Mean, r.Min, r.Max)
	}
}

func benchIntSetAddSequential() {
	s := intset.New()
	for i := 0; i < 1000; i++ {
		s.Add(int64(i))
	}
}

func benchSDSAppend() {
	s := sds.Empty()
	for i := 0; i < 1000; i++ {
		s.AppendBytes([]byte("x"))
	}
}

func benchDictAddGrowing() {
	d := dict.New(dict.StringPolicy(0), nil)
	for i := 0; i < 1000; i++ {
		_ = d.Add(strconv.Itoa(i), i)
	}
}
