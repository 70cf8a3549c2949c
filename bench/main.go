package main

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/loov/hrtime"
	"github.com/philpearl/aeshash"
	"github.com/philpearl/stringbank"

	"github.com/nametab/nametab"
)

const count = 1e6

func main() {
	symbols := make([]string, count)
	for i := range symbols {
		symbols[i] = "joint_" + strconv.Itoa(i)
	}

	run("nametab", symbols, func() func(string) {
		t := nametab.New()
		return func(s string) {
			if _, err := t.FindOrAdd(s); err != nil {
				panic(err)
			}
		}
	})

	run("naive", symbols, func() func(string) {
		n := nametab.NewNaive(0)
		return func(s string) {
			n.Intern(s)
		}
	})

	run("stringbank", symbols, func() func(string) {
		// Case-sensitive interner over stringbank, keyed by aeshash. Not a
		// like-for-like comparison (no case folding, no dedup guarantee on
		// hash collision) - it marks the floor we're aiming at.
		var sb stringbank.Stringbank
		seen := make(map[uint32]int)
		return func(s string) {
			h := aeshash.Hash(s)
			if _, ok := seen[h]; !ok {
				seen[h] = sb.Save(s)
			}
		}
	})
}

func run(name string, symbols []string, setup func() func(string)) {
	intern := setup()
	runtime.GC()

	b := hrtime.NewBenchmarkTSC(count)
	for i := 0; b.Next(); i++ {
		if i >= count {
			i = 0
		}
		// Twice per lap: one miss-and-insert, one hit.
		intern(symbols[i])
		intern(symbols[i])
	}

	opts := hrtime.HistogramOptions{
		BinCount:        20,
		NiceRange:       true,
		ClampMaximum:    0,
		ClampPercentile: 0.999999,
	}
	fmt.Printf("=== %s ===\n", name)
	fmt.Println(hrtime.NewDurationHistogram(b.Laps(), &opts))
}
