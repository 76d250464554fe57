// Package rlebwt stores a Burrows-Wheeler transform as a run-length encoded
// sequence of symbols, with periodic rank checkpoints enabling rank queries
// in time bounded by the sampling period rather than by BWT length.
package rlebwt

import (
	"sort"

	"github.com/LucasOJ/read-mapping/pkg/alphabet"
)

// Run is a maximal run of one repeated symbol in the BWT.
type Run struct {
	Symbol alphabet.Symbol
	Length uint32
}

// RleBwt is the run-length encoded BWT plus rank checkpoints.
//
// Invariant: the sum of all Runs[i].Length equals N.
type RleBwt struct {
	Runs []Run
	N    int

	// R is the checkpoint sampling period: every R-th run boundary carries
	// a precomputed per-symbol occurrence count.
	R int

	// runOffsets[i] is the BWT position at which Runs[i] starts;
	// runOffsets[len(Runs)] == N.
	runOffsets []int

	// checkpoints[sym][k] is the count of sym in BWT[0 : runOffsets[k*R]).
	checkpoints [alphabet.NumSymbols][]uint64
}

// Build run-length encodes bwt and constructs checkpoints sampled every R
// run boundaries. R must be >= 1.
func Build(bwt []alphabet.Symbol, R int) *RleBwt {
	if R < 1 {
		R = 1
	}
	rb := &RleBwt{N: len(bwt), R: R}

	for i := 0; i < len(bwt); {
		j := i + 1
		for j < len(bwt) && bwt[j] == bwt[i] {
			j++
		}
		rb.Runs = append(rb.Runs, Run{Symbol: bwt[i], Length: uint32(j - i)})
		i = j
	}

	rb.runOffsets = make([]int, len(rb.Runs)+1)
	for i, run := range rb.Runs {
		rb.runOffsets[i+1] = rb.runOffsets[i] + int(run.Length)
	}

	numCheckpoints := len(rb.Runs)/R + 1
	for sym := 0; sym < alphabet.NumSymbols; sym++ {
		rb.checkpoints[sym] = make([]uint64, numCheckpoints)
	}
	var running [alphabet.NumSymbols]uint64
	cpIdx := 0
	for r := 0; r <= len(rb.Runs); r++ {
		if r%R == 0 {
			for sym := 0; sym < alphabet.NumSymbols; sym++ {
				rb.checkpoints[sym][cpIdx] = running[sym]
			}
			cpIdx++
		}
		if r < len(rb.Runs) {
			running[rb.Runs[r].Symbol] += uint64(rb.Runs[r].Length)
		}
	}
	return rb
}

// At returns the symbol at BWT position i.
func (rb *RleBwt) At(i int) alphabet.Symbol {
	r := rb.runIndexContaining(i)
	return rb.Runs[r].Symbol
}

// runIndexContaining returns the index of the run covering BWT position i.
func (rb *RleBwt) runIndexContaining(i int) int {
	// Largest r such that runOffsets[r] <= i.
	return sort.Search(len(rb.Runs), func(r int) bool {
		return rb.runOffsets[r+1] > i
	})
}

// Rank returns the number of occurrences of sym in BWT[0:i).
func (rb *RleBwt) Rank(sym alphabet.Symbol, i int) uint64 {
	if i <= 0 {
		return 0
	}
	if i >= rb.N {
		return rb.Total(sym)
	}

	r := rb.runIndexContaining(i)
	cp := r / rb.R
	count := rb.checkpoints[sym][cp]

	start := cp * rb.R
	for run := start; run < r; run++ {
		if rb.Runs[run].Symbol == sym {
			count += uint64(rb.Runs[run].Length)
		}
	}

	// Contribution of the partial run containing i.
	partial := i - rb.runOffsets[r]
	if rb.Runs[r].Symbol == sym {
		count += uint64(partial)
	}
	return count
}

// Total returns the number of occurrences of sym across the whole BWT.
func (rb *RleBwt) Total(sym alphabet.Symbol) uint64 {
	var total uint64
	for _, run := range rb.Runs {
		if run.Symbol == sym {
			total += uint64(run.Length)
		}
	}
	return total
}
