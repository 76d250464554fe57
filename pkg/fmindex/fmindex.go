// Package fmindex implements a run-length compressed FM-index: a C-table,
// rank-checkpointed BWT, and sampled suffix array supporting backward
// search, locate, and count in time independent of genome length per step.
package fmindex

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/pkg/errors"

	"github.com/LucasOJ/read-mapping/pkg/alphabet"
	"github.com/LucasOJ/read-mapping/pkg/rlebwt"
	"github.com/LucasOJ/read-mapping/pkg/suffixarray"
)

// DefaultRankPeriod and DefaultSamplePeriod are the sampling periods R
// (rank checkpoints) and K (sampled suffix array) used unless a caller
// chooses otherwise at construction time.
const (
	DefaultRankPeriod   = 64
	DefaultSamplePeriod = 32
)

// Range is a half-open SA index range [Low, High) produced by backward
// search. An empty range has Low == High.
type Range struct {
	Low, High int
}

// Empty reports whether the range contains no SA indices.
func (r Range) Empty() bool {
	return r.High <= r.Low
}

// Count returns the number of SA indices in the range.
func (r Range) Count() int {
	if r.Empty() {
		return 0
	}
	return r.High - r.Low
}

// FmIndex is a compressed self-index over a single sentinel-terminated
// sequence. It does not retain the original text; text positions are
// recovered through LF-mapping and the sampled suffix array.
type FmIndex struct {
	n int // length including the sentinel

	c    [alphabet.NumSymbols]uint64
	bwt  *rlebwt.RleBwt
	rank int // R
	k    int // K

	sampled *roaring.Bitmap
	samples []uint64
}

// Build constructs an FM-index over symbols (excluding the sentinel, which
// is appended internally). Fails with align.ErrEmptyGenome if symbols is
// empty.
func Build(symbols []alphabet.Symbol, rankPeriod, samplePeriod int) (*FmIndex, error) {
	if rankPeriod < 1 {
		rankPeriod = DefaultRankPeriod
	}
	if samplePeriod < 1 {
		samplePeriod = DefaultSamplePeriod
	}

	sa, err := suffixarray.BuildOverSymbols(symbols)
	if err != nil {
		return nil, errors.Wrap(err, "fmindex: building suffix array")
	}
	n := len(sa) // includes sentinel

	extended := make([]alphabet.Symbol, n)
	copy(extended, symbols)
	extended[n-1] = alphabet.Sentinel

	bwtSymbols := make([]alphabet.Symbol, n)
	for i, saVal := range sa {
		if saVal == 0 {
			bwtSymbols[i] = extended[n-1]
		} else {
			bwtSymbols[i] = extended[saVal-1]
		}
	}

	rb := rlebwt.Build(bwtSymbols, rankPeriod)

	idx := &FmIndex{
		n:    n,
		bwt:  rb,
		rank: rankPeriod,
		k:    samplePeriod,
	}
	idx.buildCTable()
	idx.buildSampledSA(sa)
	return idx, nil
}

func (idx *FmIndex) buildCTable() {
	var totals [alphabet.NumSymbols]uint64
	for sym := alphabet.Symbol(0); sym < alphabet.NumSymbols; sym++ {
		totals[sym] = idx.bwt.Total(sym)
	}
	order := []alphabet.Symbol{alphabet.Sentinel, alphabet.A, alphabet.C, alphabet.G, alphabet.T}
	var running uint64
	for _, sym := range order {
		idx.c[sym] = running
		running += totals[sym]
	}
}

func (idx *FmIndex) buildSampledSA(sa []int) {
	idx.sampled = roaring.New()
	var samples []uint64
	for i, saVal := range sa {
		if saVal%idx.k == 0 {
			idx.sampled.Add(uint32(i))
			samples = append(samples, uint64(saVal))
		}
	}
	idx.samples = samples
}

// N returns the length of the indexed sequence including the sentinel.
func (idx *FmIndex) N() int {
	return idx.n
}

// lf maps BWT row i to the row whose suffix is one character shorter
// (the backward LF step: lf(i) = C[BWT[i]] + rank(BWT[i], i)).
func (idx *FmIndex) lf(i int) int {
	sym := idx.bwt.At(i)
	return int(idx.c[sym]) + int(idx.bwt.Rank(sym, i))
}

// BackwardSearch narrows the SA range by consuming pattern right to left.
// An empty pattern returns the full range. A pattern containing a symbol
// other than A/C/G/T returns an empty range.
func (idx *FmIndex) BackwardSearch(pattern []alphabet.Symbol) Range {
	rng := Range{Low: 0, High: idx.n}
	for i := len(pattern) - 1; i >= 0; i-- {
		sym := pattern[i]
		if sym == alphabet.Sentinel {
			return Range{}
		}
		rng.Low = int(idx.c[sym]) + int(idx.bwt.Rank(sym, rng.Low))
		rng.High = int(idx.c[sym]) + int(idx.bwt.Rank(sym, rng.High))
		if rng.Empty() {
			return Range{}
		}
	}
	return rng
}

// Count returns the number of occurrences of pattern in the indexed text.
func (idx *FmIndex) Count(pattern []alphabet.Symbol) int {
	return idx.BackwardSearch(pattern).Count()
}

// RecoverText reconstructs the original sentinel-terminated sequence by
// walking LF-steps backward from the row whose suffix is the sentinel
// alone, grounded on vtphan/fmi's r_substr technique for deriving text
// without ever storing it. The sentinel occupies the final element.
func (idx *FmIndex) RecoverText() []alphabet.Symbol {
	out := make([]alphabet.Symbol, idx.n)
	out[idx.n-1] = alphabet.Sentinel
	row := 0
	for i := idx.n - 2; i >= 0; i-- {
		out[i] = idx.bwt.At(row)
		row = idx.lf(row)
	}
	return out
}

// Locate recovers the suffix-array value at BWT row i by walking LF steps
// until a sampled row is reached. Terminates within K steps.
func (idx *FmIndex) Locate(i int) uint64 {
	steps := uint64(0)
	for !idx.sampled.Contains(uint32(i)) {
		i = idx.lf(i)
		steps++
	}
	sampleIdx := idx.sampled.Rank(uint32(i)) - 1
	return (idx.samples[sampleIdx] + steps) % uint64(idx.n)
}
