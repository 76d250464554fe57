// Package readmapping implements seed-and-extend short-read mapping over a
// pair of FM-indexes: one built on the genome, one on its reverse.
package readmapping

import (
	"github.com/pkg/errors"

	"github.com/LucasOJ/read-mapping/pkg/align"
	"github.com/LucasOJ/read-mapping/pkg/alphabet"
	"github.com/LucasOJ/read-mapping/pkg/fmindex"
	"github.com/LucasOJ/read-mapping/pkg/packedseq"
)

// Index owns two FM-indexes built over G$ and reverse(G)$, plus the packed
// forward genome retained for O(1) extension comparisons (an option
// sanctioned as an alternative to a genome-less FM-index walk, provided
// first-hit and full-coverage semantics are preserved).
type Index struct {
	forward *fmindex.FmIndex
	reverse *fmindex.FmIndex
	genome  *packedseq.Sequence
	n       int // genome length, sentinel excluded
}

// MapResult is the outcome of mapping a single read.
type MapResult struct {
	Hit           bool
	Position      int
	MatchedLength int
	// SeedAttempt is the 0-indexed seed window that produced the hit.
	SeedAttempt int
}

// Build constructs a read-mapping index over genome (raw ACGT bytes, no
// sentinel). rankPeriod and samplePeriod are forwarded to both underlying
// FM-indexes; pass 0 for either to use fmindex's defaults. Fails with
// align.ErrEmptyGenome if genome is empty, or align.ErrInvalidAlphabet if
// it contains a non-ACGT byte.
func Build(genome []byte, rankPeriod, samplePeriod int) (*Index, error) {
	symbols, err := alphabet.FromBytes(genome)
	if err != nil {
		return nil, err
	}

	forward, err := fmindex.Build(symbols, rankPeriod, samplePeriod)
	if err != nil {
		return nil, errors.Wrap(err, "readmapping: building forward index")
	}

	reversed := make([]alphabet.Symbol, len(symbols))
	for i, s := range symbols {
		reversed[len(symbols)-1-i] = s
	}
	reverse, err := fmindex.Build(reversed, rankPeriod, samplePeriod)
	if err != nil {
		return nil, errors.Wrap(err, "readmapping: building reverse index")
	}

	packed, err := packedseq.FromSymbols(symbols)
	if err != nil {
		return nil, errors.Wrap(err, "readmapping: packing genome")
	}

	return &Index{forward: forward, reverse: reverse, genome: packed, n: len(genome)}, nil
}

// MapRead maps read (raw ASCII bytes; a seed spanning a non-ACGT byte is
// skipped, and extension treats a non-ACGT byte as the edge of the
// comparable read rather than a lookup failure) against the index, trying
// disjoint seed windows from the 5' end. Fails with align.ErrInvalidArgument
// if seedLen < 1, maxSeeds < 1, or len(read) < seedLen.
func (idx *Index) MapRead(read []byte, seedLen, maxSeeds int) (MapResult, error) {
	if seedLen < 1 || maxSeeds < 1 || len(read) < seedLen {
		return MapResult{}, errors.Wrapf(align.ErrInvalidArgument,
			"seedLen=%d maxSeeds=%d len(read)=%d", seedLen, maxSeeds, len(read))
	}

	numSeeds := len(read) / seedLen
	if maxSeeds < numSeeds {
		numSeeds = maxSeeds
	}

	for k := 0; k < numSeeds; k++ {
		seedStart := k * seedLen
		seedEnd := seedStart + seedLen

		reversedSeed := reverseBytes(read[seedStart:seedEnd])
		seedSymbols, ok := tryBytesToSymbols(reversedSeed)
		if !ok {
			continue
		}

		rng := idx.reverse.BackwardSearch(seedSymbols)
		if rng.Empty() {
			continue
		}

		for saIdx := rng.Low; saIdx < rng.High; saIdx++ {
			pRev := int(idx.reverse.Locate(saIdx))
			p := idx.n - pRev - seedLen
			if p < 0 || p+seedLen > idx.n {
				continue
			}

			backMatched, backHalt := idx.extendBackward(read, seedStart, p)
			if !backHalt.coversRead() {
				continue // stopped on a genuine mismatch or ran out of genome
			}
			forwardMatched, forwardHalt := idx.extendForward(read, seedEnd, p+seedLen)
			if !forwardHalt.coversRead() {
				continue // stopped on a genuine mismatch or ran out of genome
			}

			return MapResult{
				Hit:           true,
				Position:      p - backMatched,
				MatchedLength: backMatched + seedLen + forwardMatched,
				SeedAttempt:   k,
			}, nil
		}
	}

	return MapResult{Hit: false}, nil
}

// extendHalt records why an extension direction stopped advancing.
type extendHalt int

const (
	haltReadBoundary   extendHalt = iota // reached the read's 5'/3' end: fully covered
	haltInvalidByte                      // next read byte isn't ACGT: unmappable, not a mismatch
	haltGenomeBoundary                   // ran off the genome with read left to check: uncovered
	haltMismatch                         // genuine ACGT-vs-ACGT mismatch: uncovered
)

// coversRead reports whether this halt reason still counts the read as
// covered out to this point. A non-ACGT read byte can never be compared
// against the genome, so it halts extension the same way a read boundary
// does rather than failing the candidate — anything stronger would require
// mismatch-tolerant extension, which is out of scope.
func (h extendHalt) coversRead() bool {
	return h == haltReadBoundary || h == haltInvalidByte
}

// extendBackward compares read[..readEnd) against genome[..genomePos)
// moving right to left, stopping at the first mismatch, invalid read byte,
// or either boundary. Returns the number of matched bases and why it stopped.
func (idx *Index) extendBackward(read []byte, readEnd, genomePos int) (int, extendHalt) {
	matched := 0
	for {
		if readEnd-1-matched < 0 {
			return matched, haltReadBoundary
		}
		readSym, ok := alphabet.TryFromByte(read[readEnd-1-matched])
		if !ok {
			return matched, haltInvalidByte
		}
		if genomePos-1-matched < 0 {
			return matched, haltGenomeBoundary
		}
		if idx.genome.At(genomePos-1-matched) != readSym {
			return matched, haltMismatch
		}
		matched++
	}
}

// extendForward compares read[readStart..) against genome[genomePos..)
// moving left to right, stopping at the first mismatch, invalid read byte,
// or either boundary. Returns the number of matched bases and why it stopped.
func (idx *Index) extendForward(read []byte, readStart, genomePos int) (int, extendHalt) {
	matched := 0
	for {
		if readStart+matched >= len(read) {
			return matched, haltReadBoundary
		}
		readSym, ok := alphabet.TryFromByte(read[readStart+matched])
		if !ok {
			return matched, haltInvalidByte
		}
		if genomePos+matched >= idx.n {
			return matched, haltGenomeBoundary
		}
		if idx.genome.At(genomePos+matched) != readSym {
			return matched, haltMismatch
		}
		matched++
	}
}

func reverseBytes(bs []byte) []byte {
	out := make([]byte, len(bs))
	for i, b := range bs {
		out[len(bs)-1-i] = b
	}
	return out
}

func tryBytesToSymbols(bs []byte) ([]alphabet.Symbol, bool) {
	out := make([]alphabet.Symbol, len(bs))
	for i, b := range bs {
		sym, ok := alphabet.TryFromByte(b)
		if !ok {
			return nil, false
		}
		out[i] = sym
	}
	return out, true
}
