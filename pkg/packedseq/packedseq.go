// Package packedseq stores nucleotide sequences at 2 bits per base.
package packedseq

import (
	"github.com/LucasOJ/read-mapping/pkg/align"
	"github.com/LucasOJ/read-mapping/pkg/alphabet"
)

// Sequence is an immutable, densely packed run of alphabet.Symbol values
// drawn from {A,C,G,T} — the sentinel is never stored here. Packing is
// little-endian within each byte: base i occupies bits (i%4)*2..(i%4)*2+1
// of byte i/4.
type Sequence struct {
	packed []byte
	n      int
}

// FromSymbols packs a slice of symbols. Fails with align.ErrEmptyGenome if
// the slice is empty.
func FromSymbols(symbols []alphabet.Symbol) (*Sequence, error) {
	if len(symbols) == 0 {
		return nil, align.ErrEmptyGenome
	}
	packed := make([]byte, (len(symbols)+3)/4)
	for i, s := range symbols {
		packed[i/4] |= byte(s) << uint((i%4)*2)
	}
	return &Sequence{packed: packed, n: len(symbols)}, nil
}

// FromBytes decodes ASCII base letters (case-insensitive ACGT) and packs
// them. Fails with align.ErrInvalidAlphabet on any other byte, or
// align.ErrEmptyGenome if bs is empty.
func FromBytes(bs []byte) (*Sequence, error) {
	symbols, err := alphabet.FromBytes(bs)
	if err != nil {
		return nil, err
	}
	return FromSymbols(symbols)
}

// Len returns the number of bases.
func (s *Sequence) Len() int {
	return s.n
}

// At returns the base at index i. Panics if i is out of range, matching the
// core's contract that indices are always caller-validated beforehand.
func (s *Sequence) At(i int) alphabet.Symbol {
	b := s.packed[i/4]
	return alphabet.Symbol((b >> uint((i%4)*2)) & 0x03)
}

// Iter calls fn for every base in order.
func (s *Sequence) Iter(fn func(i int, sym alphabet.Symbol)) {
	for i := 0; i < s.n; i++ {
		fn(i, s.At(i))
	}
}

// Bytes renders the sequence back to uppercase ASCII.
func (s *Sequence) Bytes() []byte {
	out := make([]byte, s.n)
	for i := 0; i < s.n; i++ {
		out[i] = s.At(i).Byte()
	}
	return out
}
