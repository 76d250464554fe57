// Package alphabet defines the fixed 5-symbol alphabet (A, C, G, T, and the
// internal sentinel $) that the rest of the read-mapping core is built over.
package alphabet

import (
	"github.com/pkg/errors"

	"github.com/LucasOJ/read-mapping/pkg/align"
)

// Symbol is a nucleotide, or the internal sentinel. Numeric values are fixed
// by the on-disk format and by every C-table / checkpoint array in the core:
// callers must not renumber these.
type Symbol byte

const (
	A Symbol = 0
	C Symbol = 1
	G Symbol = 2
	T Symbol = 3
	// Sentinel sorts strictly less than every nucleotide and never appears
	// in a caller-visible genome, read, or result.
	Sentinel Symbol = 4
)

// NumSymbols is the size of the full alphabet including the sentinel.
const NumSymbols = 5

// SortRank returns the symbol's position in sort order ($<A<C<G<T), distinct
// from its fixed numeric Symbol value.
func SortRank(s Symbol) int {
	if s == Sentinel {
		return 0
	}
	return int(s) + 1
}

var byteTable [256]int8

func init() {
	for i := range byteTable {
		byteTable[i] = -1
	}
	byteTable['A'], byteTable['a'] = int8(A), int8(A)
	byteTable['C'], byteTable['c'] = int8(C), int8(C)
	byteTable['G'], byteTable['g'] = int8(G), int8(G)
	byteTable['T'], byteTable['t'] = int8(T), int8(T)
}

// FromByte maps an ASCII base letter (case-insensitive) to its Symbol.
// Any byte outside {A,C,G,T} fails with align.ErrInvalidAlphabet.
func FromByte(b byte) (Symbol, error) {
	v := byteTable[b]
	if v < 0 {
		return 0, errors.Wrapf(align.ErrInvalidAlphabet, "byte %q", b)
	}
	return Symbol(v), nil
}

// TryFromByte maps an ASCII base letter without allocating an error, for
// callers on a hot path (read mapping) that treat any non-ACGT byte as a
// mismatch rather than a failure.
func TryFromByte(b byte) (Symbol, bool) {
	v := byteTable[b]
	if v < 0 {
		return 0, false
	}
	return Symbol(v), true
}

// FromBytes maps a run of ASCII base letters to Symbols, failing on the
// first non-ACGT byte encountered.
func FromBytes(bs []byte) ([]Symbol, error) {
	out := make([]Symbol, len(bs))
	for i, b := range bs {
		s, err := FromByte(b)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// Byte renders a Symbol as its uppercase ASCII letter. The sentinel renders
// as '$' for diagnostics only; it is never expected in caller-visible output.
func (s Symbol) Byte() byte {
	switch s {
	case A:
		return 'A'
	case C:
		return 'C'
	case G:
		return 'G'
	case T:
		return 'T'
	default:
		return '$'
	}
}

func (s Symbol) String() string {
	return string(s.Byte())
}
