package suffixarray

import (
	"github.com/LucasOJ/read-mapping/pkg/align"
	"github.com/LucasOJ/read-mapping/pkg/alphabet"
)

// BuildOverSymbols builds the suffix array of symbols with an implicit
// trailing sentinel that sorts strictly less than every symbol. Fails with
// align.ErrEmptyGenome if symbols is empty.
func BuildOverSymbols(symbols []alphabet.Symbol) ([]int, error) {
	if len(symbols) == 0 {
		return nil, align.ErrEmptyGenome
	}
	s := make([]int, len(symbols)+1)
	for i, sym := range symbols {
		s[i] = alphabet.SortRank(sym)
	}
	s[len(symbols)] = alphabet.SortRank(alphabet.Sentinel)
	return Build(s, alphabet.NumSymbols)
}
