package suffixarray

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasOJ/read-mapping/pkg/align"
	"github.com/LucasOJ/read-mapping/pkg/alphabet"
)

func naiveSuffixArray(text []byte) []int {
	n := len(text)
	sa := make([]int, n)
	for i := range sa {
		sa[i] = i
	}
	sort.Slice(sa, func(i, j int) bool {
		return string(text[sa[i]:]) < string(text[sa[j]:])
	})
	return sa
}

func TestBuildOverSymbolsMatchesNaive(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	bases := []byte("ACGT")
	for trial := 0; trial < 30; trial++ {
		n := r.Intn(60) + 1
		raw := make([]byte, n)
		for i := range raw {
			raw[i] = bases[r.Intn(4)]
		}
		symbols, err := alphabet.FromBytes(raw)
		require.NoError(t, err)

		sa, err := BuildOverSymbols(symbols)
		require.NoError(t, err)

		want := naiveSuffixArray(append(append([]byte{}, raw...), 0))
		require.Len(t, sa, len(want))
		assert.Equal(t, want, sa)
	}
}

func TestBuildOverSymbolsEmptyFails(t *testing.T) {
	_, err := BuildOverSymbols(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, align.ErrEmptyGenome)
}

func TestBuildOverSymbolsSingleBase(t *testing.T) {
	sa, err := BuildOverSymbols([]alphabet.Symbol{alphabet.A})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, sa)
}
