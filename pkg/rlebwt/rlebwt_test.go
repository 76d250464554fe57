package rlebwt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasOJ/read-mapping/pkg/alphabet"
)

func randomBWT(r *rand.Rand, n int) []alphabet.Symbol {
	syms := []alphabet.Symbol{alphabet.A, alphabet.C, alphabet.G, alphabet.T, alphabet.Sentinel}
	out := make([]alphabet.Symbol, n)
	for i := range out {
		out[i] = syms[r.Intn(len(syms))]
	}
	return out
}

func naiveRank(bwt []alphabet.Symbol, sym alphabet.Symbol, i int) uint64 {
	var count uint64
	for j := 0; j < i && j < len(bwt); j++ {
		if bwt[j] == sym {
			count++
		}
	}
	return count
}

func TestRankMatchesNaive(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n := r.Intn(300) + 1
		bwt := randomBWT(r, n)
		rb := Build(bwt, 4)

		require.Equal(t, n, rb.N)
		for sym := alphabet.Symbol(0); sym < alphabet.NumSymbols; sym++ {
			for i := 0; i <= n; i++ {
				assert.Equal(t, naiveRank(bwt, sym, i), rb.Rank(sym, i), "sym=%d i=%d", sym, i)
			}
		}
	}
}

func TestAtMatchesOriginal(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	bwt := randomBWT(r, 123)
	rb := Build(bwt, 8)
	for i, want := range bwt {
		assert.Equal(t, want, rb.At(i))
	}
}

func TestTotalSumsToN(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	bwt := randomBWT(r, 77)
	rb := Build(bwt, 16)
	var sum uint64
	for sym := alphabet.Symbol(0); sym < alphabet.NumSymbols; sym++ {
		sum += rb.Total(sym)
	}
	assert.Equal(t, uint64(77), sum)
}

func TestSinglePeriodDegenerate(t *testing.T) {
	bwt := []alphabet.Symbol{alphabet.A, alphabet.C, alphabet.A, alphabet.Sentinel}
	rb := Build(bwt, 1)
	assert.Equal(t, uint64(2), rb.Rank(alphabet.A, 4))
	assert.Equal(t, uint64(1), rb.Rank(alphabet.C, 4))
}
