package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasOJ/read-mapping/pkg/align"
)

func TestFromByteACGT(t *testing.T) {
	cases := map[byte]Symbol{
		'A': A, 'a': A,
		'C': C, 'c': C,
		'G': G, 'g': G,
		'T': T, 't': T,
	}
	for b, want := range cases {
		got, err := FromByte(b)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFromByteInvalid(t *testing.T) {
	_, err := FromByte('N')
	require.Error(t, err)
	assert.ErrorIs(t, err, align.ErrInvalidAlphabet)
}

func TestFromBytes(t *testing.T) {
	got, err := FromBytes([]byte("acGT"))
	require.NoError(t, err)
	assert.Equal(t, []Symbol{A, C, G, T}, got)
}

func TestFromBytesFailsOnFirstBadByte(t *testing.T) {
	_, err := FromBytes([]byte("ACGN"))
	require.Error(t, err)
	assert.ErrorIs(t, err, align.ErrInvalidAlphabet)
}

func TestSortRankOrdering(t *testing.T) {
	assert.Less(t, SortRank(Sentinel), SortRank(A))
	assert.Less(t, SortRank(A), SortRank(C))
	assert.Less(t, SortRank(C), SortRank(G))
	assert.Less(t, SortRank(G), SortRank(T))
}

func TestByteRoundTrip(t *testing.T) {
	for _, s := range []Symbol{A, C, G, T} {
		b := s.Byte()
		got, err := FromByte(b)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}
