package fmindex

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasOJ/read-mapping/pkg/alphabet"
)

func TestPersistRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	genome := randomGenome(r, 300)
	idx := buildTestIndex(t, genome, 8, 4)

	var buf bytes.Buffer
	require.NoError(t, idx.WriteTo(&buf))

	reloaded, err := ReadFrom(&buf)
	require.NoError(t, err)

	assert.Equal(t, idx.N(), reloaded.N())

	for p := 0; p < 20; p++ {
		plen := r.Intn(15) + 1
		start := r.Intn(len(genome) - plen + 1)
		pattern := genome[start : start+plen]
		symbols, err := alphabet.FromBytes(pattern)
		require.NoError(t, err)

		assert.Equal(t, idx.Count(symbols), reloaded.Count(symbols))
	}

	for i := 0; i < idx.N(); i++ {
		assert.Equal(t, idx.Locate(i), reloaded.Locate(i))
	}
}
