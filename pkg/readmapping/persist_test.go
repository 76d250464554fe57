package readmapping

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	bases := []byte("ACGT")
	genome := make([]byte, 250)
	for i := range genome {
		genome[i] = bases[r.Intn(4)]
	}

	idx, err := Build(genome, 8, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, idx.WriteTo(&buf))

	reloaded, err := ReadFrom(&buf)
	require.NoError(t, err)

	for trial := 0; trial < 20; trial++ {
		readLen := r.Intn(20) + 4
		start := r.Intn(len(genome) - readLen + 1)
		read := genome[start : start+readLen]

		want, err := idx.MapRead(read, 4, 3)
		require.NoError(t, err)
		got, err := reloaded.MapRead(read, 4, 3)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
