package readmapping

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LucasOJ/read-mapping/pkg/align"
)

func TestScenarioS1(t *testing.T) {
	idx, err := Build([]byte("ACGTACGT"), 0, 0)
	require.NoError(t, err)

	result, err := idx.MapRead([]byte("GTAC"), 4, 1)
	require.NoError(t, err)
	assert.True(t, result.Hit)
	assert.Equal(t, 2, result.Position)
	assert.Equal(t, 4, result.MatchedLength)
}

func TestScenarioS2FirstCandidatePolicy(t *testing.T) {
	idx, err := Build([]byte("AAAAAAAA"), 0, 0)
	require.NoError(t, err)

	result, err := idx.MapRead([]byte("AAAA"), 4, 1)
	require.NoError(t, err)
	assert.True(t, result.Hit)
	assert.Equal(t, 0, result.Position)
	assert.Equal(t, 4, result.MatchedLength)
}

func TestScenarioS3ExactMismatchMisses(t *testing.T) {
	idx, err := Build([]byte("ACGTACGT"), 0, 0)
	require.NoError(t, err)

	result, err := idx.MapRead([]byte("ACGA"), 4, 1)
	require.NoError(t, err)
	assert.False(t, result.Hit)
}

// Scenario S4: the first seed ("XXGT") contains non-ACGT bytes and misses,
// but the second seed ("ACGT") hits. Backward extension from that hit runs
// into the same invalid bytes partway toward the read's 5' end; since those
// bytes can never be compared against the genome, extension treats hitting
// one the same way it treats reaching the read boundary, and the candidate
// is still reported as a Hit (see DESIGN.md).
func TestScenarioS4InvalidLeadingBasesStillHitsSecondSeed(t *testing.T) {
	idx, err := Build([]byte("ACGTACGTACGT"), 0, 0)
	require.NoError(t, err)

	result, err := idx.MapRead([]byte("XXGTACGT"), 4, 2)
	require.NoError(t, err)
	assert.True(t, result.Hit)
	assert.Equal(t, 1, result.SeedAttempt)
	assert.GreaterOrEqual(t, result.MatchedLength, 4)
}

func TestScenarioS5QuerySeedLengthTwo(t *testing.T) {
	idx, err := Build([]byte("ACGT"), 0, 0)
	require.NoError(t, err)

	result, err := idx.MapRead([]byte("CG"), 2, 1)
	require.NoError(t, err)
	assert.True(t, result.Hit)
	assert.Equal(t, 1, result.Position)
}

func TestScenarioS6EmptyGenomeFails(t *testing.T) {
	_, err := Build(nil, 0, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, align.ErrEmptyGenome)
}

func TestMapReadInvalidArguments(t *testing.T) {
	idx, err := Build([]byte("ACGTACGT"), 0, 0)
	require.NoError(t, err)

	_, err = idx.MapRead([]byte("ACGT"), 0, 1)
	assert.ErrorIs(t, err, align.ErrInvalidArgument)

	_, err = idx.MapRead([]byte("ACGT"), 4, 0)
	assert.ErrorIs(t, err, align.ErrInvalidArgument)

	_, err = idx.MapRead([]byte("AC"), 4, 1)
	assert.ErrorIs(t, err, align.ErrInvalidArgument)
}

// Property P5: every substring of the genome, used as a read, maps to a
// position where the genome spells out that read. When the read occurs more
// than once, the first-hit policy may report an occurrence other than the
// one it was cut from.
func TestMapReadSubstringsAlwaysHit(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	bases := []byte("ACGT")
	for trial := 0; trial < 10; trial++ {
		n := r.Intn(200) + 100
		genome := make([]byte, n)
		for i := range genome {
			genome[i] = bases[r.Intn(4)]
		}
		idx, err := Build(genome, 0, 0)
		require.NoError(t, err)

		for s := 0; s < 10; s++ {
			seedLen := 4
			readLen := r.Intn(20) + seedLen
			if readLen > n {
				readLen = n
			}
			start := r.Intn(n - readLen + 1)
			read := genome[start : start+readLen]

			result, err := idx.MapRead(read, seedLen, 3)
			require.NoError(t, err)
			require.True(t, result.Hit, "genome=%s read=%s", genome, read)
			require.LessOrEqual(t, result.Position+len(read), n)
			assert.Equal(t, read, genome[result.Position:result.Position+len(read)])
		}
	}
}

func TestMapReadDeterministic(t *testing.T) {
	idx, err := Build([]byte("ACGTACGTACGTACGT"), 0, 0)
	require.NoError(t, err)

	first, err := idx.MapRead([]byte("ACGTACGT"), 4, 2)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := idx.MapRead([]byte("ACGTACGT"), 4, 2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
