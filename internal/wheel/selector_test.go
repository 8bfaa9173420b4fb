package wheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectWinnerEmpty(t *testing.T) {
	_, err := SelectWinner(nil, NewSeededSource(1))
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestSelectWinnerSingleParticipant(t *testing.T) {
	pool := Pool{{ParticipantID: "only", Label: "only", Entries: 3}}
	segments, err := BuildSegments(pool, testPalette(t))
	require.NoError(t, err)

	src := NewSeededSource(42)
	for i := 0; i < 200; i++ {
		idx, err := SelectWinner(segments, src)
		require.NoError(t, err)
		assert.Equal(t, 0, idx)
	}
}

// TestSelectWinnerDistribution draws 100k winners from a 10/20/70 pool and
// checks the observed counts with a chi-square goodness-of-fit test. With a
// fixed seed the statistic is deterministic; 5.991 is the 95% critical value
// at two degrees of freedom.
func TestSelectWinnerDistribution(t *testing.T) {
	pool := Pool{
		{ParticipantID: "a", Label: "a", Entries: 10},
		{ParticipantID: "b", Label: "b", Entries: 20},
		{ParticipantID: "c", Label: "c", Entries: 70},
	}
	segments, err := BuildSegments(pool, testPalette(t))
	require.NoError(t, err)

	const trials = 100_000
	src := NewSeededSource(20240817)
	observed := make([]int, len(segments))
	for i := 0; i < trials; i++ {
		idx, err := SelectWinner(segments, src)
		require.NoError(t, err)
		observed[idx]++
	}

	expected := []float64{0.10 * trials, 0.20 * trials, 0.70 * trials}
	chi2 := 0.0
	for i := range observed {
		diff := float64(observed[i]) - expected[i]
		chi2 += diff * diff / expected[i]
	}
	assert.Less(t, chi2, 5.991, "observed %v", observed)

	for i, n := range observed {
		assert.Greater(t, n, 0, "participant %d never won", i)
	}
}

func TestSelectWinnerTwoEqualParticipants(t *testing.T) {
	pool := Pool{
		{ParticipantID: "a", Label: "a", Entries: 1},
		{ParticipantID: "b", Label: "b", Entries: 1},
	}
	segments, err := BuildSegments(pool, testPalette(t))
	require.NoError(t, err)

	const trials = 20_000
	src := NewSeededSource(7)
	wins := make([]int, 2)
	for i := 0; i < trials; i++ {
		idx, err := SelectWinner(segments, src)
		require.NoError(t, err)
		wins[idx]++
	}

	// One degree of freedom, 95% critical value 3.841.
	exp := float64(trials) / 2
	d0 := float64(wins[0]) - exp
	d1 := float64(wins[1]) - exp
	chi2 := d0*d0/exp + d1*d1/exp
	assert.Less(t, chi2, 3.841, "wins %v", wins)
}

func TestFindSegment(t *testing.T) {
	pool := Pool{
		{ParticipantID: "a", Label: "a", Entries: 1},
		{ParticipantID: "b", Label: "b", Entries: 2},
	}
	segments, err := BuildSegments(pool, testPalette(t))
	require.NoError(t, err)

	idx, err := FindSegment(segments, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = FindSegment(segments, "ghost")
	var mismatch *WinnerMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "ghost", mismatch.ParticipantID)
}

func TestSeededSourceDeterminism(t *testing.T) {
	a := NewSeededSource(99)
	b := NewSeededSource(99)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Int63n(1_000_000), b.Int63n(1_000_000))
	}
}

func TestCryptoSourceRange(t *testing.T) {
	src := NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Int63n(10)
		assert.GreaterOrEqual(t, v, int64(0))
		assert.Less(t, v, int64(10))
	}
}
