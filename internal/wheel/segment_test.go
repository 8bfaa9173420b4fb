package wheel

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette(t *testing.T) []color.RGBA {
	t.Helper()
	palette, err := Options{}.withDefaults().palette()
	require.NoError(t, err)
	return palette
}

func TestBuildSegmentsSpansCoverCircle(t *testing.T) {
	pools := []Pool{
		{{ParticipantID: "a", Label: "a", Entries: 1}},
		{{ParticipantID: "a", Label: "a", Entries: 10}, {ParticipantID: "b", Label: "b", Entries: 20}, {ParticipantID: "c", Label: "c", Entries: 70}},
		{{ParticipantID: "a", Label: "a", Entries: 3}, {ParticipantID: "b", Label: "b", Entries: 5}, {ParticipantID: "c", Label: "c", Entries: 7}, {ParticipantID: "d", Label: "d", Entries: 11}},
	}

	for _, pool := range pools {
		segments, err := BuildSegments(pool, testPalette(t))
		require.NoError(t, err)
		require.Len(t, segments, len(pool))

		sum := 0.0
		for _, seg := range segments {
			sum += seg.Span()
		}
		assert.InDelta(t, 2*math.Pi, sum, 1e-6)

		// Contiguous and ordered: each segment starts where the previous ended.
		assert.Equal(t, 0.0, segments[0].StartAngle)
		for i := 1; i < len(segments); i++ {
			assert.Equal(t, segments[i-1].EndAngle, segments[i].StartAngle)
		}
		assert.Equal(t, 2*math.Pi, segments[len(segments)-1].EndAngle)
	}
}

func TestBuildSegmentsProportionalSpans(t *testing.T) {
	pool := Pool{
		{ParticipantID: "a", Label: "a", Entries: 10},
		{ParticipantID: "b", Label: "b", Entries: 20},
		{ParticipantID: "c", Label: "c", Entries: 70},
	}
	segments, err := BuildSegments(pool, testPalette(t))
	require.NoError(t, err)

	assert.InDelta(t, 2*math.Pi*0.10, segments[0].Span(), 1e-9)
	assert.InDelta(t, 2*math.Pi*0.20, segments[1].Span(), 1e-9)
	assert.InDelta(t, 2*math.Pi*0.70, segments[2].Span(), 1e-6)
}

func TestBuildSegmentsPaletteCycles(t *testing.T) {
	palette := testPalette(t)
	pool := make(Pool, 0, len(palette)+3)
	for i := 0; i < len(palette)+3; i++ {
		pool = append(pool, Entry{ParticipantID: string(rune('a' + i)), Label: "p", Entries: 1})
	}

	segments, err := BuildSegments(pool, palette)
	require.NoError(t, err)
	for k, seg := range segments {
		assert.Equal(t, palette[k%len(palette)], seg.Fill, "segment %d", k)
	}
}

func TestBuildSegmentsExcludesZeroEntries(t *testing.T) {
	pool := Pool{
		{ParticipantID: "a", Label: "a", Entries: 5},
		{ParticipantID: "b", Label: "b", Entries: 0},
		{ParticipantID: "c", Label: "c", Entries: 5},
	}
	segments, err := BuildSegments(pool, testPalette(t))
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "a", segments[0].ParticipantID)
	assert.Equal(t, "c", segments[1].ParticipantID)
	assert.InDelta(t, math.Pi, segments[0].Span(), 1e-9)
}

func TestBuildSegmentsEmptyPool(t *testing.T) {
	_, err := BuildSegments(Pool{}, testPalette(t))
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = BuildSegments(Pool{{ParticipantID: "a", Label: "a", Entries: 0}}, testPalette(t))
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestTextColorContrast(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}

	// Black fill (L=0) gets white text, white fill (L=1) gets black text.
	assert.Equal(t, white, textColorFor(black))
	assert.Equal(t, black, textColorFor(white))

	// A dark blue stays below the luminance midpoint, a bright yellow above it.
	assert.Equal(t, white, textColorFor(color.RGBA{R: 0x20, G: 0x30, B: 0x90, A: 255}))
	assert.Equal(t, black, textColorFor(color.RGBA{R: 0xF1, G: 0xC4, B: 0x0F, A: 255}))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#E74C3C")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xE7, G: 0x4C, B: 0x3C, A: 255}, c)

	c, err = ParseHexColor("2ecc71")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x2E, G: 0xCC, B: 0x71, A: 255}, c)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#GGHHII")
	assert.Error(t, err)

	assert.Equal(t, "#E74C3C", hexString(color.RGBA{R: 0xE7, G: 0x4C, B: 0x3C, A: 255}))
}

func TestPoolFromCountsDeterministicOrder(t *testing.T) {
	counts := map[string]int{"zeta": 3, "alpha": 1, "mid": 2}
	for i := 0; i < 10; i++ {
		pool := PoolFromCounts(counts)
		require.Len(t, pool, 3)
		assert.Equal(t, "alpha", pool[0].ParticipantID)
		assert.Equal(t, "mid", pool[1].ParticipantID)
		assert.Equal(t, "zeta", pool[2].ParticipantID)
	}
}
