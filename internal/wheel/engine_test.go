package wheel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingAnimationEncoder struct {
	GIFEncoder
}

func (*failingAnimationEncoder) EncodeAnimation(frames []image.Image, delayCS int) ([]byte, error) {
	return nil, fmt.Errorf("animation encoder down")
}

type failingEncoder struct{}

func (*failingEncoder) EncodeAnimation(frames []image.Image, delayCS int) ([]byte, error) {
	return nil, fmt.Errorf("animation encoder down")
}

func (*failingEncoder) EncodeStill(frame image.Image) ([]byte, error) {
	return nil, fmt.Errorf("still encoder down")
}

func smallOptions() Options {
	return Options{
		WheelSize:                 120,
		SpinDurationFrames:        10,
		CelebrationDurationFrames: 5,
		CelebrationLoops:          2,
	}
}

func threePool() Pool {
	return Pool{
		{ParticipantID: "a", Label: "Alice", Entries: 10},
		{ParticipantID: "b", Label: "Bob", Entries: 20},
		{ParticipantID: "c", Label: "Carol", Entries: 70},
	}
}

func TestSpinProducesDecodableAnimation(t *testing.T) {
	engine := NewEngine(nil, NewSeededSource(5), 4)
	result, err := engine.Spin(context.Background(), threePool(), smallOptions())
	require.NoError(t, err)

	assert.False(t, result.Static)
	assert.Equal(t, "image/gif", result.ContentType)
	assert.Contains(t, []string{"a", "b", "c"}, result.Winner.ParticipantID)
	assert.Equal(t, 3, result.Stats.ParticipantCount)
	assert.Equal(t, 100, result.Stats.TotalEntries)
	assert.Equal(t, 10, result.Stats.SpinFrameCount)
	assert.Equal(t, 10, result.Stats.CelebrationFrameCount)

	decoded, err := gif.DecodeAll(bytes.NewReader(result.Asset))
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 20)
	assert.Equal(t, -1, decoded.LoopCount)
}

func TestSpinEmptyPool(t *testing.T) {
	engine := NewEngine(nil, NewSeededSource(1), 2)
	_, err := engine.Spin(context.Background(), Pool{}, smallOptions())
	assert.ErrorIs(t, err, ErrEmptyPool)

	zeroes := Pool{{ParticipantID: "a", Label: "a", Entries: 0}}
	_, err = engine.Spin(context.Background(), zeroes, smallOptions())
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestSpinPreChosenWinner(t *testing.T) {
	engine := NewEngine(nil, NewSeededSource(1), 2)
	result, err := engine.SpinPreChosen(context.Background(), threePool(), smallOptions(), "b")
	require.NoError(t, err)

	assert.Equal(t, "b", result.Winner.ParticipantID)
	assert.Equal(t, "Bob", result.Winner.Label)
	assert.Equal(t, 20, result.Winner.Entries)
	assert.InDelta(t, 0.2, result.Winner.WinProbability, 1e-9)
}

func TestSpinPreChosenMismatch(t *testing.T) {
	engine := NewEngine(nil, NewSeededSource(1), 2)
	_, err := engine.SpinPreChosen(context.Background(), threePool(), smallOptions(), "ghost")

	var mismatch *WinnerMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "ghost", mismatch.ParticipantID)
}

func TestSpinEncodeFailureFallsBackToStill(t *testing.T) {
	engine := NewEngine(&failingAnimationEncoder{}, NewSeededSource(1), 2)
	pool := Pool{{ParticipantID: "solo", Label: "Solo", Entries: 4}}

	result, err := engine.Spin(context.Background(), pool, smallOptions())
	require.NoError(t, err, "an encoding failure must not lose the winner")

	assert.True(t, result.Static)
	assert.Equal(t, "image/png", result.ContentType)
	assert.Equal(t, "solo", result.Winner.ParticipantID)
	assert.InDelta(t, 1.0, result.Winner.WinProbability, 1e-9)
	assert.Equal(t, 0, result.Stats.SpinFrameCount)
	assert.Equal(t, 0, result.Stats.CelebrationFrameCount)

	img, err := png.Decode(bytes.NewReader(result.Asset))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 120), img.Bounds())
}

func TestSpinBothEncodersFail(t *testing.T) {
	engine := NewEngine(&failingEncoder{}, NewSeededSource(1), 2)
	result, err := engine.Spin(context.Background(), threePool(), smallOptions())

	var encodeErr *EncodeError
	require.ErrorAs(t, err, &encodeErr)

	// The draw already happened; its winner must survive the encoding
	// failure, both on the partial result and inside the error itself.
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Winner.ParticipantID)
	assert.Empty(t, result.Asset)
	assert.Equal(t, result.Winner.ParticipantID, encodeErr.Winner.ParticipantID)
	assert.Contains(t, err.Error(), result.Winner.ParticipantID)
}

func TestStaticResult(t *testing.T) {
	engine := NewEngine(nil, NewSeededSource(11), 2)
	result, err := engine.StaticResult(threePool(), smallOptions(), "c")
	require.NoError(t, err)

	assert.True(t, result.Static)
	assert.Equal(t, "image/png", result.ContentType)
	assert.Equal(t, "c", result.Winner.ParticipantID)

	_, err = png.Decode(bytes.NewReader(result.Asset))
	require.NoError(t, err)
}

func TestSpinRejectsBadOptions(t *testing.T) {
	engine := NewEngine(nil, NewSeededSource(1), 2)

	opts := smallOptions()
	opts.FrameRate = 200
	_, err := engine.Spin(context.Background(), threePool(), opts)
	assert.ErrorContains(t, err, "frame rate")

	opts = smallOptions()
	opts.PaletteColors = []string{"#12345"}
	_, err = engine.Spin(context.Background(), threePool(), opts)
	assert.ErrorContains(t, err, "hex color")

	opts = smallOptions()
	opts.SpinDurationFrames = 700
	opts.MaxFrames = 650
	_, err = engine.Spin(context.Background(), threePool(), opts)
	assert.ErrorContains(t, err, "frame budget")
}

func TestSpinCanceledContext(t *testing.T) {
	engine := NewEngine(nil, NewSeededSource(1), 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Spin(ctx, threePool(), smallOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSpinSeededReproducibility(t *testing.T) {
	r1, err := NewEngine(nil, NewSeededSource(123), 2).Spin(context.Background(), threePool(), smallOptions())
	require.NoError(t, err)
	r2, err := NewEngine(nil, NewSeededSource(123), 2).Spin(context.Background(), threePool(), smallOptions())
	require.NoError(t, err)

	assert.Equal(t, r1.Winner, r2.Winner)
	assert.True(t, bytes.Equal(r1.Asset, r2.Asset), "same seed and snapshot must produce the same asset")
}
