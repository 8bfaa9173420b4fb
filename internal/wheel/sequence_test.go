package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, easeOutCubic(0))
	assert.Equal(t, 1.0, easeOutCubic(1))
	assert.InDelta(t, 0.875, easeOutCubic(0.5), 1e-9)

	// Monotonically non-decreasing over [0,1].
	prev := 0.0
	for p := 0.0; p <= 1.0; p += 0.01 {
		v := easeOutCubic(p)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

// TestSpinLandsWinnerUnderPointer checks the alignment guarantee for winner
// mid-angles across the whole circle: after the final spin frame's rotation,
// the mid-angle must sit at screen angle zero (mod 2pi), which the renderer
// maps to the pointer position.
func TestSpinLandsWinnerUnderPointer(t *testing.T) {
	o := Options{}.withDefaults()
	for mid := 0.0; mid < 2*math.Pi; mid += math.Pi / 16 {
		plan := PlanFrames(mid, o)
		final := plan[o.SpinDurationFrames-1]
		assert.False(t, final.Celebrating)

		landed := math.Mod(mid+final.Rotation, 2*math.Pi)
		if landed > math.Pi {
			landed -= 2 * math.Pi
		}
		assert.InDelta(t, 0, landed, 1e-9, "mid-angle %.3f", mid)
	}
}

func TestPlanFramesPhases(t *testing.T) {
	o := Options{
		SpinDurationFrames:        60,
		CelebrationDurationFrames: 20,
		CelebrationLoops:          3,
	}.withDefaults()

	plan := PlanFrames(math.Pi/3, o)
	require.Len(t, plan, 60+3*20)

	target := TargetRotation(o.SpinRevolutions, math.Pi/3)
	prev := -1.0
	for i := 0; i < 60; i++ {
		require.False(t, plan[i].Celebrating, "frame %d", i)
		assert.Greater(t, plan[i].Rotation, prev, "rotation must keep increasing")
		prev = plan[i].Rotation
	}
	assert.InDelta(t, target, plan[59].Rotation, 1e-9)

	for i := 60; i < len(plan); i++ {
		require.True(t, plan[i].Celebrating, "frame %d", i)
		assert.Equal(t, 0.0, plan[i].Rotation)
		assert.Equal(t, i-60, plan[i].Tick)
	}
}

func TestPlanFramesRespectsBudget(t *testing.T) {
	o := Options{
		SpinDurationFrames:        100,
		CelebrationDurationFrames: 50,
		CelebrationLoops:          1000,
		MaxFrames:                 400,
	}.withDefaults()

	plan := PlanFrames(1.0, o)
	assert.LessOrEqual(t, len(plan), 400)
	// 100 spin frames leave room for exactly six celebration blocks.
	assert.Len(t, plan, 100+6*50)
}

func TestPlanFramesAtLeastOneCelebrationBlock(t *testing.T) {
	o := Options{
		SpinDurationFrames:        100,
		CelebrationDurationFrames: 50,
		CelebrationLoops:          5,
		MaxFrames:                 150,
	}.withDefaults()

	plan := PlanFrames(1.0, o)
	assert.Len(t, plan, 150)
}

func TestTargetRotation(t *testing.T) {
	assert.InDelta(t, 4*2*math.Pi-math.Pi/2, TargetRotation(4, math.Pi/2), 1e-12)
	assert.InDelta(t, 2*math.Pi, TargetRotation(1, 0), 1e-12)
}
