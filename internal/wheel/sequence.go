package wheel

import "math"

// FrameSpec describes one frame of the animation: the wheel's rotation, the
// celebration flag, and a monotonically increasing tick that drives the
// celebration effects. Frames are a pure function of the plan; no stage of
// the pipeline reads the clock.
type FrameSpec struct {
	Rotation    float64
	Celebrating bool
	Tick        int
}

// easeOutCubic maps linear progress p in [0,1] onto a fast-start,
// slow-finish curve: 1 - (1-p)^3.
func easeOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// TargetRotation is the total rotation the spin phase covers: a configured
// number of full revolutions, minus the winner's mid-angle so the final
// frame parks that mid-angle exactly under the pointer.
func TargetRotation(revolutions int, winnerMidAngle float64) float64 {
	return float64(revolutions)*2*math.Pi - winnerMidAngle
}

// PlanFrames produces the ordered frame specs for both phases.
//
// Spin: frame i of n sits at easeOutCubic(i/n) x target, so progress hits
// exactly 1 on the last frame and the wheel decelerates onto the winner.
// Celebration: rotation held at 0 with the celebration overlay active; the
// block is emitted celebrationLoops times (clamped to the frame budget) so a
// single play-through of the asset shows a sustained celebration.
func PlanFrames(winnerMidAngle float64, o Options) []FrameSpec {
	target := TargetRotation(o.SpinRevolutions, winnerMidAngle)

	loops := o.CelebrationLoops
	if max := (o.MaxFrames - o.SpinDurationFrames) / o.CelebrationDurationFrames; loops > max {
		loops = max
	}
	if loops < 1 {
		loops = 1
	}

	plan := make([]FrameSpec, 0, o.SpinDurationFrames+loops*o.CelebrationDurationFrames)
	for i := 1; i <= o.SpinDurationFrames; i++ {
		p := float64(i) / float64(o.SpinDurationFrames)
		plan = append(plan, FrameSpec{
			Rotation: easeOutCubic(p) * target,
			Tick:     i,
		})
	}
	celebrationFrames := loops * o.CelebrationDurationFrames
	for i := 0; i < celebrationFrames; i++ {
		plan = append(plan, FrameSpec{
			Rotation:    0,
			Celebrating: true,
			Tick:        i,
		})
	}
	return plan
}
