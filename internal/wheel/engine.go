package wheel

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// WinnerRecord is the caller-facing description of the drawn winner. It is
// the one piece of a spin the caller is expected to commit into durable
// state.
type WinnerRecord struct {
	ParticipantID  string  `json:"participantId"`
	Label          string  `json:"label"`
	Entries        int     `json:"entries"`
	FillColor      string  `json:"fillColor"`
	WinProbability float64 `json:"winProbability"`
}

// SpinStats summarizes what went into the asset.
type SpinStats struct {
	ParticipantCount      int `json:"participantCount"`
	TotalEntries          int `json:"totalEntries"`
	SpinFrameCount        int `json:"spinFrameCount"`
	CelebrationFrameCount int `json:"celebrationFrameCount"`
}

// AnimationResult is the product of one spin: the encoded asset, the winner,
// and the stats. Static is set when encoding fell back to a still image; the
// WinnerRecord is identical either way.
type AnimationResult struct {
	Asset       []byte       `json:"-"`
	ContentType string       `json:"contentType"`
	Static      bool         `json:"static"`
	Winner      WinnerRecord `json:"winner"`
	Stats       SpinStats    `json:"stats"`
}

// Engine runs the full pipeline: entry counts to segments, weighted draw,
// frame plan, concurrent rendering, encoding, and the static fallback. It
// holds no per-spin state and is safe for concurrent use.
type Engine struct {
	encoder AssetEncoder
	rand    RandSource
	workers int
}

// NewEngine creates an Engine. A nil encoder gets the GIF encoder, a nil
// rand gets the crypto-backed source, and workers <= 0 defaults to the CPU
// count.
func NewEngine(encoder AssetEncoder, rand RandSource, workers int) *Engine {
	if encoder == nil {
		encoder = &GIFEncoder{}
	}
	if rand == nil {
		rand = NewCryptoSource()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{encoder: encoder, rand: rand, workers: workers}
}

// Spin draws a weighted winner from the pool and renders the full animation.
func (e *Engine) Spin(ctx context.Context, pool Pool, opts Options) (*AnimationResult, error) {
	return e.run(ctx, pool, opts, "")
}

// SpinPreChosen renders the animation for a winner decided ahead of time.
// The id must resolve against the pool snapshot or the spin fails with
// WinnerMismatchError before any rendering happens.
func (e *Engine) SpinPreChosen(ctx context.Context, pool Pool, opts Options, participantID string) (*AnimationResult, error) {
	if participantID == "" {
		return nil, fmt.Errorf("pre-chosen participant id is empty")
	}
	return e.run(ctx, pool, opts, participantID)
}

// StaticResult skips animation entirely and produces the still-image result.
// Callers use it when a full generation timed out or must be avoided.
func (e *Engine) StaticResult(pool Pool, opts Options, preChosenID string) (*AnimationResult, error) {
	setup, err := e.prepare(pool, opts, preChosenID)
	if err != nil {
		return nil, err
	}
	return e.fallback(setup, nil)
}

// spinSetup carries the state shared by the animated and static paths.
type spinSetup struct {
	opts         Options
	segments     []Segment
	winnerIdx    int
	totalEntries int
	record       WinnerRecord
	renderer     *Renderer
}

// prepare validates options, builds segments, and resolves the winner.
// Every fatal condition (empty pool, bad options, mismatched pre-chosen id)
// surfaces here, before any frame is drawn.
func (e *Engine) prepare(pool Pool, opts Options, preChosen string) (*spinSetup, error) {
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("wheel options: %w", err)
	}
	palette, err := o.palette()
	if err != nil {
		return nil, err
	}

	segments, err := BuildSegments(pool, palette)
	if err != nil {
		return nil, err
	}

	var winnerIdx int
	if preChosen != "" {
		winnerIdx, err = FindSegment(segments, preChosen)
	} else {
		winnerIdx, err = SelectWinner(segments, e.rand)
	}
	if err != nil {
		return nil, err
	}

	winner := segments[winnerIdx]
	record := WinnerRecord{
		ParticipantID:  winner.ParticipantID,
		Label:          winner.Label,
		Entries:        winner.Entries,
		FillColor:      hexString(winner.Fill),
		WinProbability: float64(winner.Entries) / float64(pool.TotalEntries()),
	}

	renderer, err := newRenderer(o)
	if err != nil {
		return nil, err
	}
	if sub := renderer.FontSubstitution(); sub != nil {
		slog.Warn("Configured font unavailable, substituting default face", "error", sub.Err, "fontPath", o.FontPath)
	}

	return &spinSetup{
		opts:         o,
		segments:     segments,
		winnerIdx:    winnerIdx,
		totalEntries: pool.TotalEntries(),
		record:       record,
		renderer:     renderer,
	}, nil
}

func (e *Engine) run(ctx context.Context, pool Pool, opts Options, preChosen string) (*AnimationResult, error) {
	setup, err := e.prepare(pool, opts, preChosen)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan := PlanFrames(setup.segments[setup.winnerIdx].MidAngle(), setup.opts)

	// Frames are independent; render them on a bounded pool and reassemble
	// in order. Encoding itself is sequential.
	frames := make([]image.Image, len(plan))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, spec := range plan {
		i, spec := i, spec
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frames[i] = setup.renderer.RenderFrame(setup.segments, spec, setup.winnerIdx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &RenderError{Stage: "frames", Err: err}
	}

	asset, err := e.encoder.EncodeAnimation(frames, setup.opts.frameDelayCS())
	if err != nil {
		slog.Warn("Animation encoding failed, producing static fallback",
			"error", err, "participantId", setup.record.ParticipantID)
		return e.fallback(setup, err)
	}

	return &AnimationResult{
		Asset:       asset,
		ContentType: "image/gif",
		Winner:      setup.record,
		Stats: SpinStats{
			ParticipantCount:      len(setup.segments),
			TotalEntries:          setup.totalEntries,
			SpinFrameCount:        setup.opts.SpinDurationFrames,
			CelebrationFrameCount: len(plan) - setup.opts.SpinDurationFrames,
		},
	}, nil
}

// fallback encodes the still-image result. encodeErr, when present, is the
// animation failure that forced the fallback; it is only surfaced if the
// still cannot be produced either, and even then the selection is already
// made: the result comes back carrying the winner record with no asset,
// alongside an EncodeError that names the winner too.
func (e *Engine) fallback(setup *spinSetup, encodeErr error) (*AnimationResult, error) {
	still, err := e.encoder.EncodeStill(setup.renderer.RenderStill(setup.segments, setup.winnerIdx))
	if err != nil {
		if encodeErr != nil {
			err = fmt.Errorf("animation: %v; fallback: %w", encodeErr, err)
		}
		partial := &AnimationResult{
			Static: true,
			Winner: setup.record,
			Stats: SpinStats{
				ParticipantCount: len(setup.segments),
				TotalEntries:     setup.totalEntries,
			},
		}
		return partial, &EncodeError{Winner: setup.record, Err: err}
	}
	return &AnimationResult{
		Asset:       still,
		ContentType: "image/png",
		Static:      true,
		Winner:      setup.record,
		Stats: SpinStats{
			ParticipantCount: len(setup.segments),
			TotalEntries:     setup.totalEntries,
		},
	}, nil
}
