package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/ballsim/internal/physics"
)

// World owns the ordered ball set and advances it one frame at a time. It is
// not safe for concurrent use; callers serialize input handling and frames
// on one goroutine.
type World struct {
	surface   physics.Surface
	params    physics.Params
	balls     []*physics.Ball
	initial   []physics.Ball
	frame     uint64
	metrics   []Metric
	observers []Observer
}

func New(surface physics.Surface, params physics.Params) *World {
	return &World{
		surface:   surface,
		params:    params,
		balls:     make([]*physics.Ball, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (w *World) AddMetric(m Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o Observer) { w.observers = append(w.observers, o) }

// Add appends a ball at the end of the draw order.
func (w *World) Add(b *physics.Ball) error {
	if err := physics.Validate(b, w.surface); err != nil {
		return fmt.Errorf("ball %d: %w", b.ID, err)
	}
	w.balls = append(w.balls, b)
	w.initial = append(w.initial, *b)
	return nil
}

// Balls returns the live ordered ball slice. Callers may mutate ball fields
// but must not reorder or resize the slice.
func (w *World) Balls() []*physics.Ball   { return w.balls }
func (w *World) Surface() physics.Surface { return w.surface }
func (w *World) Params() *physics.Params  { return &w.params }
func (w *World) Frame() uint64            { return w.frame }

// Step runs one physics frame and notifies metrics and observers.
func (w *World) Step() physics.StepReport {
	report := physics.Step(w.balls, w.surface, w.params)
	w.frame++

	if len(w.metrics) == 0 && len(w.observers) == 0 {
		return report
	}

	snap := w.Snapshot()
	for _, m := range w.metrics {
		m.Observe(snap, report)
	}
	for _, o := range w.observers {
		o.OnFrame(snap, report)
	}
	return report
}

func (w *World) Snapshot() Snapshot {
	views := make([]BallView, len(w.balls))
	for i, b := range w.balls {
		views[i] = BallView{
			ID:     b.ID,
			X:      b.Position.X,
			Y:      b.Position.Y,
			VX:     b.Velocity.X,
			VY:     b.Velocity.Y,
			Radius: b.Radius,
			Color:  b.Color,
		}
	}
	return Snapshot{Frame: w.frame, Surface: w.surface, Balls: views}
}

// Reset restores every ball to the values it had when added. Ball identity
// is preserved.
func (w *World) Reset() {
	for i, b := range w.balls {
		*b = w.initial[i]
	}
	w.frame = 0
	for _, m := range w.metrics {
		m.Reset()
	}
}

// Run advances the world cfg.Frames times without a display.
func (w *World) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}
	if cfg.Record {
		result.Snapshots = make([]Snapshot, 0, cfg.Frames+1)
		result.Snapshots = append(result.Snapshots, w.Snapshot())
	}

	for _, m := range w.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if cfg.BeforeStep != nil {
			cfg.BeforeStep(w.frame)
		}
		w.Step()
		result.StepsTaken++

		if cfg.ValidateState {
			if err := w.validate(); err != nil {
				result.Errors = append(result.Errors, err)
				break
			}
		}

		if cfg.Record {
			result.Snapshots = append(result.Snapshots, w.Snapshot())
		}
	}

	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (w *World) validate() error {
	for _, b := range w.balls {
		if !b.Position.IsValid() || !b.Velocity.IsValid() {
			return SimError{Frame: w.frame, BallID: b.ID, Message: "invalid state (NaN/Inf)"}
		}
		if !w.surface.Inside(b) {
			return SimError{Frame: w.frame, BallID: b.ID, Message: "ball left the surface"}
		}
	}
	return nil
}
