package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/ballsim/internal/physics"
)

func referenceWorld(t *testing.T) *World {
	t.Helper()
	w := New(physics.Surface{Width: 900, Height: 500}, physics.DefaultParams())
	if err := w.Add(physics.NewBall(0, 100, 100, 20, "#ff0000")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := w.Add(physics.NewBall(1, 500, 200, 20, "#00ff00")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	return w
}

func TestWorldRun(t *testing.T) {
	w := referenceWorld(t)
	w.Balls()[0].Velocity = physics.NewVec2(4, 1)

	cfg := RunConfig{Frames: 10, Record: true, ValidateState: true}
	result, err := w.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Snapshots) != 11 {
		t.Errorf("expected 11 snapshots, got %d", len(result.Snapshots))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if w.Frame() != 10 {
		t.Errorf("expected frame 10, got %d", w.Frame())
	}

	last := result.Snapshots[len(result.Snapshots)-1].Balls[0]
	if last.X != 140 || last.Y != 110 {
		t.Errorf("expected ball at (140, 110), got (%.2f, %.2f)", last.X, last.Y)
	}
}

func TestWorldRunInvalidConfig(t *testing.T) {
	w := referenceWorld(t)

	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"zero frames", RunConfig{Frames: 0}},
		{"negative frames", RunConfig{Frames: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := w.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestWorldRunCanceled(t *testing.T) {
	w := referenceWorld(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Run(ctx, RunConfig{Frames: 5})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWorldAddRejectsInvalidBall(t *testing.T) {
	w := New(physics.Surface{Width: 900, Height: 500}, physics.DefaultParams())

	err := w.Add(physics.NewBall(3, 100, 100, -1, "#ffffff"))
	if !errors.Is(err, physics.ErrInvalidRadius) {
		t.Errorf("expected ErrInvalidRadius, got %v", err)
	}
	if len(w.Balls()) != 0 {
		t.Errorf("expected no balls, got %d", len(w.Balls()))
	}
}

func TestWorldSnapshotIsCopy(t *testing.T) {
	w := referenceWorld(t)

	snap := w.Snapshot()
	snap.Balls[0].X = 999
	snap.Balls[0].Color = "#000000"

	if w.Balls()[0].Position.X != 100 {
		t.Error("snapshot shares position with world")
	}
	if w.Balls()[0].Color != "#ff0000" {
		t.Error("snapshot shares color with world")
	}
	if snap.Balls[1].ID != 1 {
		t.Errorf("expected list order preserved, got id %d", snap.Balls[1].ID)
	}
}

func TestWorldReset(t *testing.T) {
	w := referenceWorld(t)
	first := w.Balls()[0]
	first.Velocity = physics.NewVec2(5, 5)
	first.Color = "#123456"
	w.Step()
	w.Step()

	w.Reset()

	if w.Balls()[0] != first {
		t.Error("reset replaced ball identity")
	}
	if first.Position != physics.NewVec2(100, 100) || !first.Velocity.IsZero() {
		t.Errorf("reset did not restore ball: %+v", first)
	}
	if w.Frame() != 0 {
		t.Errorf("expected frame 0, got %d", w.Frame())
	}
}

type testMetric struct {
	count    int
	contacts int
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(s Snapshot, r physics.StepReport) {
	t.count++
	t.contacts += len(r.Contacts)
}
func (t *testMetric) Value() float64 { return float64(t.count) }
func (t *testMetric) Reset() {
	t.count = 0
	t.contacts = 0
}

func TestWorldMetrics(t *testing.T) {
	w := referenceWorld(t)
	metric := &testMetric{}
	w.AddMetric(metric)

	result, err := w.Run(context.Background(), RunConfig{Frames: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if v, ok := result.Metrics["test"]; !ok || v != 10 {
		t.Errorf("expected metric value 10, got %v (present=%v)", v, ok)
	}
	if metric.contacts != 0 {
		t.Errorf("expected no contacts in stationary scene, got %d", metric.contacts)
	}
}

type recordingObserver struct {
	frames []uint64
}

func (o *recordingObserver) OnFrame(s Snapshot, r physics.StepReport) {
	o.frames = append(o.frames, s.Frame)
}

func TestWorldObservers(t *testing.T) {
	w := referenceWorld(t)
	obs := &recordingObserver{}
	w.AddObserver(obs)

	w.Step()
	w.Step()
	w.Step()

	if len(obs.frames) != 3 || obs.frames[0] != 1 || obs.frames[2] != 3 {
		t.Errorf("expected frames [1 2 3], got %v", obs.frames)
	}
}

func TestEnsembleRun(t *testing.T) {
	factory := func(seed int64) (*World, error) {
		w := New(physics.Surface{Width: 900, Height: 500}, physics.DefaultParams())
		b := physics.NewBall(0, 450, 250, 20, "#ffffff")
		b.Velocity = physics.NewVec2(float64(seed), 0)
		return w, w.Add(b)
	}

	results, err := NewEnsemble(factory, 4, 1).Run(context.Background(), RunConfig{Frames: 5, Record: true})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		last := r.Snapshots[len(r.Snapshots)-1].Balls[0]
		want := 450 + 5*float64(i+1)
		if last.X != want {
			t.Errorf("run %d: expected x=%.1f, got %.1f", i, want, last.X)
		}
	}
}

func TestEnsembleFactoryError(t *testing.T) {
	factory := func(seed int64) (*World, error) {
		w := New(physics.Surface{Width: 900, Height: 500}, physics.DefaultParams())
		return w, w.Add(physics.NewBall(0, 0, 0, 0, "#ffffff"))
	}

	if _, err := NewEnsemble(factory, 2, 0).Run(context.Background(), RunConfig{Frames: 1}); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestWorldRunBeforeStep(t *testing.T) {
	w := referenceWorld(t)

	var seen []uint64
	cfg := RunConfig{Frames: 3, BeforeStep: func(frame uint64) {
		seen = append(seen, frame)
		if frame == 1 {
			w.Balls()[0].Velocity = physics.NewVec2(2, 0)
		}
	}}
	if _, err := w.Run(context.Background(), cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(seen) != 3 || seen[0] != 0 || seen[2] != 2 {
		t.Errorf("expected hook for frames 0..2, got %v", seen)
	}
	if x := w.Balls()[0].Position.X; x != 104 {
		t.Errorf("expected x=104 after two moving frames, got %v", x)
	}
}
