package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/ballsim/internal/physics"
)

var (
	// ErrLoopRunning indicates Start was called on a loop that is already running.
	ErrLoopRunning = errors.New("sim: frame loop already running")

	// ErrInvalidFPS indicates a non-positive frame rate.
	ErrInvalidFPS = errors.New("sim: frame rate must be positive")
)

// BallView is the read-only render tuple for one ball.
type BallView struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

// Snapshot is a copy of the world at the end of a frame. Balls are in list
// order, which is also draw order.
type Snapshot struct {
	Frame   uint64          `json:"frame"`
	Surface physics.Surface `json:"surface"`
	Balls   []BallView      `json:"balls"`
}

func (s Snapshot) KineticEnergy() float64 {
	total := 0.0
	for _, b := range s.Balls {
		total += 0.5 * b.Radius * b.Radius * (b.VX*b.VX + b.VY*b.VY)
	}
	return total
}

type Metric interface {
	Name() string
	Observe(s Snapshot, r physics.StepReport)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s Snapshot, r physics.StepReport)
}

type RunConfig struct {
	Frames        int
	Record        bool
	ValidateState bool
	// BeforeStep, if set, runs before each frame with the frame number about
	// to be stepped. Headless input is injected here.
	BeforeStep func(frame uint64)
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Frames:        600,
		Record:        true,
		ValidateState: true,
	}
}

type Result struct {
	Snapshots  []Snapshot
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

type SimError struct {
	Frame   uint64
	BallID  int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d (ball %d): %s", e.Frame, e.BallID, e.Message)
}
