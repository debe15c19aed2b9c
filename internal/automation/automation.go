package automation

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	ActionDrag    = "drag"
	ActionRecolor = "recolor"
)

// ErrUnknownAction indicates a scenario step with an unsupported action.
var ErrUnknownAction = errors.New("automation: unknown action")

// Scenario is a scripted sequence of pointer gestures for headless runs.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Steps       []Gesture `yaml:"steps"`
}

// Gesture is applied right before the given frame is stepped. A drag presses
// at From, moves to To and releases. A recolor double-clicks At and confirms
// Color.
type Gesture struct {
	Frame  uint64       `yaml:"frame"`
	Action string       `yaml:"action"`
	From   physics.Vec2 `yaml:"from,omitempty"`
	To     physics.Vec2 `yaml:"to,omitempty"`
	At     physics.Vec2 `yaml:"at,omitempty"`
	Color  string       `yaml:"color,omitempty"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	for i, g := range s.Steps {
		switch g.Action {
		case ActionDrag:
		case ActionRecolor:
			if _, err := control.NormalizeColor(g.Color); err != nil {
				return fmt.Errorf("step %d: %q: %w", i+1, g.Color, err)
			}
		default:
			return fmt.Errorf("step %d: %q: %w", i+1, g.Action, ErrUnknownAction)
		}
	}
	return nil
}

// Script replays a scenario through a pointer controller.
type Script struct {
	pointer *control.Pointer
	steps   []Gesture
	next    int
	applied int
	missed  int
}

func NewScript(s *Scenario, pointer *control.Pointer) *Script {
	steps := make([]Gesture, len(s.Steps))
	copy(steps, s.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Frame < steps[j].Frame })
	return &Script{pointer: pointer, steps: steps}
}

// BeforeStep applies every gesture scheduled at or before frame. It fits
// sim.RunConfig.BeforeStep.
func (s *Script) BeforeStep(frame uint64) {
	for s.next < len(s.steps) && s.steps[s.next].Frame <= frame {
		g := s.steps[s.next]
		s.next++

		if s.apply(g) {
			s.applied++
		} else {
			s.missed++
			log.Printf("frame %d: %s missed every ball", frame, g.Action)
		}
	}
}

func (s *Script) apply(g Gesture) bool {
	switch g.Action {
	case ActionDrag:
		if !s.pointer.Press(g.From.X, g.From.Y) {
			return false
		}
		s.pointer.Move(g.To.X, g.To.Y)
		s.pointer.Release()
		return true
	case ActionRecolor:
		if !s.pointer.DoubleClick(g.At.X, g.At.Y) {
			return false
		}
		if err := s.pointer.ConfirmColor(g.Color); err != nil {
			s.pointer.DismissColor()
			return false
		}
		return true
	}
	return false
}

// Applied and Missed count gestures that hit and missed a ball.
func (s *Script) Applied() int { return s.applied }
func (s *Script) Missed() int  { return s.missed }

// Done reports whether every gesture has been replayed.
func (s *Script) Done() bool { return s.next >= len(s.steps) }
