package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/ballsim/internal/sim"
)

// ErrNoCandidates indicates that every grid point failed to build or run.
var ErrNoCandidates = errors.New("optim: no grid point produced the metric")

// Builder returns a fresh world for one parameter assignment.
type Builder func(params map[string]float64) (*sim.World, error)

// Point is one evaluated grid assignment.
type Point struct {
	Params map[string]float64
	Value  float64
}

// GridSearch evaluates a metric over the cartesian product of parameter
// ranges and keeps the lowest value.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every grid point for cfg.Frames frames. It returns the best
// point and all evaluated points in grid order.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string, cfg sim.RunConfig) (Point, []Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Point{}, nil, fmt.Errorf("optim: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Point{Value: math.Inf(1)}
	var all []Point

	err := g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, cfg, &best, &all)
	if err != nil {
		return Point{}, all, err
	}
	if best.Params == nil {
		return Point{}, all, ErrNoCandidates
	}
	return best, all, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build Builder,
	metricName string,
	cfg sim.RunConfig,
	best *Point,
	all *[]Point,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		w, err := build(current)
		if err != nil {
			return nil
		}

		result, err := w.Run(ctx, cfg)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return nil
		}

		p := Point{Params: copyParams(current), Value: val}
		*all = append(*all, p)
		if val < best.Value {
			*best = p
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := copyParams(current)
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, build, metricName, cfg, best, all); err != nil {
			return err
		}
	}
	return nil
}

// Uniform reports whether every evaluated point has the same value, in which
// case the best point carries no information.
func Uniform(points []Point) bool {
	for _, p := range points[min(1, len(points)):] {
		if p.Value != points[0].Value {
			return false
		}
	}
	return true
}

func copyParams(p map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
