package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/ballsim/internal/control"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 900.0
	DefaultHeight        = 500.0
	DefaultRadius        = 20.0
	DefaultFPS           = 60
	DefaultTheme         = "cyberpunk"
	DefaultDoubleClickMS = 400
)

var (
	// ErrInvalidSurface indicates a non-positive surface dimension.
	ErrInvalidSurface = errors.New("config: surface dimensions must be positive")

	// ErrInvalidPhysics indicates a negative or non-finite physics constant.
	ErrInvalidPhysics = errors.New("config: physics constants must be non-negative")

	// ErrInvalidFPS indicates a non-positive frame rate.
	ErrInvalidFPS = errors.New("config: fps must be positive")

	// ErrNoBalls indicates a scene without balls.
	ErrNoBalls = errors.New("config: scene has no balls")
)

type Config struct {
	Surface       SurfaceConfig `yaml:"surface"`
	Physics       PhysicsConfig `yaml:"physics"`
	FPS           int           `yaml:"fps"`
	Theme         string        `yaml:"theme"`
	DoubleClickMS int           `yaml:"double_click_ms"`
	Balls         []BallConfig  `yaml:"balls"`
}

type SurfaceConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhysicsConfig struct {
	WallRestitution float64 `yaml:"wall_restitution"`
	ImpulseScale    float64 `yaml:"impulse_scale"`
	MaxSpeed        float64 `yaml:"max_speed"`
}

type BallConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
	VX     float64 `yaml:"vx,omitempty"`
	VY     float64 `yaml:"vy,omitempty"`
}

// DefaultConfig is the reference scene: a 900x500 surface with a red and a
// green ball at rest.
func DefaultConfig() *Config {
	return &Config{
		Surface: SurfaceConfig{Width: DefaultWidth, Height: DefaultHeight},
		Physics: PhysicsConfig{
			WallRestitution: physics.DefaultWallRestitution,
			ImpulseScale:    physics.DefaultImpulseScale,
			MaxSpeed:        control.DefaultMaxSpeed,
		},
		FPS:           DefaultFPS,
		Theme:         DefaultTheme,
		DoubleClickMS: DefaultDoubleClickMS,
		Balls: []BallConfig{
			{X: 100, Y: 100, Radius: DefaultRadius, Color: "#ff0000"},
			{X: 500, Y: 200, Radius: DefaultRadius, Color: "#00ff00"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !(c.Surface.Width > 0) || !(c.Surface.Height > 0) {
		return ErrInvalidSurface
	}
	for name, v := range map[string]float64{
		"wall_restitution": c.Physics.WallRestitution,
		"impulse_scale":    c.Physics.ImpulseScale,
		"max_speed":        c.Physics.MaxSpeed,
	} {
		if !(v >= 0) {
			return fmt.Errorf("%s: %w", name, ErrInvalidPhysics)
		}
	}
	if c.FPS <= 0 {
		return ErrInvalidFPS
	}
	if len(c.Balls) == 0 {
		return ErrNoBalls
	}
	surface := c.SurfaceBounds()
	for i, bc := range c.Balls {
		if _, err := control.NormalizeColor(bc.Color); err != nil {
			return fmt.Errorf("ball %d: %q: %w", i, bc.Color, err)
		}
		if err := physics.Validate(bc.ball(i), surface); err != nil {
			return fmt.Errorf("ball %d: %w", i, err)
		}
	}
	return nil
}

func (c *Config) SurfaceBounds() physics.Surface {
	return physics.Surface{Width: c.Surface.Width, Height: c.Surface.Height}
}

func (c *Config) Params() physics.Params {
	return physics.Params{
		WallRestitution: c.Physics.WallRestitution,
		ImpulseScale:    c.Physics.ImpulseScale,
	}
}

// NewWorld builds a world with the configured balls in list order.
func (c *Config) NewWorld() (*sim.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w := sim.New(c.SurfaceBounds(), c.Params())
	for i, bc := range c.Balls {
		b := bc.ball(i)
		b.Color, _ = control.NormalizeColor(bc.Color)
		if err := w.Add(b); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (bc BallConfig) ball(id int) *physics.Ball {
	b := physics.NewBall(id, bc.X, bc.Y, bc.Radius, bc.Color)
	b.Velocity = physics.NewVec2(bc.VX, bc.VY)
	return b
}
