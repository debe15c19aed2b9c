package config

import (
	"math"
	"sort"
)

// Presets holds named scenes. Each entry is built fresh on lookup so callers
// may modify the result.
var Presets = map[string]func() *Config{
	"reference": DefaultConfig,
	"rack": func() *Config {
		cfg := DefaultConfig()
		cfg.Balls = []BallConfig{{X: 200, Y: 250, Radius: DefaultRadius, Color: "#ffffff", VX: 10}}
		colors := []string{"#ff0000", "#ffcc00", "#0066ff", "#9900cc", "#ff6600", "#00aa44", "#993300", "#222222", "#ff3399", "#33cccc"}
		n := 0
		for row := 0; row < 4; row++ {
			for k := 0; k <= row; k++ {
				x := 600 + float64(row)*2*DefaultRadius*math.Sqrt(3)/2
				y := 250 + (float64(k)-float64(row)/2)*2*DefaultRadius
				cfg.Balls = append(cfg.Balls, BallConfig{X: x, Y: y, Radius: DefaultRadius, Color: colors[n%len(colors)]})
				n++
			}
		}
		return cfg
	},
	"crowd": func() *Config {
		cfg := DefaultConfig()
		cfg.Balls = nil
		colors := []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff", "#00ffff"}
		for i := 0; i < 24; i++ {
			col, row := i%8, i/8
			angle := float64(i) * 2 * math.Pi / 24
			cfg.Balls = append(cfg.Balls, BallConfig{
				X:      100 + float64(col)*100,
				Y:      120 + float64(row)*130,
				Radius: 12 + float64(i%3)*4,
				Color:  colors[i%len(colors)],
				VX:     4 * math.Cos(angle),
				VY:     4 * math.Sin(angle),
			})
		}
		return cfg
	},
	"corner": func() *Config {
		cfg := DefaultConfig()
		cfg.Balls = []BallConfig{
			{X: 820, Y: 420, Radius: DefaultRadius, Color: "#ff0000", VX: 10, VY: 10},
			{X: 80, Y: 80, Radius: 30, Color: "#00ff00", VX: -7, VY: -7},
		}
		return cfg
	},
	"overlap": func() *Config {
		cfg := DefaultConfig()
		cfg.Balls = []BallConfig{
			{X: 440, Y: 250, Radius: DefaultRadius, Color: "#ff0000", VX: 3},
			{X: 460, Y: 250, Radius: DefaultRadius, Color: "#00ff00", VX: -3},
		}
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
