// Package config loads the starfield scene description.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"starfield/internal/starfield"
)

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Area struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Layer struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Kind  string `json:"kind"`

	// Area defaults to the whole scene when omitted.
	Area *Area `json:"area,omitempty"`

	Speed         float64 `json:"speed"`
	ParallaxDepth Vec2    `json:"parallax_depth"`
}

type Sprites struct {
	Large string `json:"large"`
	Small string `json:"small"`
}

type Config struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	ClearColor     string  `json:"clear_color"`
	ParallaxAmount float64 `json:"parallax_amount"`
	Sampling       string  `json:"sampling"`
	Seed           int64   `json:"seed"`
	Sprites        Sprites `json:"sprites"`
	Layers         []Layer `json:"layers"`
}

// Default is a 1280x720 scene with two point-star layers behind one layer
// of large stars.
func Default() Config {
	return Config{
		Width:          1280,
		Height:         720,
		ClearColor:     "0.02 0.02 0.06",
		ParallaxAmount: 0.15,
		Sampling:       "legacy",
		Sprites: Sprites{
			Large: starfield.DefaultSpriteNames.Large,
			Small: starfield.DefaultSpriteNames.Small,
		},
		Layers: []Layer{
			{Name: "far", Count: 220, Kind: "small", Speed: 0.5, ParallaxDepth: Vec2{X: 0.2, Y: 0.2}},
			{Name: "mid", Count: 120, Kind: "small", Speed: 1.0, ParallaxDepth: Vec2{X: 0.5, Y: 0.5}},
			{Name: "near", Count: 40, Kind: "large", Speed: 1.6, ParallaxDepth: Vec2{X: 1, Y: 1}},
		},
	}
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse overlays data on Default and validates the result. A file that
// lists layers replaces the default layers entirely.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.Layers = nil
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Layers == nil {
		cfg.Layers = Default().Layers
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("scene size %dx%d must be positive", c.Width, c.Height))
	}
	if _, err := starfield.ParseSampling(c.Sampling); err != nil {
		errs = append(errs, err)
	}
	if _, _, _, err := ParseColor(c.ClearColor); err != nil {
		errs = append(errs, err)
	}
	for i, l := range c.Layers {
		if l.Count < 0 {
			errs = append(errs, fmt.Errorf("layer %d (%s): count %d is negative", i, l.Name, l.Count))
		}
		if l.Speed < 0 {
			errs = append(errs, fmt.Errorf("layer %d (%s): speed %v is negative", i, l.Name, l.Speed))
		}
		if _, err := starfield.ParseKind(l.Kind); err != nil {
			errs = append(errs, fmt.Errorf("layer %d (%s): %w", i, l.Name, err))
		}
		if l.Area != nil && (l.Area.Width <= 0 || l.Area.Height <= 0) {
			errs = append(errs, fmt.Errorf("layer %d (%s): area must have a positive size", i, l.Name))
		}
	}
	return errors.Join(errs...)
}

// LayerArea returns the layer's area, or the whole scene.
func (c Config) LayerArea(l Layer) starfield.Rect {
	if l.Area == nil {
		return starfield.Rect{X: 0, Y: 0, Width: float64(c.Width), Height: float64(c.Height)}
	}
	return starfield.Rect{X: l.Area.X, Y: l.Area.Y, Width: l.Area.Width, Height: l.Area.Height}
}

func (c Config) SpriteNames() starfield.SpriteNames {
	return starfield.SpriteNames{Large: c.Sprites.Large, Small: c.Sprites.Small}
}

// ParseColor reads a "r g b" string with channels in 0..1.
func ParseColor(s string) (float64, float64, float64, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("color %q: want three components", s)
	}
	var rgb [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("color %q: %w", s, err)
		}
		if v < 0 || v > 1 {
			return 0, 0, 0, fmt.Errorf("color %q: component %v out of range", s, v)
		}
		rgb[i] = v
	}
	return rgb[0], rgb[1], rgb[2], nil
}
