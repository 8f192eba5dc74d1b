package main

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"starfield/internal/config"
	"starfield/internal/engine2D"
	"starfield/internal/starfield"
	"starfield/internal/utils"
)

// newRand seeds from the config, or from the clock when the seed is zero.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	utils.Debug("Seed: %d", seed)
	return rand.New(rand.NewSource(seed))
}

// buildRenderer creates one StarField per configured layer. All layers
// share rng so one seed reproduces the whole scene.
func buildRenderer(cfg config.Config, provider starfield.SpriteProvider, rng *rand.Rand) (*engine2D.Renderer, error) {
	sampling, err := starfield.ParseSampling(cfg.Sampling)
	if err != nil {
		return nil, err
	}
	red, green, blue, err := config.ParseColor(cfg.ClearColor)
	if err != nil {
		return nil, err
	}

	r := engine2D.NewRenderer(cfg.Width, cfg.Height)
	r.ParallaxAmount = cfg.ParallaxAmount
	bg := engine2D.ToRaylibColor(starfield.Color{R: red, G: green, B: blue, A: 1})
	r.BgColor = color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255}

	for i, l := range cfg.Layers {
		kind, err := starfield.ParseKind(l.Kind)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, l.Name, err)
		}
		field, err := starfield.New(starfield.Options{
			Provider: provider,
			Count:    l.Count,
			Area:     cfg.LayerArea(l),
			Kind:     kind,
			Sprites:  cfg.SpriteNames(),
			Rand:     rng,
			Sampling: sampling,
		})
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, l.Name, err)
		}
		r.AddLayer(&engine2D.Layer{
			Name:  l.Name,
			Field: field,
			Depth: starfield.Vec2{X: l.ParallaxDepth.X, Y: l.ParallaxDepth.Y},
			Speed: l.Speed,
		})
		utils.Info("Layer %s: %d %s stars", l.Name, l.Count, kind)
	}
	return r, nil
}
