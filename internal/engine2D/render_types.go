package engine2D

import (
	"image/color"

	"starfield/internal/starfield"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws starfield layers into a fixed-size scene that is scaled
// to the window.
type Renderer struct {
	Layers         []*Layer
	SceneWidth     int
	SceneHeight    int
	SceneOffsetX   float64
	SceneOffsetY   float64
	RenderScale    float64
	BgColor        color.RGBA
	ParallaxAmount float64
	MouseX         float64
	MouseY         float64

	batch Batch
}

// Layer is one StarField plus how the host drives it.
type Layer struct {
	Name  string
	Field *starfield.StarField

	// Depth scales the parallax offset per axis.
	Depth starfield.Vec2
	// Speed multiplies the per-frame drift.
	Speed float64

	Offset starfield.Vec2
}

// Sprite is a texture region handed out by an Atlas. Handles are never
// shared between StarFields, the texture behind them may be.
type Sprite struct {
	name    string
	Texture *rl.Texture2D
	Source  rl.Rectangle
}

func (s *Sprite) Name() string { return s.name }

func (s *Sprite) Width() float32  { return s.Source.Width }
func (s *Sprite) Height() float32 { return s.Source.Height }
