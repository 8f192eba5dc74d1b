package engine2D

import (
	"starfield/internal/starfield"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Batch draws star submissions in screen space. Positions arrive in
// scene coordinates and are mapped through the renderer viewport.
type Batch struct {
	OffsetX float64
	OffsetY float64
	Scale   float64

	draws int
}

// Submit implements starfield.Batch.
func (b *Batch) Submit(sprite starfield.Sprite, tint starfield.Color, position starfield.Vec2) {
	s, ok := sprite.(*Sprite)
	if !ok || s.Texture == nil {
		return
	}
	rl.DrawTexturePro(*s.Texture, s.Source, b.Dest(s, position), rl.NewVector2(0, 0), 0, ToRaylibColor(tint))
	b.draws++
}

// Dest is the screen rectangle a sprite covers when its top-left corner
// sits at position.
func (b *Batch) Dest(s *Sprite, position starfield.Vec2) rl.Rectangle {
	scale := b.Scale
	if scale <= 0 {
		scale = 1
	}
	return rl.NewRectangle(
		float32(b.OffsetX+position.X*scale),
		float32(b.OffsetY+position.Y*scale),
		s.Width()*float32(scale),
		s.Height()*float32(scale),
	)
}

// Draws returns the submissions since the last Reset.
func (b *Batch) Draws() int { return b.draws }

func (b *Batch) Reset() { b.draws = 0 }

func ToRaylibColor(c starfield.Color) rl.Color {
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
