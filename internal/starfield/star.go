package starfield

// Tier pairs a drift speed with the brightness that goes with it.
type Tier struct {
	Velocity float64
	Opacity  float64
}

// Tiers are ordered fastest/brightest first.
var Tiers = [3]Tier{
	{Velocity: 1.2, Opacity: 0.65},
	{Velocity: 0.77, Opacity: 0.40},
	{Velocity: 0.44, Opacity: 0.18},
}

type Star struct {
	Position Vec2
	Velocity Vec2
	Color    Color

	// DrawOffset is overwritten on every update and only read by Draw.
	DrawOffset Vec2
}

func NewStar(position, velocity Vec2, opacity float64) Star {
	return Star{
		Position: position,
		Velocity: velocity,
		Color:    Color{R: 1, G: 1, B: 1, A: opacity},
	}
}
