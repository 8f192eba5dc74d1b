package starfield

import (
	"fmt"
	"math/rand"
	"time"

	"starfield/internal/utils"
)

type Options struct {
	Provider SpriteProvider
	Count    int
	Area     Rect
	Kind     Kind

	// Sprites defaults to DefaultSpriteNames for any empty name.
	Sprites SpriteNames

	// Rand drives placement and wrap. A nil Rand gets a time-seeded source.
	Rand *rand.Rand

	Sampling Sampling
}

// StarField is one parallax layer of drifting stars.
type StarField struct {
	stars    []Star
	area     Rect
	kind     Kind
	sampling Sampling
	rng      *rand.Rand

	large Sprite
	small Sprite
}

// New resolves both star sprites and seeds opts.Count stars.
func New(opts Options) (*StarField, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("%w: star count %d is negative", ErrInvalidArgument, opts.Count)
	}
	if opts.Provider == nil {
		return nil, fmt.Errorf("%w: nil sprite provider", ErrInvalidArgument)
	}
	if opts.Kind != KindLarge && opts.Kind != KindSmall {
		return nil, fmt.Errorf("%w: star kind %d", ErrInvalidArgument, int(opts.Kind))
	}
	if opts.Sampling != SamplingLegacy && opts.Sampling != SamplingBounded {
		return nil, fmt.Errorf("%w: sampling mode %d", ErrInvalidArgument, int(opts.Sampling))
	}

	names := opts.Sprites
	if names.Large == "" {
		names.Large = DefaultSpriteNames.Large
	}
	if names.Small == "" {
		names.Small = DefaultSpriteNames.Small
	}

	large, err := lookupSprite(opts.Provider, names.Large)
	if err != nil {
		return nil, err
	}
	small, err := lookupSprite(opts.Provider, names.Small)
	if err != nil {
		return nil, err
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	sf := &StarField{
		stars:    make([]Star, 0, opts.Count),
		area:     opts.Area,
		kind:     opts.Kind,
		sampling: opts.Sampling,
		rng:      rng,
		large:    large,
		small:    small,
	}

	for i := 0; i < opts.Count; i++ {
		pos := Vec2{X: sf.randomX(), Y: sf.randomY()}
		tier := Tiers[rng.Intn(len(Tiers))]
		sf.stars = append(sf.stars, NewStar(pos, Vec2{X: 0, Y: tier.Velocity}, tier.Opacity))
	}

	utils.Debug("StarField: %d %s stars in area (%.1f, %.1f, %.1f, %.1f), sampling %s",
		opts.Count, opts.Kind, opts.Area.X, opts.Area.Y, opts.Area.Width, opts.Area.Height, opts.Sampling)

	return sf, nil
}

func lookupSprite(provider SpriteProvider, name string) (Sprite, error) {
	sprite, err := provider.CreateSprite(name)
	if err != nil {
		return nil, fmt.Errorf("%w: sprite %q: %v", ErrAssetNotFound, name, err)
	}
	if sprite == nil {
		return nil, fmt.Errorf("%w: sprite %q", ErrAssetNotFound, name)
	}
	return sprite, nil
}

// Update stores the draw offset on every star and advances it downward,
// re-entering at the top edge once it passes the bottom.
func (sf *StarField) Update(offsetX, offsetY, velocityMultiplier float64) {
	bottom := sf.bottom()
	for i := range sf.stars {
		star := &sf.stars[i]
		star.DrawOffset = Vec2{X: offsetX, Y: offsetY}
		star.Position.Y += star.Velocity.Y * velocityMultiplier

		if star.Position.Y > bottom {
			star.Position.X = sf.randomX()
			star.Position.Y = sf.area.Y
		}
	}
}

// Draw submits every star through the sprite that matches the field kind.
func (sf *StarField) Draw(batch Batch) {
	sprite := sf.Sprite()
	for i := range sf.stars {
		star := &sf.stars[i]
		batch.Submit(sprite, star.Color, star.Position.Add(star.DrawOffset))
	}
}

// Sprite returns the handle Draw submits with.
func (sf *StarField) Sprite() Sprite {
	if sf.kind == KindLarge {
		return sf.large
	}
	return sf.small
}

func (sf *StarField) Len() int { return len(sf.stars) }

func (sf *StarField) Kind() Kind { return sf.kind }

func (sf *StarField) Area() Rect { return sf.area }

func (sf *StarField) Sampling() Sampling { return sf.sampling }

// Stars returns a copy of the current star state.
func (sf *StarField) Stars() []Star {
	out := make([]Star, len(sf.stars))
	copy(out, sf.stars)
	return out
}

func (sf *StarField) bottom() float64 {
	if sf.sampling == SamplingBounded {
		return sf.area.Y + sf.area.Height
	}
	return sf.area.Height
}

func (sf *StarField) randomX() float64 {
	if sf.sampling == SamplingBounded {
		return randomRange(sf.rng, sf.area.X, sf.area.X+sf.area.Width)
	}
	return randomRange(sf.rng, sf.area.X, sf.area.Width)
}

func (sf *StarField) randomY() float64 {
	if sf.sampling == SamplingBounded {
		return randomRange(sf.rng, sf.area.Y, sf.area.Y+sf.area.Height)
	}
	return randomRange(sf.rng, sf.area.Y, sf.area.Height)
}

func randomRange(rng *rand.Rand, start, end float64) float64 {
	return start + rng.Float64()*(end-start)
}
