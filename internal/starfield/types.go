package starfield

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAssetNotFound   = errors.New("asset not found")
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Rect is an axis-aligned area in field-local coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Color channels are in the 0..1 range.
type Color struct {
	R, G, B, A float64
}

type Kind int

const (
	KindLarge Kind = iota
	KindSmall
)

func (k Kind) String() string {
	switch k {
	case KindLarge:
		return "large"
	case KindSmall:
		return "small"
	}
	return "unknown"
}

// ParseKind accepts "large"/"big" and "small" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "large", "big":
		return KindLarge, nil
	case "small":
		return KindSmall, nil
	}
	return 0, fmt.Errorf("%w: unknown star kind %q", ErrInvalidArgument, s)
}

// Sampling selects how positions are drawn from the area.
type Sampling int

const (
	// SamplingLegacy samples x in [X, Width] and y in [Y, Height] and wraps
	// once y passes Height.
	SamplingLegacy Sampling = iota
	// SamplingBounded samples x in [X, X+Width] and y in [Y, Y+Height] and
	// wraps once y passes Y+Height.
	SamplingBounded
)

func (s Sampling) String() string {
	switch s {
	case SamplingLegacy:
		return "legacy"
	case SamplingBounded:
		return "bounded"
	}
	return "unknown"
}

func ParseSampling(s string) (Sampling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return SamplingLegacy, nil
	case "bounded":
		return SamplingBounded, nil
	}
	return 0, fmt.Errorf("%w: unknown sampling mode %q", ErrInvalidArgument, s)
}

// Sprite is a drawable image handed out by a SpriteProvider.
type Sprite interface {
	Name() string
}

type SpriteProvider interface {
	CreateSprite(name string) (Sprite, error)
}

// Batch receives one submission per drawn star. Implementations must not
// retain tint or position beyond the call.
type Batch interface {
	Submit(sprite Sprite, tint Color, position Vec2)
}

// SpriteNames are the logical asset names looked up at construction.
type SpriteNames struct {
	Large string
	Small string
}

var DefaultSpriteNames = SpriteNames{
	Large: "Star1",
	Small: "Star2",
}
