package engine2D

import (
	"fmt"

	"starfield/internal/starfield"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	largeStarSize = 6
	pointStarSize = 2
)

// BuiltinStarTextures generates the two default star sprites so the
// starfield runs without any assets installed.
func BuiltinStarTextures(names starfield.SpriteNames) map[string]TextureGenerator {
	if names.Large == "" {
		names.Large = starfield.DefaultSpriteNames.Large
	}
	if names.Small == "" {
		names.Small = starfield.DefaultSpriteNames.Small
	}
	return map[string]TextureGenerator{
		names.Large: GenerateLargeStarTexture,
		names.Small: GeneratePointStarTexture,
	}
}

func GenerateLargeStarTexture() (*rl.Texture2D, error) {
	img := rl.GenImageGradientRadial(largeStarSize, largeStarSize, 0.2, rl.White, rl.Blank)
	return uploadImage(img, "large star")
}

func GeneratePointStarTexture() (*rl.Texture2D, error) {
	img := rl.GenImageColor(pointStarSize, pointStarSize, rl.White)
	return uploadImage(img, "point star")
}

func uploadImage(img *rl.Image, what string) (*rl.Texture2D, error) {
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if tex.ID == 0 {
		return nil, fmt.Errorf("upload %s texture failed", what)
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return &tex, nil
}
