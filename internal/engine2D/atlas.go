package engine2D

import (
	"errors"
	"fmt"

	"starfield/internal/convert"
	"starfield/internal/starfield"
	"starfield/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type TextureLoader func(path string) (*rl.Texture2D, error)

type TextureGenerator func() (*rl.Texture2D, error)

type AtlasOptions struct {
	// Loader uploads a sprite file. Defaults to convert.LoadTextureNative.
	Loader TextureLoader
	// Find maps a sprite name to a file. Defaults to utils.FindTextureFile.
	Find func(name string) string
	// Generators supply textures for names without a file on disk.
	Generators map[string]TextureGenerator
}

// Atlas resolves sprite names to textures, loading each texture once.
type Atlas struct {
	loader     TextureLoader
	find       func(name string) string
	generators map[string]TextureGenerator
	textures   map[string]*rl.Texture2D
}

func NewAtlas(opts AtlasOptions) *Atlas {
	a := &Atlas{
		loader:     opts.Loader,
		find:       opts.Find,
		generators: opts.Generators,
		textures:   make(map[string]*rl.Texture2D),
	}
	if a.loader == nil {
		a.loader = convert.LoadTextureNative
	}
	if a.find == nil {
		a.find = utils.FindTextureFile
	}
	if a.generators == nil {
		a.generators = map[string]TextureGenerator{}
	}
	return a
}

// CreateSprite returns a new handle for name. Files on disk win over
// generated textures.
func (a *Atlas) CreateSprite(name string) (starfield.Sprite, error) {
	tex, err := a.texture(name)
	if err != nil {
		return nil, err
	}
	return &Sprite{
		name:    name,
		Texture: tex,
		Source:  rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height)),
	}, nil
}

func (a *Atlas) texture(name string) (*rl.Texture2D, error) {
	if tex, ok := a.textures[name]; ok {
		return tex, nil
	}

	var loadErr error
	if path := a.find(name); path != "" {
		tex, err := a.loader(path)
		if err == nil {
			utils.Debug("Atlas: %s -> %s (%dx%d)", name, path, tex.Width, tex.Height)
			a.textures[name] = tex
			return tex, nil
		}
		utils.Warn("Atlas: failed to load %s from %s: %v", name, path, err)
		loadErr = err
	}

	if gen, ok := a.generators[name]; ok {
		tex, err := gen()
		if err != nil {
			return nil, fmt.Errorf("generate sprite %q: %w", name, errors.Join(err, loadErr))
		}
		utils.Debug("Atlas: %s -> built-in (%dx%d)", name, tex.Width, tex.Height)
		a.textures[name] = tex
		return tex, nil
	}

	if loadErr != nil {
		return nil, fmt.Errorf("%w: %q: %v", starfield.ErrAssetNotFound, name, loadErr)
	}
	return nil, fmt.Errorf("%w: %q", starfield.ErrAssetNotFound, name)
}

// Loaded reports how many distinct textures are resident.
func (a *Atlas) Loaded() int { return len(a.textures) }

// Unload frees every texture. Sprites created earlier must not be drawn
// afterwards.
func (a *Atlas) Unload() {
	for name, tex := range a.textures {
		if tex.ID != 0 {
			rl.UnloadTexture(*tex)
		}
		delete(a.textures, name)
	}
}
