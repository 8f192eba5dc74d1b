package engine2D

import (
	"math"

	"starfield/internal/starfield"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// ReferenceFPS is the frame rate star velocities are tuned for.
	ReferenceFPS = 60.0
	// MaxFrameDelta caps the simulated step after a stall.
	MaxFrameDelta = 0.1
	// parallaxScale turns a normalized pointer into scene units.
	parallaxScale = 100.0
)

func NewRenderer(sceneWidth, sceneHeight int) *Renderer {
	return &Renderer{
		SceneWidth:  sceneWidth,
		SceneHeight: sceneHeight,
		RenderScale: 1.0,
	}
}

func (r *Renderer) AddLayer(layer *Layer) {
	r.Layers = append(r.Layers, layer)
}

// UpdateViewport calculates and updates render scale and scene offsets based on window size.
func (r *Renderer) UpdateViewport(screenWidth, screenHeight int, scalingMode string) {
	if r.SceneWidth <= 0 || r.SceneHeight <= 0 {
		return
	}
	scaleW := float64(screenWidth) / float64(r.SceneWidth)
	scaleH := float64(screenHeight) / float64(r.SceneHeight)

	if scalingMode == "fit" {
		r.RenderScale = math.Min(scaleW, scaleH)
	} else {
		r.RenderScale = math.Max(scaleW, scaleH)
	}

	r.SceneOffsetX = (float64(screenWidth) - float64(r.SceneWidth)*r.RenderScale) / 2
	r.SceneOffsetY = (float64(screenHeight) - float64(r.SceneHeight)*r.RenderScale) / 2
}

// UpdateMouse updates mouse position in normalized scene coordinates (-1 to 1).
func (r *Renderer) UpdateMouse(screenMouseX, screenMouseY float64) {
	if r.RenderScale == 0 || r.SceneWidth <= 0 || r.SceneHeight <= 0 {
		return
	}
	relMouseX := (screenMouseX - r.SceneOffsetX) / r.RenderScale
	relMouseY := (screenMouseY - r.SceneOffsetY) / r.RenderScale

	r.MouseX = (relMouseX / float64(r.SceneWidth) * 2) - 1.0
	r.MouseY = (relMouseY / float64(r.SceneHeight) * 2) - 1.0
}

// SetPointer sets an already normalized pointer, e.g. the desktop root pointer.
func (r *Renderer) SetPointer(x, y float64) {
	r.MouseX = x
	r.MouseY = y
}

// ParallaxOffset is the scene-space shift of a layer at depth for a
// normalized pointer.
func ParallaxOffset(mouseX, mouseY, amount float64, depth starfield.Vec2) starfield.Vec2 {
	return starfield.Vec2{
		X: mouseX * amount * parallaxScale * depth.X,
		Y: mouseY * amount * parallaxScale * depth.Y,
	}
}

// VelocityMultiplier converts a frame time into the per-update multiplier
// a layer of the given speed passes to StarField.Update. Stars only drift
// downward, so a negative speed counts as stopped.
func VelocityMultiplier(deltaTime, speed float64) float64 {
	if speed < 0 {
		speed = 0
	}
	if deltaTime < 0 {
		deltaTime = 0
	}
	if deltaTime > MaxFrameDelta {
		deltaTime = MaxFrameDelta
	}
	return speed * deltaTime * ReferenceFPS
}

// Update advances every layer by deltaTime seconds.
func (r *Renderer) Update(deltaTime float64) {
	for _, layer := range r.Layers {
		if layer.Field == nil {
			continue
		}
		layer.Offset = ParallaxOffset(r.MouseX, r.MouseY, r.ParallaxAmount, layer.Depth)
		layer.Field.Update(layer.Offset.X, layer.Offset.Y, VelocityMultiplier(deltaTime, layer.Speed))
	}
}

// Render draws all layers back to front, clipped to the scene.
func (r *Renderer) Render() {
	rl.ClearBackground(rl.Black)

	sceneRectX := int32(r.SceneOffsetX)
	sceneRectY := int32(r.SceneOffsetY)
	sceneRectW := int32(float64(r.SceneWidth) * r.RenderScale)
	sceneRectH := int32(float64(r.SceneHeight) * r.RenderScale)

	rl.BeginScissorMode(sceneRectX, sceneRectY, sceneRectW, sceneRectH)
	rl.ClearBackground(rl.NewColor(r.BgColor.R, r.BgColor.G, r.BgColor.B, 255))
	rl.BeginBlendMode(rl.BlendAlpha)

	r.DrawLayers()

	rl.EndBlendMode()
	rl.EndScissorMode()
}

// DrawLayers submits every layer through the renderer batch without
// touching raylib state.
func (r *Renderer) DrawLayers() {
	r.batch.OffsetX = r.SceneOffsetX
	r.batch.OffsetY = r.SceneOffsetY
	r.batch.Scale = r.RenderScale
	r.batch.Reset()

	for _, layer := range r.Layers {
		if layer.Field == nil {
			continue
		}
		layer.Field.Draw(&r.batch)
	}
}

// Draws reports the sprite submissions of the last Render.
func (r *Renderer) Draws() int { return r.batch.Draws() }

// StarCount is the total number of stars across layers.
func (r *Renderer) StarCount() int {
	n := 0
	for _, layer := range r.Layers {
		if layer.Field != nil {
			n += layer.Field.Len()
		}
	}
	return n
}
