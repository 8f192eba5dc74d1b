// Package debug draws an in-window diagnostics panel over the starfield.
package debug

import (
	"fmt"
	"runtime"
	"time"

	"starfield/internal/engine2D"
	"starfield/internal/starfield"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type DebugOverlay struct {
	Visible           bool
	ShowBoundingBoxes bool

	fontHeight int
	lineHeight int

	counter  frameCounter
	memStats runtime.MemStats
}

func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{
		ShowBoundingBoxes: true,
		fontHeight:        16,
		lineHeight:        22,
		counter:           frameCounter{last: time.Now()},
	}
}

// Update samples frame stats and handles the F9 bounding box toggle. The
// host owns the F8 panel toggle.
func (d *DebugOverlay) Update() {
	if rl.IsKeyPressed(rl.KeyF9) {
		d.ShowBoundingBoxes = !d.ShowBoundingBoxes
	}
	if d.counter.Tick(time.Now()) {
		runtime.ReadMemStats(&d.memStats)
	}
}

func (d *DebugOverlay) Draw(r *engine2D.Renderer) {
	if !d.Visible {
		return
	}

	if d.ShowBoundingBoxes {
		for _, layer := range r.Layers {
			if layer.Field == nil {
				continue
			}
			box := ScreenRect(layer.Field.Area(), layer.Offset, r.RenderScale, r.SceneOffsetX, r.SceneOffsetY)
			rl.DrawRectangleLines(int32(box.X), int32(box.Y), int32(box.Width), int32(box.Height), rl.NewColor(0, 255, 255, 120))
		}
	}

	lines := []string{
		fmt.Sprintf("FPS: %.1f (raylib %d)", d.counter.FPS(), rl.GetFPS()),
		fmt.Sprintf("Frame Time: %.2f ms", rl.GetFrameTime()*1000),
		fmt.Sprintf("Scene: %dx%d @ %.2fx", r.SceneWidth, r.SceneHeight, r.RenderScale),
		fmt.Sprintf("Pointer: %+.2f, %+.2f", r.MouseX, r.MouseY),
		fmt.Sprintf("Stars: %d  Draws: %d", r.StarCount(), r.Draws()),
		fmt.Sprintf("Heap Alloc: %.2f MB", float64(d.memStats.HeapAlloc)/1024/1024),
	}
	lines = append(lines, LayerSummary(r.Layers)...)

	panelH := int32(len(lines)*d.lineHeight + 10)
	rl.DrawRectangle(5, 5, 420, panelH, rl.NewColor(0, 0, 0, 200))
	for i, line := range lines {
		rl.DrawText(line, 12, int32(10+i*d.lineHeight), int32(d.fontHeight), rl.White)
	}
}

// LayerSummary formats one line per layer.
func LayerSummary(layers []*engine2D.Layer) []string {
	out := make([]string, 0, len(layers))
	for i, layer := range layers {
		name := layer.Name
		if name == "" {
			name = fmt.Sprintf("layer %d", i)
		}
		if layer.Field == nil {
			out = append(out, fmt.Sprintf("%s: empty", name))
			continue
		}
		out = append(out, fmt.Sprintf("%s: %d %s stars, speed %.2f, offset %+.1f,%+.1f",
			name, layer.Field.Len(), layer.Field.Kind(), layer.Speed, layer.Offset.X, layer.Offset.Y))
	}
	return out
}

// ScreenRect maps a scene-space area shifted by offset into window pixels.
func ScreenRect(area starfield.Rect, offset starfield.Vec2, renderScale, sceneOffsetX, sceneOffsetY float64) starfield.Rect {
	return starfield.Rect{
		X:      sceneOffsetX + (area.X+offset.X)*renderScale,
		Y:      sceneOffsetY + (area.Y+offset.Y)*renderScale,
		Width:  area.Width * renderScale,
		Height: area.Height * renderScale,
	}
}

type frameCounter struct {
	last   time.Time
	frames int
	fps    float64
}

// Tick counts a frame and reports whether a new FPS sample was taken.
func (c *frameCounter) Tick(now time.Time) bool {
	c.frames++
	elapsed := now.Sub(c.last)
	if elapsed < time.Second {
		return false
	}
	c.fps = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.last = now
	return true
}

func (c *frameCounter) FPS() float64 { return c.fps }
