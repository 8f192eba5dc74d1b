package main

import (
	"time"

	"starfield/internal/audio"
	"starfield/internal/debug"
	"starfield/internal/engine2D"
	"starfield/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type WindowOptions struct {
	ScalingMode string
	TargetFPS   int
	GlobalMouse bool
	MusicPath   string
	Volume      float64
}

type Window struct {
	renderer      *engine2D.Renderer
	audioManager  *audio.AudioManager
	debugOverlay  *debug.DebugOverlay
	opts          WindowOptions
	lastFrameTime time.Time
	globalMouse   bool
}

func NewWindow(renderer *engine2D.Renderer, opts WindowOptions) *Window {
	window := &Window{
		renderer:      renderer,
		audioManager:  audio.NewAudioManager(),
		debugOverlay:  debug.NewDebugOverlay(),
		opts:          opts,
		lastFrameTime: time.Now(),
	}

	if opts.GlobalMouse {
		if err := utils.InitX11(); err != nil {
			utils.Warn("X11 pointer unavailable, using window mouse: %v", err)
		} else {
			window.globalMouse = true
		}
	}

	if opts.MusicPath != "" {
		if err := window.audioManager.Play(opts.MusicPath, opts.Volume, true); err != nil {
			utils.Error("Failed to play %s: %v", opts.MusicPath, err)
		}
	}

	return window
}

func (window *Window) Run() {
	rl.SetTargetFPS(int32(window.opts.TargetFPS))

	for !rl.WindowShouldClose() {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func (window *Window) Update() {
	currentTime := time.Now()
	deltaTime := currentTime.Sub(window.lastFrameTime).Seconds()
	window.lastFrameTime = currentTime

	window.renderer.UpdateViewport(rl.GetScreenWidth(), rl.GetScreenHeight(), window.opts.ScalingMode)
	window.updatePointer()
	window.renderer.Update(deltaTime)

	window.audioManager.Update()

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
		window.debugOverlay.Visible = utils.ShowDebugUI
	}
	if utils.ShowDebugUI {
		window.debugOverlay.Update()
	}
}

func (window *Window) updatePointer() {
	if window.globalMouse {
		x, y, err := utils.GetGlobalMousePosition()
		if err == nil {
			nx, ny := utils.NormalizePointer(float64(x), float64(y), utils.XWidth, utils.XHeight)
			window.renderer.SetPointer(nx, ny)
			return
		}
		utils.Warn("X11 pointer query failed, falling back to window mouse: %v", err)
		window.globalMouse = false
	}

	mPos := rl.GetMousePosition()
	window.renderer.UpdateMouse(float64(mPos.X), float64(mPos.Y))
}

func (window *Window) Draw() {
	window.renderer.Render()

	if utils.ShowDebugUI {
		window.debugOverlay.Draw(window.renderer)
	}
}

func (window *Window) Close() {
	window.audioManager.Close()
	if window.globalMouse {
		utils.CloseX11()
	}
}
