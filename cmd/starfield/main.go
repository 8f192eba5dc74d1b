package main

import (
	"flag"
	"math/rand"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"starfield/internal/config"
	"starfield/internal/convert"
	"starfield/internal/engine2D"
	"starfield/internal/preview"
	"starfield/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configPath := flag.String("config", "", "Path to a scene JSON file")
	assetsPath := flag.String("assets", "", "Directory holding star sprites")
	pkgPath := flag.String("pkg", "", "Unpack this .pkg bundle into tmp/ before loading sprites")
	decodePath := flag.String("decode", "", "Convert a single .tex to .png and exit")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	silent := flag.Bool("silent", false, "Disable audio")
	raylibInfo := flag.Bool("raylib-info", false, "Forward raylib info logs")
	seed := flag.Int64("seed", 0, "Random seed, 0 uses the config seed or the clock")
	fps := flag.Int("fps", 60, "Target frame rate")
	scaling := flag.String("scaling", "fill", "Scaling mode: fit or fill")
	globalMouse := flag.Bool("global-mouse", false, "Read the pointer from the X11 root window")
	musicPath := flag.String("music", "", "Looping ambient track")
	volume := flag.Float64("volume", 0.5, "Music volume 0..1")
	tui := flag.Bool("tui", false, "Render in the terminal instead of a window")
	width := flag.Int("width", 0, "Scene width override")
	height := flag.Int("height", 0, "Scene height override")
	flag.Parse()

	utils.DebugMode = *debugFlag
	utils.CurrentLevel = utils.ParseLevel(*logLevel)
	if *debugFlag {
		utils.CurrentLevel = utils.LevelDebug
	}
	utils.SilentMode = *silent
	utils.ShowRaylibInfo = *raylibInfo

	if *decodePath != "" {
		runDecode(*decodePath)
		return
	}

	if *scaling != "fit" && *scaling != "fill" {
		utils.Error("Unknown scaling mode %q", *scaling)
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			utils.Error("Failed to load config: %v", err)
			os.Exit(1)
		}
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		utils.Error("Invalid config: %v", err)
		os.Exit(1)
	}

	utils.DiscoverAssets(*assetsPath)

	if *pkgPath != "" {
		utils.Info("Unpacking %s...", *pkgPath)
		if err := convert.ExtractPkg(*pkgPath, "tmp"); err != nil {
			utils.Error("Failed to extract pkg: %v", err)
			os.Exit(1)
		}
	}

	rng := newRand(cfg.Seed)

	if *tui {
		runTUI(cfg, rng)
		return
	}

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), "Starfield")
	defer rl.CloseWindow()

	atlas := engine2D.NewAtlas(engine2D.AtlasOptions{
		Generators: engine2D.BuiltinStarTextures(cfg.SpriteNames()),
	})
	defer atlas.Unload()

	renderer, err := buildRenderer(cfg, atlas, rng)
	if err != nil {
		utils.Error("Failed to build starfield: %v", err)
		return
	}
	utils.Info("Starfield ready: %d stars in %d layers", renderer.StarCount(), len(renderer.Layers))

	window := NewWindow(renderer, WindowOptions{
		ScalingMode: *scaling,
		TargetFPS:   *fps,
		GlobalMouse: *globalMouse,
		MusicPath:   *musicPath,
		Volume:      *volume,
	})
	defer window.Close()
	window.Run()
}

func runTUI(cfg config.Config, rng *rand.Rand) {
	atlas := preview.NewGlyphAtlas(cfg.SpriteNames())
	renderer, err := buildRenderer(cfg, atlas, rng)
	if err != nil {
		utils.Error("Failed to build starfield: %v", err)
		os.Exit(1)
	}

	p := tea.NewProgram(preview.New(renderer), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		utils.Error("Preview error: %v", err)
		os.Exit(1)
	}
}

func runDecode(texPath string) {
	utils.Info("Decoding %s", texPath)
	img, err := convert.DecodeTexToImage(texPath)
	if err != nil {
		utils.Error("Decode failed: %v", err)
		os.Exit(1)
	}
	outPath, err := convert.WritePNG(img, texPath)
	if err != nil {
		utils.Error("Failed to write PNG: %v", err)
		os.Exit(1)
	}
	utils.Info("Decoded %s -> %s", filepath.Base(texPath), outPath)
}
