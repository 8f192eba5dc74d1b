package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"starfield/internal/starfield"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if len(cfg.Layers) != 3 {
		t.Errorf("default layers = %d, want 3", len(cfg.Layers))
	}
}

func TestParse_Overrides(t *testing.T) {
	data := []byte(`{
		"width": 800,
		"height": 600,
		"sampling": "bounded",
		"seed": 99,
		"layers": [
			{"name": "dust", "count": 500, "kind": "small", "speed": 0.3,
			 "area": {"x": 0, "y": 100, "width": 800, "height": 400}}
		]
	}`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 || cfg.Seed != 99 {
		t.Errorf("scene = %dx%d seed %d", cfg.Width, cfg.Height, cfg.Seed)
	}
	if cfg.ParallaxAmount != Default().ParallaxAmount {
		t.Errorf("parallax amount not defaulted: %v", cfg.ParallaxAmount)
	}
	if len(cfg.Layers) != 1 || cfg.Layers[0].Name != "dust" {
		t.Fatalf("layers = %+v", cfg.Layers)
	}

	area := cfg.LayerArea(cfg.Layers[0])
	if area != (starfield.Rect{X: 0, Y: 100, Width: 800, Height: 400}) {
		t.Errorf("LayerArea() = %+v", area)
	}
}

func TestParse_KeepsDefaultLayers(t *testing.T) {
	cfg, err := Parse([]byte(`{"parallax_amount": 0.5}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cfg.Layers) != len(Default().Layers) {
		t.Errorf("layers = %d, want defaults", len(cfg.Layers))
	}
	if got := cfg.LayerArea(cfg.Layers[0]); got.Width != 1280 || got.Height != 720 {
		t.Errorf("default area = %+v", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"negative count", `{"layers": [{"name": "a", "count": -2, "kind": "small"}]}`, "negative"},
		{"negative speed", `{"layers": [{"name": "up", "count": 5, "kind": "small", "speed": -2}]}`, "speed -2 is negative"},
		{"bad kind", `{"layers": [{"name": "a", "count": 2, "kind": "huge"}]}`, "huge"},
		{"bad sampling", `{"sampling": "wide"}`, "wide"},
		{"bad color", `{"clear_color": "1 0"}`, "three components"},
		{"bad size", `{"width": 0}`, "scene size"},
		{"empty area", `{"layers": [{"name": "a", "count": 1, "kind": "large", "area": {"width": 0, "height": 5}}]}`, "positive size"},
		{"not json", `{`, "unexpected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() returned nil error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParse_KindErrorWraps(t *testing.T) {
	_, err := Parse([]byte(`{"layers": [{"name": "a", "count": 1, "kind": "huge"}]}`))
	if !errors.Is(err, starfield.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(`{"width": 640, "height": 480}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Width != 640 {
		t.Errorf("Width = %d, want 640", cfg.Width)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !os.IsNotExist(err) {
		t.Errorf("Load(missing) error = %v", err)
	}
}

func TestParseColor(t *testing.T) {
	r, g, b, err := ParseColor("0.1 0.5 1")
	if err != nil || r != 0.1 || g != 0.5 || b != 1 {
		t.Errorf("ParseColor() = %v %v %v %v", r, g, b, err)
	}
	if _, _, _, err := ParseColor("0.1 2 0"); err == nil {
		t.Error("ParseColor() accepted out of range component")
	}
}
