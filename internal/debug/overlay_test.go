package debug

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"starfield/internal/engine2D"
	"starfield/internal/starfield"
)

type testSprite string

func (s testSprite) Name() string { return string(s) }

type testProvider struct{}

func (testProvider) CreateSprite(name string) (starfield.Sprite, error) {
	return testSprite(name), nil
}

func TestLayerSummary(t *testing.T) {
	field, err := starfield.New(starfield.Options{
		Provider: testProvider{},
		Count:    12,
		Area:     starfield.Rect{Width: 100, Height: 100},
		Kind:     starfield.KindSmall,
		Rand:     rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatal(err)
	}

	got := LayerSummary([]*engine2D.Layer{
		{Name: "far", Field: field, Speed: 0.5, Offset: starfield.Vec2{X: 2, Y: -1}},
		{Field: nil},
	})

	if len(got) != 2 {
		t.Fatalf("LayerSummary() = %d lines, want 2", len(got))
	}
	want := "far: 12 small stars, speed 0.50, offset +2.0,-1.0"
	if got[0] != want {
		t.Errorf("line 0 = %q, want %q", got[0], want)
	}
	if !strings.HasPrefix(got[1], "layer 1") {
		t.Errorf("line 1 = %q", got[1])
	}
}

func TestScreenRect(t *testing.T) {
	tests := []struct {
		name   string
		area   starfield.Rect
		offset starfield.Vec2
		scale  float64
		offX   float64
		offY   float64
		want   starfield.Rect
	}{
		{"identity", starfield.Rect{Width: 100, Height: 50}, starfield.Vec2{}, 1, 0, 0, starfield.Rect{Width: 100, Height: 50}},
		{"scaled", starfield.Rect{X: 10, Y: 10, Width: 100, Height: 50}, starfield.Vec2{}, 2, 0, 0, starfield.Rect{X: 20, Y: 20, Width: 200, Height: 100}},
		{"letterboxed with parallax", starfield.Rect{Width: 100, Height: 50}, starfield.Vec2{X: 5, Y: -5}, 1, 0, 60, starfield.Rect{X: 5, Y: 55, Width: 100, Height: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScreenRect(tt.area, tt.offset, tt.scale, tt.offX, tt.offY); got != tt.want {
				t.Errorf("ScreenRect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFrameCounter(t *testing.T) {
	start := time.Unix(0, 0)
	c := frameCounter{last: start}

	for i := 1; i < 30; i++ {
		if c.Tick(start.Add(time.Duration(i) * time.Second / 30)) {
			t.Fatalf("sampled early at frame %d", i)
		}
	}
	if !c.Tick(start.Add(time.Second)) {
		t.Fatal("no sample after one second")
	}
	if c.FPS() != 30 {
		t.Errorf("FPS() = %v, want 30", c.FPS())
	}
}
