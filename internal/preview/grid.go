// Package preview renders starfield layers as text for a terminal.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"starfield/internal/starfield"
)

// Glyph is the terminal stand-in for a star sprite.
type Glyph struct {
	name string
	Rune rune
}

func (g *Glyph) Name() string { return g.name }

// GlyphAtlas hands out glyph sprites by name.
type GlyphAtlas struct {
	glyphs map[string]rune
}

func NewGlyphAtlas(names starfield.SpriteNames) *GlyphAtlas {
	return &GlyphAtlas{glyphs: map[string]rune{
		names.Large: '✦',
		names.Small: '·',
	}}
}

// CreateSprite implements starfield.SpriteProvider.
func (a *GlyphAtlas) CreateSprite(name string) (starfield.Sprite, error) {
	r, ok := a.glyphs[name]
	if !ok {
		return nil, fmt.Errorf("no glyph for %q", name)
	}
	return &Glyph{name: name, Rune: r}, nil
}

// Grid is a character canvas covering the whole scene.
type Grid struct {
	Cols, Rows  int
	SceneWidth  float64
	SceneHeight float64

	cells []cell
}

type cell struct {
	r     rune
	alpha float64
}

func NewGrid(cols, rows int, sceneWidth, sceneHeight float64) *Grid {
	g := &Grid{SceneWidth: sceneWidth, SceneHeight: sceneHeight}
	g.Resize(cols, rows)
	return g
}

func (g *Grid) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	g.Cols, g.Rows = cols, rows
	g.cells = make([]cell, cols*rows)
}

func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = cell{}
	}
}

// Submit implements starfield.Batch. When two stars land on one cell the
// brighter one is kept.
func (g *Grid) Submit(sprite starfield.Sprite, tint starfield.Color, position starfield.Vec2) {
	glyph, ok := sprite.(*Glyph)
	if !ok {
		return
	}
	col, row, ok := g.Cell(position)
	if !ok {
		return
	}
	c := &g.cells[row*g.Cols+col]
	if c.r != 0 && c.alpha >= tint.A {
		return
	}
	c.r = glyph.Rune
	c.alpha = tint.A
}

// Cell maps a scene position to grid coordinates.
func (g *Grid) Cell(position starfield.Vec2) (int, int, bool) {
	if g.Cols == 0 || g.Rows == 0 || g.SceneWidth <= 0 || g.SceneHeight <= 0 {
		return 0, 0, false
	}
	if position.X < 0 || position.Y < 0 || position.X >= g.SceneWidth || position.Y >= g.SceneHeight {
		return 0, 0, false
	}
	col := int(position.X / g.SceneWidth * float64(g.Cols))
	row := int(position.Y / g.SceneHeight * float64(g.Rows))
	return col, row, true
}

// At returns the glyph and alpha at a cell, zero when empty.
func (g *Grid) At(col, row int) (rune, float64) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return 0, 0
	}
	c := g.cells[row*g.Cols+col]
	return c.r, c.alpha
}

var (
	styleBright = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	styleDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleFaint  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// StyleFor picks the foreground for a star opacity.
func StyleFor(alpha float64) lipgloss.Style {
	switch {
	case alpha >= 0.6:
		return styleBright
	case alpha >= 0.35:
		return styleMedium
	case alpha >= 0.15:
		return styleDim
	default:
		return styleFaint
	}
}

// Render draws the grid rows joined by newlines.
func (g *Grid) Render() string {
	var b strings.Builder
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := g.cells[y*g.Cols+x]
			if c.r == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(StyleFor(c.alpha).Render(string(c.r)))
		}
		if y < g.Rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
