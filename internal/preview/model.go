package preview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"starfield/internal/engine2D"
)

const frameRate = 33 * time.Millisecond

// pointerStep is how far one arrow key press moves the parallax pointer.
const pointerStep = 0.1

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model drives a Renderer's layers from the bubbletea loop and draws them
// into a Grid.
type Model struct {
	renderer *engine2D.Renderer
	grid     *Grid
	last     time.Time
	paused   bool
	frames   int
}

func New(renderer *engine2D.Renderer) Model {
	return Model{
		renderer: renderer,
		grid:     NewGrid(80, 24, float64(renderer.SceneWidth), float64(renderer.SceneHeight)),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameTick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
		case "left":
			m.nudge(-pointerStep, 0)
		case "right":
			m.nudge(pointerStep, 0)
		case "up":
			m.nudge(0, -pointerStep)
		case "down":
			m.nudge(0, pointerStep)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// Last row is the status line.
		m.grid.Resize(msg.Width, msg.Height-1)
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		dt := 0.0
		if !m.last.IsZero() {
			dt = now.Sub(m.last).Seconds()
		}
		m.last = now
		if !m.paused {
			m.renderer.Update(dt)
		}
		m.frames++
		return m, frameTick()
	}
	return m, nil
}

func (m *Model) nudge(dx, dy float64) {
	m.renderer.SetPointer(clampUnit(m.renderer.MouseX+dx), clampUnit(m.renderer.MouseY+dy))
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

// View implements tea.Model.
func (m Model) View() string {
	m.grid.Clear()
	for _, layer := range m.renderer.Layers {
		if layer.Field != nil {
			layer.Field.Draw(m.grid)
		}
	}

	state := "running"
	if m.paused {
		state = "paused"
	}
	status := fmt.Sprintf(" %d stars  %d layers  %s  pointer %+.1f,%+.1f  [p] pause  [arrows] parallax  [q] quit",
		m.renderer.StarCount(), len(m.renderer.Layers), state, m.renderer.MouseX, m.renderer.MouseY)

	return m.grid.Render() + "\n" + statusStyle.Render(status)
}
