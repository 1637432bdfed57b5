// Package tui provides a live terminal view of a running 1D simulation.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/viz"
	"github.com/Belowme77/Vibrational-Gravity-Theory/internal/wave"
)

type tickMsg time.Time

// Model animates a 1D engine, advancing a few steps per frame.
type Model struct {
	engine       *wave.Engine1D
	stepsPerTick int
	frameRate    int
	step         int
	maxSteps     int
	done         bool
}

func NewModel(engine *wave.Engine1D, maxSteps, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		engine:       engine,
		stepsPerTick: 4,
		frameRate:    frameRate,
		maxSteps:     maxSteps,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		if m.done {
			return m, nil
		}
		for i := 0; i < m.stepsPerTick && m.step < m.maxSteps; i++ {
			m.engine.Step()
			m.step++
		}
		if m.step >= m.maxSteps {
			m.done = true
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	t := float64(m.step) * m.engine.Dt()
	graph := asciigraph.Plot(m.engine.Field().Current(),
		asciigraph.Height(16),
		asciigraph.Width(80),
	)

	status := viz.LabelStyle.Render(fmt.Sprintf("step %d/%d   t = %.3f   q to quit", m.step, m.maxSteps, t))
	if m.done {
		status = viz.StableStyle.Render(fmt.Sprintf("finished at t = %.3f   q to quit", t))
	}
	return viz.Header("vibrational field (1D)") + "\n" + graph + "\n" + status + "\n"
}

// Run blocks until the animation window is closed.
func Run(engine *wave.Engine1D, maxSteps, frameRate int) error {
	_, err := tea.NewProgram(NewModel(engine, maxSteps, frameRate)).Run()
	return err
}
