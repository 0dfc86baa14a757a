package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/rng"
	"github.com/san-kum/digirain/internal/theme"
)

const historyCapacity = 240

type TickMsg time.Time

// Options configures a live view.
type Options struct {
	FPS   int
	Theme string
	Seed  int64
}

// Model drives one engine per frame and renders its grid.
type Model struct {
	engine    *rain.Engine
	interval  time.Duration
	seed      int64
	themeIdx  int
	styles    styles
	running   bool
	showStats bool
	history   []float64
	lastFrame time.Time
	fps       float64
	width     int
	height    int
}

// NewModel wraps e. The engine should have been created with a generator
// seeded by opts.Seed so that reset reproduces the same rain.
func NewModel(e *rain.Engine, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	idx := theme.Index(opts.Theme)
	return Model{
		engine:    e,
		interval:  time.Second / time.Duration(opts.FPS),
		seed:      opts.Seed,
		themeIdx:  idx,
		styles:    newStyles(theme.Themes[idx]),
		running:   true,
		showStats: true,
		history:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the engine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset(m.seed)
		case "s":
			m.reset(time.Now().UnixNano())
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(theme.Themes)
			m.styles = newStyles(theme.Themes[m.themeIdx])
		case "h":
			m.showStats = !m.showStats
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case TickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 0.9*m.fps + 0.1/dt
			}
		}
		m.lastFrame = now
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.engine.Tick()
	m.history = append(m.history, float64(m.engine.Stats().Active))
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}
}

func (m *Model) reset(seed int64) {
	m.seed = seed
	m.engine.Reset(rng.New(seed))
	m.history = m.history[:0]
}

// Theme returns the name of the active theme.
func (m Model) Theme() string { return theme.Themes[m.themeIdx].Name }

// Running reports whether the rain is advancing on every frame.
func (m Model) Running() bool { return m.running }

// Frame returns the engine frame counter.
func (m Model) Frame() int64 { return m.engine.Frame() }

func (m Model) View() string {
	canvas := m.styles.canvas.Render(m.renderGrid())
	if !m.showStats {
		return canvas
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.styles.sidebar.Render(m.renderStats()))
}

// renderGrid draws the grid row by row, batching runs of trail glyphs into a
// single styled segment.
func (m Model) renderGrid() string {
	grid := m.engine.Grid()
	heads := make(map[rain.Cell]bool)
	for _, c := range m.engine.Heads() {
		heads[c] = true
	}

	var sb strings.Builder
	var run strings.Builder
	flush := func() {
		if run.Len() > 0 {
			sb.WriteString(m.styles.glyph.Render(run.String()))
			run.Reset()
		}
	}

	size := grid.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			g := grid.At(col, row)
			if heads[rain.Cell{Col: col, Row: row}] {
				flush()
				sb.WriteString(m.styles.head.Render(g))
				continue
			}
			run.WriteString(g)
		}
		flush()
		if row < size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (m Model) renderStats() string {
	t := theme.Themes[m.themeIdx]
	stats := m.engine.Stats()

	status := m.styles.running.Render("RUNNING")
	if !m.running {
		status = m.styles.paused.Render("PAUSED")
	}

	var sb strings.Builder
	sb.WriteString(gradientText("digirain", t.Glyph, t.Head))
	sb.WriteString("  " + status + "\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"frame", fmt.Sprintf("%d", m.engine.Frame())},
		{"fps", fmt.Sprintf("%.1f", m.fps)},
		{"seed", fmt.Sprintf("%d", m.seed)},
		{"active", fmt.Sprintf("%d", stats.Active)},
		{"content", fmt.Sprintf("%d", stats.Content)},
		{"erasers", fmt.Sprintf("%d", stats.Erasers)},
		{"theme", t.Name},
	}
	for _, r := range rows {
		sb.WriteString(m.styles.label.Render(r.label))
		sb.WriteString(m.styles.value.Render(r.value))
		sb.WriteByte('\n')
	}

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.Caption("active drips"),
		)
		sb.WriteString(m.styles.graph.Render(graph))
		sb.WriteByte('\n')
	}

	sb.WriteString(m.styles.help.Render("space pause · n step · r/s reset · t theme · h hide · q quit"))
	return sb.String()
}

// Run starts the live view in the alternate screen and blocks until quit.
func Run(e *rain.Engine, opts Options) error {
	_, err := tea.NewProgram(NewModel(e, opts), tea.WithAltScreen()).Run()
	return err
}
