// Package screen renders the rain full-screen with tcell.
package screen

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/rng"
	"github.com/san-kum/digirain/internal/theme"
)

type Options struct {
	FPS   int
	Theme string
	Seed  int64
}

// Host owns a tcell screen and the engine drawn on it.
type Host struct {
	screen   tcell.Screen
	engine   *rain.Engine
	interval time.Duration
	seed     int64
	themeIdx int
	paused   bool

	lastFrame time.Time
	fps       float64
}

func New(s tcell.Screen, e *rain.Engine, opts Options) *Host {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	return &Host{
		screen:   s,
		engine:   e,
		interval: time.Second / time.Duration(opts.FPS),
		seed:     opts.Seed,
		themeIdx: theme.Index(opts.Theme),
	}
}

// Run opens the terminal, drives the host until quit or ctx is done, and
// restores the terminal.
func Run(ctx context.Context, e *rain.Engine, opts Options) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	return New(s, e, opts).Run(ctx)
}

// Run ticks and draws at the configured rate while events are read on a
// separate goroutine.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	eventChan := pollEvents(h.screen, done)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if !h.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			h.Frame(now)
		}
	}
}

// pollEvents forwards screen events until PollEvent returns nil or done is
// closed.
func pollEvents(s tcell.Screen, done <-chan struct{}) <-chan tcell.Event {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		defer close(eventChan)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()
	return eventChan
}

// Frame advances the engine unless paused and redraws.
func (h *Host) Frame(now time.Time) {
	if !h.lastFrame.IsZero() {
		if dt := now.Sub(h.lastFrame).Seconds(); dt > 0 {
			h.fps = 0.9*h.fps + 0.1/dt
		}
	}
	h.lastFrame = now

	if !h.paused {
		h.engine.Tick()
	}
	h.Draw()
}

// HandleEvent reacts to input and reports whether the host keeps running.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) handleKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case ' ':
			h.paused = !h.paused
		case 'r':
			h.engine.Reset(rng.New(h.seed))
		case 's':
			h.seed = time.Now().UnixNano()
			h.engine.Reset(rng.New(h.seed))
		case 't':
			h.themeIdx = (h.themeIdx + 1) % len(theme.Themes)
		}
	}
	return true
}

// Draw paints the grid centred on the screen, clipped to its bounds, with a
// status line on the last row.
func (h *Host) Draw() {
	t := theme.Themes[h.themeIdx]
	bg := tcell.GetColor(t.Background)
	base := tcell.StyleDefault.Background(bg)
	glyphStyle := base.Foreground(tcell.GetColor(t.Glyph))
	headStyle := base.Foreground(tcell.GetColor(t.Head)).Bold(true)
	statusStyle := base.Foreground(tcell.GetColor(t.Muted))

	h.screen.SetStyle(base)
	h.screen.Clear()

	w, ht := h.screen.Size()
	grid := h.engine.Grid()
	size := grid.Size()
	ox := max((w-size)/2, 0)
	oy := max((ht-1-size)/2, 0)

	heads := make(map[rain.Cell]bool)
	for _, c := range h.engine.Heads() {
		heads[c] = true
	}

	for row := 0; row < size && oy+row < ht-1; row++ {
		for col := 0; col < size && ox+col < w; col++ {
			r, _ := utf8.DecodeRuneInString(grid.At(col, row))
			style := glyphStyle
			if heads[rain.Cell{Col: col, Row: row}] {
				style = headStyle
			}
			h.screen.SetContent(ox+col, oy+row, r, nil, style)
		}
	}

	status := fmt.Sprintf(" frame %d  fps %.1f  drips %d  %s ", h.engine.Frame(), h.fps, h.engine.Stats().Active, t.Name)
	if h.paused {
		status += " PAUSED "
	}
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		h.screen.SetContent(x, ht-1, r, nil, statusStyle)
		x++
	}

	h.screen.Show()
}
