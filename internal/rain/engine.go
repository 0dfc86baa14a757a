// Package rain implements the digital rain animation engine: a fixed grid of
// glyphs, the drips that fall down it, and the per-frame update rule.
//
// An Engine is not safe for concurrent use. Hosts call Tick once per rendered
// frame and then read Grid.
package rain

import (
	"fmt"
	"time"

	"github.com/san-kum/digirain/internal/glyph"
	"github.com/san-kum/digirain/internal/rng"
)

// Observer is notified after every tick.
type Observer interface {
	OnTick(stats TickStats, g *Grid)
}

// Cell addresses one grid position.
type Cell struct {
	Col, Row int
}

// Engine owns the grid and the active drips.
type Engine struct {
	size      int
	params    Params
	rand      rng.Rand
	frame     int64
	grid      *Grid
	drips     []Drip
	scripted  []Drip
	stats     TickStats
	observers []Observer
}

// Option customises an Engine at construction.
type Option func(*Engine)

// WithDrips replaces the random initial population with drips. Each drip is
// copied; non-positive velocities are raised to 1. New rejects drips placed
// outside the grid.
func WithDrips(drips ...Drip) Option {
	return func(e *Engine) {
		e.scripted = make([]Drip, 0, len(drips))
		for _, d := range drips {
			c := d.clone()
			if c.Velocity < 1 {
				c.Velocity = 1
			}
			e.scripted = append(e.scripted, c)
		}
	}
}

// WithObserver registers o to be called after every tick.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// New allocates a blank size×size grid and seeds the initial content drips.
// A nil r is replaced by a time-seeded generator.
func New(size int, p Params, r rng.Rand, opts ...Option) (*Engine, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = rng.New(time.Now().UnixNano())
	}

	e := &Engine{
		size:   size,
		params: p,
		rand:   r,
		grid:   newGrid(size),
	}
	for _, opt := range opts {
		opt(e)
	}
	for i, d := range e.scripted {
		if err := d.validate(size); err != nil {
			return nil, fmt.Errorf("drip %d: %w", i, err)
		}
	}
	e.seed()

	Logger().Info("engine created", "size", size, "drips", len(e.drips))
	return e, nil
}

// AddObserver registers o after construction.
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) seed() {
	if e.scripted != nil {
		e.drips = make([]Drip, 0, len(e.scripted))
		for _, d := range e.scripted {
			e.drips = append(e.drips, d.clone())
		}
		return
	}

	n := e.params.initialPopulation(e.size).Draw(e.rand)
	e.drips = make([]Drip, 0, n*3)
	for i := 0; i < n; i++ {
		e.drips = append(e.drips, e.contentDrip())
	}
}

// Reset clears the grid, rewinds the frame counter and reseeds the drips. A
// non-nil r replaces the engine's random source.
func (e *Engine) Reset(r rng.Rand) {
	if r != nil {
		e.rand = r
	}
	e.frame = 0
	e.stats = TickStats{}
	e.grid.clear()
	e.seed()
	Logger().Info("engine reset", "size", e.size, "drips", len(e.drips))
}

// Tick advances the animation by one frame: it removes expired drips, spawns
// their replacements, then lets every drip advance or flicker.
func (e *Engine) Tick() {
	e.frame++
	stats := TickStats{Frame: e.frame}

	var expiredCols []int
	kept := e.drips[:0]
	for _, d := range e.drips {
		if !d.Expired(e.size) {
			kept = append(kept, d)
			continue
		}
		stats.Expired++
		if d.IsEraser() {
			stats.EraserExpired++
			continue
		}
		stats.ContentExpired++
		expiredCols = append(expiredCols, d.Column)
	}
	e.drips = kept

	for _, col := range expiredCols {
		e.respawn(col)
		stats.Spawned += 3
	}

	period := int64(e.params.Flicker.Draw(e.rand))
	flicker := period > 0 && e.frame%period == 0
	for i := range e.drips {
		d := &e.drips[i]
		if d.Row >= e.size {
			continue
		}
		advance := e.frame%int64(d.Velocity) == 0
		if advance || flicker {
			e.grid.set(d.Column, d.Row, glyph.Choose(e.rand, d.Glyphs))
			stats.Writes++
		}
		if advance {
			d.Row++
		}
	}

	stats.Active = len(e.drips)
	for _, d := range e.drips {
		if d.IsEraser() {
			stats.Erasers++
		} else {
			stats.Content++
		}
	}
	e.stats = stats

	if stats.Expired > 0 {
		Logger().Debug("tick",
			"frame", stats.Frame,
			"expired", stats.Expired,
			"spawned", stats.Spawned,
			"active", stats.Active)
	}
	for _, o := range e.observers {
		o.OnTick(stats, e.grid)
	}
}

// respawn replaces an expired content drip that occupied col with a new
// content drip, an unrelated eraser, and an eraser pinned to col. The new
// drips join the advance pass of the tick that spawned them, so one with a
// velocity dividing the frame ends that tick at row 1.
func (e *Engine) respawn(col int) {
	e.drips = append(e.drips,
		e.contentDrip(),
		Drip{
			Column:    e.rand.IntN(e.size),
			Velocity:  e.params.EraserVelocity.Draw(e.rand),
			Glyphs:    []string{glyph.Blank},
			CreatedAt: e.frame,
		},
		Drip{
			Column:    col,
			Velocity:  e.params.FollowVelocity.Draw(e.rand),
			Glyphs:    []string{glyph.Blank},
			CreatedAt: e.frame,
		},
	)
}

func (e *Engine) contentDrip() Drip {
	count := e.params.GlyphCount.Draw(e.rand)
	return Drip{
		Column:    e.rand.IntN(e.size),
		Velocity:  e.params.ContentVelocity.Draw(e.rand),
		Glyphs:    e.params.Charset.SampleSequence(e.rand, count),
		CreatedAt: e.frame,
	}
}

// Grid returns the current glyph matrix. Callers must treat it as read-only;
// it changes on the next Tick.
func (e *Engine) Grid() *Grid { return e.grid }

// Size returns the grid dimension.
func (e *Engine) Size() int { return e.size }

// Frame returns the number of ticks since creation or the last Reset.
func (e *Engine) Frame() int64 { return e.frame }

// Stats returns the counters of the most recent tick.
func (e *Engine) Stats() TickStats { return e.stats }

// Params returns the ranges the engine draws from.
func (e *Engine) Params() Params { return e.params }

// Drips returns a copy of the active drips, including any that reached the
// bottom this tick and will be removed on the next one.
func (e *Engine) Drips() []Drip {
	out := make([]Drip, len(e.drips))
	for i, d := range e.drips {
		out[i] = d.clone()
	}
	return out
}

// Heads returns the cells most recently reached by content drips, which
// renderers draw highlighted.
func (e *Engine) Heads() []Cell {
	heads := make([]Cell, 0, len(e.drips))
	for _, d := range e.drips {
		if d.IsEraser() || d.Row == 0 {
			continue
		}
		heads = append(heads, Cell{Col: d.Column, Row: d.Row - 1})
	}
	return heads
}
