//go:build ebiten

// Package window renders the rain in a desktop window with ebiten.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/rng"
	"github.com/san-kum/digirain/internal/theme"
)

// Game adapts a rain engine to the ebiten.Game interface.
type Game struct {
	engine   *rain.Engine
	face     font.Face
	cell     int
	seed     int64
	themeIdx int
	paused   bool
}

// New loads the glyph face and wraps the engine.
func New(e *rain.Engine, opts Options) (*Game, error) {
	opts = opts.withDefaults()

	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    float64(opts.Cell) * 0.75,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}

	return &Game{
		engine:   e,
		face:     face,
		cell:     opts.Cell,
		seed:     opts.Seed,
		themeIdx: theme.Index(opts.Theme),
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(e *rain.Engine, opts Options) error {
	opts = opts.withDefaults()
	g, err := New(e, opts)
	if err != nil {
		return err
	}

	side := e.Size() * opts.Cell
	ebiten.SetWindowTitle("digirain")
	ebiten.SetTPS(opts.FPS)
	ebiten.SetWindowSize(side, side)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.Reset(rng.New(g.seed))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.seed = time.Now().UnixNano()
		g.engine.Reset(rng.New(g.seed))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.themeIdx = (g.themeIdx + 1) % len(theme.Themes)
	}

	if !g.paused {
		g.engine.Tick()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	t := theme.Themes[g.themeIdx]
	screen.Fill(theme.RGBA(t.Background))
	glyphColor := theme.RGBA(t.Glyph)
	headColor := theme.RGBA(t.Head)

	heads := make(map[rain.Cell]bool)
	for _, c := range g.engine.Heads() {
		heads[c] = true
	}

	grid := g.engine.Grid()
	size := grid.Size()
	for col := 0; col < size; col++ {
		for row := 0; row < size; row++ {
			s := grid.At(col, row)
			if s == " " {
				continue
			}
			clr := glyphColor
			if heads[rain.Cell{Col: col, Row: row}] {
				clr = headColor
			}
			text.Draw(screen, s, g.face, col*g.cell, (row+1)*g.cell-g.cell/5, clr)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.1f  frame %d", ebiten.ActualFPS(), g.engine.Frame()))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	side := g.engine.Size() * g.cell
	return side, side
}
