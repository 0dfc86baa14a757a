package rain

import (
	"strings"

	"github.com/san-kum/digirain/internal/glyph"
)

// Grid is a fixed S×S matrix of glyphs addressed by (column, row). Cells are
// stored column-major because drips walk down a single column.
//
// Only the engine writes to a Grid; everything exported here is read-only.
type Grid struct {
	size  int
	cells []string
}

func newGrid(size int) *Grid {
	cells := make([]string, size*size)
	for i := range cells {
		cells[i] = glyph.Blank
	}
	return &Grid{size: size, cells: cells}
}

// Size returns S.
func (g *Grid) Size() int { return g.size }

// At returns the glyph at (col, row). Out of range coordinates read as blank.
func (g *Grid) At(col, row int) string {
	if col < 0 || col >= g.size || row < 0 || row >= g.size {
		return glyph.Blank
	}
	return g.cells[col*g.size+row]
}

func (g *Grid) set(col, row int, v string) {
	g.cells[col*g.size+row] = v
}

func (g *Grid) clear() {
	for i := range g.cells {
		g.cells[i] = glyph.Blank
	}
}

// Rows returns a copy of the grid laid out row by row, the order renderers
// draw in.
func (g *Grid) Rows() [][]string {
	rows := make([][]string, g.size)
	for row := range rows {
		line := make([]string, g.size)
		for col := range line {
			line[col] = g.cells[col*g.size+row]
		}
		rows[row] = line
	}
	return rows
}

// Clone returns an independent snapshot.
func (g *Grid) Clone() *Grid {
	cells := make([]string, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}

// Equal reports whether both grids hold the same glyphs.
func (g *Grid) Equal(o *Grid) bool {
	if g.size != o.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Filled counts the non-blank cells.
func (g *Grid) Filled() int {
	n := 0
	for _, c := range g.cells {
		if c != glyph.Blank {
			n++
		}
	}
	return n
}

// String renders the grid as lines of glyphs, one line per row.
func (g *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			sb.WriteString(g.cells[col*g.size+row])
		}
		if row < g.size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
