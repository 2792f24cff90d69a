package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Board dimensions. They never change after construction.
const (
	Width  = 8
	Height = 22
)

// maxClearPerLock is the most rows a single piece can complete.
const maxClearPerLock = 4

// Cell is one board position. Occupancy is Filled alone; Color is
// rendering metadata carried from the piece that filled it.
type Cell struct {
	Filled bool
	Color  core.Color
}

// Board is the fixed-size well, indexed [row][col] with row 0 at the top.
type Board [Height][Width]Cell

// InBounds reports whether (x, y) lies inside the well.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Filled reports whether the cell at (x, y) is occupied.
// Out-of-bounds positions are not filled.
func (b *Board) Filled(x, y int) bool {
	if !InBounds(x, y) {
		return false
	}
	return b[y][x].Filled
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	for x := 0; x < Width; x++ {
		if !b[y][x].Filled {
			return false
		}
	}
	return true
}

// FullRows returns the indexes of all complete rows, top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for y := 0; y < Height; y++ {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// Freeze merges the piece into the board and clears completed rows,
// returning how many were cleared. Tiles outside the well are dropped;
// that only happens from an already invalid placement.
func (b *Board) Freeze(p Piece) int {
	color := p.Kind.Color()
	p.Tiles(func(x, y int) bool {
		if InBounds(x, y) {
			b[y][x] = Cell{Filled: true, Color: color}
		}
		return true
	})

	cleared := b.ClearFullRows()
	if cleared > maxClearPerLock {
		panic(fmt.Sprintf("tetris: cleared %d rows in one lock", cleared))
	}
	return cleared
}

// ClearFullRows removes every complete row, scanning from the bottom up.
// Rows above a cleared row shift down by one and an empty row enters at
// the top; the scan stays on the same index so the row that slid into it
// is checked too.
func (b *Board) ClearFullRows() int {
	cleared := 0
	for y := Height - 1; y >= 0; {
		if !b.RowFull(y) {
			y--
			continue
		}
		for i := y; i > 0; i-- {
			b[i] = b[i-1]
		}
		b[0] = [Width]Cell{}
		cleared++
	}
	return cleared
}
