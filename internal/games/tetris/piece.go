// Package tetris implements the falling-block engine: piece catalog, 7-bag
// randomizer, board, placement with wall kicks, scoring and the lock-delay
// state machine. It never renders and never reads files; collaborators see
// it only through Snapshot, core.Action and the Runner hooks.
package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ

	kindCount = 7
)

// Kinds lists every piece kind in catalog order.
var Kinds = [kindCount]Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if int(k) < kindCount {
		return string("IJLOSTZ"[k])
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Color returns the display color of the kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorCyan
	case KindJ:
		return core.ColorBlue
	case KindL:
		return core.ColorOrange
	case KindO:
		return core.ColorYellow
	case KindS:
		return core.ColorGreen
	case KindT:
		return core.ColorPurple
	case KindZ:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}

// maxShapeSize is the side of the largest mask (the I piece).
const maxShapeSize = 4

// Shape is a square tile mask for one orientation of a kind.
type Shape struct {
	Size  int
	Cells [maxShapeSize][maxShapeSize]bool // [row][col]
}

// Filled reports whether the mask has a tile at column x, row y.
func (s Shape) Filled(x, y int) bool {
	if x < 0 || y < 0 || x >= s.Size || y >= s.Size {
		return false
	}
	return s.Cells[y][x]
}

// Rotation indexes the four orientations; 0 is the spawn orientation
// and each clockwise step adds one.
type Rotation uint8

// Direction is the sense of a rotation request.
type Direction int8

const (
	Clockwise Direction = iota
	CounterClockwise
)

// Turn returns the orientation one step from r in the given direction.
func (r Rotation) Turn(dir Direction) Rotation {
	if dir == Clockwise {
		return (r + 1) % 4
	}
	return (r + 3) % 4
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

// patterns holds the orientation masks, '#' for a tile.
var patterns = [kindCount][4][]string{
	KindI: {
		{"....", "####", "....", "...."},
		{"..#.", "..#.", "..#.", "..#."},
		{"....", "....", "####", "...."},
		{".#..", ".#..", ".#..", ".#.."},
	},
	KindJ: {
		{"#..", "###", "..."},
		{".##", ".#.", ".#."},
		{"...", "###", "..#"},
		{".#.", ".#.", "##."},
	},
	KindL: {
		{"..#", "###", "..."},
		{".#.", ".#.", ".##"},
		{"...", "###", "#.."},
		{"##.", ".#.", ".#."},
	},
	KindO: {
		{"##", "##"},
		{"##", "##"},
		{"##", "##"},
		{"##", "##"},
	},
	KindS: {
		{".##", "##.", "..."},
		{".#.", ".##", "..#"},
		{"...", ".##", "##."},
		{"#..", "##.", ".#."},
	},
	KindT: {
		{".#.", "###", "..."},
		{".#.", ".##", ".#."},
		{"...", "###", ".#."},
		{".#.", "##.", ".#."},
	},
	KindZ: {
		{"##.", ".##", "..."},
		{"..#", ".##", ".#."},
		{"...", "##.", ".##"},
		{".#.", "##.", "#.."},
	},
}

// catalog is built once from patterns and never mutated.
var catalog = buildCatalog()

func buildCatalog() [kindCount][4]Shape {
	var c [kindCount][4]Shape
	for k, rotations := range patterns {
		for r, rows := range rotations {
			s := Shape{Size: len(rows)}
			for y, row := range rows {
				for x, ch := range row {
					s.Cells[y][x] = ch == '#'
				}
			}
			c[k][r] = s
		}
	}
	return c
}

// ShapeOf returns the mask of kind k in orientation r.
func ShapeOf(k Kind, r Rotation) Shape {
	return catalog[k][r%4]
}

// Piece is the falling piece: a kind, an orientation and the board
// position of its mask's top-left corner. The mask itself is looked up
// from the catalog, so only Rotation, X and Y ever change.
type Piece struct {
	Kind     Kind
	Rotation Rotation
	X, Y     int
}

// NewPiece returns a piece of kind k at its spawn position,
// horizontally centered on the top row.
func NewPiece(k Kind) Piece {
	size := catalog[k][0].Size
	return Piece{
		Kind: k,
		X:    (Width - size) / 2,
		Y:    0,
	}
}

// Shape returns the mask for the piece's current orientation.
func (p Piece) Shape() Shape {
	return ShapeOf(p.Kind, p.Rotation)
}

// Tiles calls fn with the board position of every tile of the piece.
// Iteration stops early when fn returns false.
func (p Piece) Tiles(fn func(x, y int) bool) {
	s := p.Shape()
	for y := 0; y < s.Size; y++ {
		for x := 0; x < s.Size; x++ {
			if s.Cells[y][x] && !fn(p.X+x, p.Y+y) {
				return
			}
		}
	}
}
