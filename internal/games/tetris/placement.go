package tetris

// Offset is a kick candidate, in board cells (positive Y is down).
type Offset struct {
	DX, DY int
}

// kickTable lists candidates by [direction][resulting rotation].
// Tables are directional: clockwise into an orientation and
// counter-clockwise into the same orientation use different rows.
type kickTable [2][4][]Offset

var (
	kicksI = kickTable{
		Clockwise: {
			0: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
			1: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
			2: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
			3: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
		},
		CounterClockwise: {
			0: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
			1: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
			2: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
			3: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
		},
	}

	kicksJLSTZ = kickTable{
		Clockwise: {
			0: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
			1: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
			2: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
			3: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		},
		CounterClockwise: {
			0: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
			1: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
			2: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
			3: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		},
	}

	identityKick = []Offset{{0, 0}}
)

// Kicks returns the ordered candidates for rotating kind k in direction
// dir into orientation to.
func Kicks(k Kind, dir Direction, to Rotation) []Offset {
	switch k {
	case KindO:
		return identityKick
	case KindI:
		return kicksI[dir][to%4]
	default:
		return kicksJLSTZ[dir][to%4]
	}
}

// Overlaps reports whether any tile of the piece is outside the well or
// on an occupied cell. Translation, rotation and spawn checks all use it.
func Overlaps(b *Board, p Piece) bool {
	overlap := false
	p.Tiles(func(x, y int) bool {
		if !InBounds(x, y) || b[y][x].Filled {
			overlap = true
			return false
		}
		return true
	})
	return overlap
}

// Move shifts the piece by (dx, dy) if the target is free.
// On collision the piece is left untouched and Move returns false.
func Move(b *Board, p *Piece, dx, dy int) bool {
	moved := *p
	moved.X += dx
	moved.Y += dy
	if Overlaps(b, moved) {
		return false
	}
	*p = moved
	return true
}

// CanFall reports whether the piece could move down one row.
func CanFall(b *Board, p Piece) bool {
	p.Y++
	return !Overlaps(b, p)
}

// Rotate turns the piece one step, trying each kick candidate in order
// and keeping the first collision-free one. If none fits, the piece is
// left exactly as it was. The result reports whether the piece actually
// changed: rotating an O piece always fits but never counts as a move.
func Rotate(b *Board, p *Piece, dir Direction) bool {
	turned := *p
	turned.Rotation = p.Rotation.Turn(dir)

	for _, kick := range Kicks(p.Kind, dir, turned.Rotation) {
		candidate := turned
		candidate.X += kick.DX
		candidate.Y += kick.DY
		if !Overlaps(b, candidate) {
			*p = candidate
			return p.Kind != KindO
		}
	}
	return false
}

// HardDrop moves the piece straight down until it rests and returns the
// number of rows it fell.
func HardDrop(b *Board, p *Piece) int {
	rows := 0
	for Move(b, p, 0, 1) {
		rows++
	}
	return rows
}
