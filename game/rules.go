package game

// Rotation is the orientation of a falling piece.
type Rotation uint8

const (
	North Rotation = iota
	East
	South
	West
)

func (r Rotation) Cw() Rotation {
	return (r + 1) % 4
}

func (r Rotation) Ccw() Rotation {
	return (r + 3) % 4
}

func (r Rotation) String() string {
	return [...]string{"North", "East", "South", "West"}[r%4]
}

type cell struct {
	x, y int8
}

// Spawn orientation cells relative to the rotation center, y pointing up.
var northCells = [PieceCount][4]cell{
	I: {{-1, 0}, {0, 0}, {1, 0}, {2, 0}},
	O: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	T: {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
	L: {{-1, 0}, {0, 0}, {1, 0}, {1, 1}},
	J: {{-1, 0}, {0, 0}, {1, 0}, {-1, 1}},
	S: {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
	Z: {{-1, 1}, {0, 1}, {0, 0}, {1, 0}},
}

// shapes[piece][rotation] holds the four cells of every orientation.
var shapes = func() (table [PieceCount][4][4]cell) {
	for p := range northCells {
		cells := northCells[p]
		for r := 0; r < 4; r++ {
			table[p][r] = cells
			for i, c := range cells {
				cells[i] = cell{c.y, -c.x}
			}
		}
	}
	return table
}()

// SRS offset data. The kick for a rotation from a to b is offset[a] - offset[b]
// for each of the tests in order.
var (
	jlstzOffsets = [4][5]cell{
		North: {{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		East:  {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
		South: {{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
		West:  {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	}
	iOffsets = [4][5]cell{
		North: {{0, 0}, {-1, 0}, {2, 0}, {-1, 0}, {2, 0}},
		East:  {{-1, 0}, {0, 0}, {0, 0}, {0, 1}, {0, -2}},
		South: {{-1, 1}, {1, 1}, {-2, 1}, {1, 0}, {-2, 0}},
		West:  {{0, 1}, {0, 1}, {0, 1}, {0, -1}, {0, 2}},
	}
	oOffsets = [4][1]cell{
		North: {{0, 0}},
		East:  {{0, -1}},
		South: {{-1, -1}},
		West:  {{-1, 0}},
	}
)

// kicks returns the translations to try, in order, when rotating piece from
// one orientation to another.
func kicks(piece Piece, from, to Rotation) []cell {
	switch piece {
	case O:
		a, b := oOffsets[from][0], oOffsets[to][0]
		return []cell{{a.x - b.x, a.y - b.y}}
	case I:
		return kickTable(&iOffsets, from, to)
	default:
		return kickTable(&jlstzOffsets, from, to)
	}
}

func kickTable(offsets *[4][5]cell, from, to Rotation) []cell {
	result := make([]cell, 5)
	for i := range result {
		a, b := offsets[from][i], offsets[to][i]
		result[i] = cell{a.x - b.x, a.y - b.y}
	}
	return result
}
