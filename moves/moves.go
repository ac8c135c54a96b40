package moves

import (
	"fmt"
	"slices"
	"strings"

	"stacker/game"
)

// MovementMode selects which maneuvers the move finder considers legal.
type MovementMode int

const (
	ZeroG        MovementMode = iota // Full maneuvering, including soft drop and tucks
	TwentyG                          // The piece sonic drops after every input
	HardDropOnly                     // Rotate and shift at spawn height, then hard drop
)

var modeNames = [...]string{"zero-g", "twenty-g", "hard-drop-only"}

func (m MovementMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("MovementMode(%d)", int(m))
	}
	return modeNames[m]
}

func ParseMovementMode(s string) (MovementMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return MovementMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown movement mode %q", s)
}

func (m MovementMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MovementMode) UnmarshalText(text []byte) error {
	mode, err := ParseMovementMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Input is a single controller action. A hard drop is implied at the end of
// every move.
type Input uint8

const (
	Left Input = iota
	Right
	Cw
	Ccw
	SonicDrop
)

func (i Input) String() string {
	return [...]string{"left", "right", "cw", "ccw", "sonic-drop"}[i]
}

// Move is a legal terminal placement and the inputs that reach it.
type Move struct {
	Inputs      []Input
	Location    game.FallingPiece
	SoftDropped bool
}

func (m Move) String() string {
	return fmt.Sprintf("%v %v", m.Location, m.Inputs)
}

// cellKey identifies a placement by the cells it covers so that symmetric
// orientations of I, O, S and Z are reported once. T keeps its t-spin status
// in the key since it changes the lock outcome.
type cellKey struct {
	cells [4][2]int
	tspin game.TSpinStatus
}

func keyOf(p *game.FallingPiece) cellKey {
	cells := p.Cells()
	slices.SortFunc(cells[:], func(a, b [2]int) int {
		if a[1] != b[1] {
			return a[1] - b[1]
		}
		return a[0] - b[0]
	})
	return cellKey{cells: cells, tspin: p.TSpin}
}

type node struct {
	piece  game.FallingPiece
	inputs []Input
}

// FindMoves enumerates the placements of spawned reachable under mode.
func FindMoves(board *game.Board, spawned game.FallingPiece, mode MovementMode) []Move {
	switch mode {
	case HardDropOnly:
		return hardDrops(board, spawned)
	case TwentyG:
		return search(board, spawned, true)
	case ZeroG:
		return search(board, spawned, false)
	default:
		panic(fmt.Sprintf("unsupported movement mode %v", mode))
	}
}

// hardDrops rotates and shifts the piece at spawn height and drops it
// straight down.
func hardDrops(board *game.Board, spawned game.FallingPiece) []Move {
	var moves []Move
	seen := make(map[cellKey]bool)

	add := func(n node) {
		p := n.piece
		p.SonicDrop(board)
		key := keyOf(&p)
		if seen[key] {
			return
		}
		seen[key] = true
		moves = append(moves, Move{Inputs: slices.Clone(n.inputs), Location: p})
	}

	starts := []node{{piece: spawned}}
	rotated := spawned
	if rotated.Cw(board) {
		starts = append(starts, node{piece: rotated, inputs: []Input{Cw}})
		if rotated.Cw(board) {
			starts = append(starts, node{piece: rotated, inputs: []Input{Cw, Cw}})
		}
	}
	rotated = spawned
	if rotated.Ccw(board) {
		starts = append(starts, node{piece: rotated, inputs: []Input{Ccw}})
	}

	for _, start := range starts {
		add(start)
		for _, dir := range []Input{Left, Right} {
			dx := -1
			if dir == Right {
				dx = 1
			}
			n := node{piece: start.piece, inputs: slices.Clone(start.inputs)}
			for n.piece.Shift(board, dx, 0) {
				n.inputs = append(n.inputs, dir)
				add(n)
			}
		}
	}
	return moves
}

// search explores every reachable position breadth first. With gravity set,
// the piece sonic drops after every input, which models 20G.
func search(board *game.Board, spawned game.FallingPiece, gravity bool) []Move {
	type position struct {
		x, y     int
		rotation game.Rotation
		tspin    game.TSpinStatus
	}
	posOf := func(p *game.FallingPiece) position {
		return position{p.X, p.Y, p.Rotation, p.TSpin}
	}

	start := spawned
	if gravity {
		start.SonicDrop(board)
	}

	// Placements a plain hard drop reaches are never flagged as soft dropped.
	var moves []Move
	if !gravity {
		moves = hardDrops(board, spawned)
	}
	seen := make(map[cellKey]bool, len(moves))
	for _, m := range moves {
		seen[keyOf(&m.Location)] = true
	}

	visited := map[position]bool{posOf(&start): true}
	queue := []node{{piece: start}}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		resting := n.piece
		if !resting.Shift(board, 0, -1) {
			key := keyOf(&n.piece)
			if !seen[key] {
				seen[key] = true
				moves = append(moves, Move{
					Inputs:      n.inputs,
					Location:    n.piece,
					SoftDropped: !gravity,
				})
			}
		}

		for _, input := range []Input{Left, Right, Cw, Ccw, SonicDrop} {
			next := n.piece
			if !apply(&next, board, input) {
				continue
			}
			if gravity {
				next.SonicDrop(board)
			}
			pos := posOf(&next)
			if visited[pos] {
				continue
			}
			visited[pos] = true
			inputs := make([]Input, len(n.inputs), len(n.inputs)+1)
			copy(inputs, n.inputs)
			queue = append(queue, node{piece: next, inputs: append(inputs, input)})
		}
	}
	return moves
}

func apply(p *game.FallingPiece, board *game.Board, input Input) bool {
	switch input {
	case Left:
		return p.Shift(board, -1, 0)
	case Right:
		return p.Shift(board, 1, 0)
	case Cw:
		return p.Cw(board)
	case Ccw:
		return p.Ccw(board)
	case SonicDrop:
		return p.SonicDrop(board)
	}
	return false
}
