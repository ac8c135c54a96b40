package game

import "fmt"

// TSpinStatus describes whether the last rotation of a T piece qualifies as a
// t-spin. Any successful shift or drop resets it.
type TSpinStatus uint8

const (
	NoTSpin TSpinStatus = iota
	MiniTSpin
	FullTSpin
)

func (t TSpinStatus) String() string {
	return [...]string{"None", "Mini", "Full"}[t]
}

const (
	spawnX = 4
	spawnY = 20
)

// FallingPiece is a piece with a position and orientation on a board.
type FallingPiece struct {
	Kind     Piece
	Rotation Rotation
	X, Y     int
	TSpin    TSpinStatus
}

// SpawnPiece places piece at the spawn location and moves it down one row if
// possible. It fails when the spawn cells are occupied.
func SpawnPiece(piece Piece, board *Board) (FallingPiece, bool) {
	p := FallingPiece{Kind: piece, Rotation: North, X: spawnX, Y: spawnY}
	if board.ObstructedBy(&p) {
		return p, false
	}
	p.Shift(board, 0, -1)
	return p, true
}

// Cells returns the absolute board coordinates occupied by the piece.
func (p *FallingPiece) Cells() [4][2]int {
	var cells [4][2]int
	for i, c := range shapes[p.Kind][p.Rotation] {
		cells[i] = [2]int{p.X + int(c.x), p.Y + int(c.y)}
	}
	return cells
}

// Shift moves the piece by (dx, dy) if the destination is free.
func (p *FallingPiece) Shift(board *Board, dx, dy int) bool {
	p.X += dx
	p.Y += dy
	if board.ObstructedBy(p) {
		p.X -= dx
		p.Y -= dy
		return false
	}
	p.TSpin = NoTSpin
	return true
}

// SonicDrop moves the piece down until it rests on something.
func (p *FallingPiece) SonicDrop(board *Board) bool {
	dropped := false
	for p.Shift(board, 0, -1) {
		dropped = true
	}
	return dropped
}

func (p *FallingPiece) Cw(board *Board) bool {
	return p.rotate(board, p.Rotation.Cw())
}

func (p *FallingPiece) Ccw(board *Board) bool {
	return p.rotate(board, p.Rotation.Ccw())
}

func (p *FallingPiece) rotate(board *Board, target Rotation) bool {
	from := p.Rotation
	x, y := p.X, p.Y
	for i, kick := range kicks(p.Kind, from, target) {
		p.Rotation = target
		p.X = x + int(kick.x)
		p.Y = y + int(kick.y)
		if !board.ObstructedBy(p) {
			p.TSpin = p.tspinStatus(board, i)
			return true
		}
	}
	p.Rotation = from
	p.X, p.Y = x, y
	return false
}

// tspinStatus applies the three-corner rule. The last kick of a T rotation
// always upgrades a mini to a full t-spin.
func (p *FallingPiece) tspinStatus(board *Board, kick int) TSpinStatus {
	if p.Kind != T {
		return NoTSpin
	}
	corners := [4][2]int{
		{p.X - 1, p.Y + 1}, {p.X + 1, p.Y + 1}, {p.X + 1, p.Y - 1}, {p.X - 1, p.Y - 1},
	}
	filled := 0
	var occupied [4]bool
	for i, c := range corners {
		if board.Occupied(c[0], c[1]) {
			occupied[i] = true
			filled++
		}
	}
	if filled < 3 {
		return NoTSpin
	}
	// Corners on the pointing side of the T, indexed clockwise from top left.
	front := [4][2]int{North: {0, 1}, East: {1, 2}, South: {2, 3}, West: {3, 0}}[p.Rotation]
	if (occupied[front[0]] && occupied[front[1]]) || kick == 4 {
		return FullTSpin
	}
	return MiniTSpin
}

func (p FallingPiece) String() string {
	return fmt.Sprintf("%v %v (%d, %d)", p.Kind, p.Rotation, p.X, p.Y)
}
