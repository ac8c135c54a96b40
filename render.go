package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"stacker/game"
	"stacker/searcher"
)

var pieceColors = [game.PieceCount]string{
	game.I: "#31C7EF",
	game.O: "#F7D308",
	game.T: "#AD4D9C",
	game.L: "#EF7921",
	game.J: "#5A65AD",
	game.S: "#42B642",
	game.Z: "#EF2029",
}

// renderer draws the field after each move, highlighting the piece that was
// just placed.
type renderer struct {
	w      io.Writer
	output *termenv.Output
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w, output: termenv.NewOutput(w)}
}

func (r *renderer) render(step int, board *game.Board, child *searcher.Child) {
	o := r.output
	placed := make(map[[2]int]bool, 4)
	if child.Lock.Lines() == 0 {
		for _, c := range child.Move.Location.Cells() {
			placed[c] = true
		}
	}

	filled := o.String("  ").Background(o.Color("8")).String()
	active := o.String("  ").Background(o.Color(pieceColors[child.Move.Location.Kind])).String()
	empty := o.String(" .").Faint().String()

	var sb strings.Builder
	for y := game.VisibleHeight - 1; y >= 0; y-- {
		sb.WriteString("|")
		for x := 0; x < game.Width; x++ {
			switch {
			case placed[[2]int{x, y}]:
				sb.WriteString(active)
			case board.Occupied(x, y):
				sb.WriteString(filled)
			default:
				sb.WriteString(empty)
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("--", game.Width) + "+\n")

	hold := "-"
	if piece, ok := board.HoldPiece(); ok {
		hold = piece.String()
	}
	fmt.Fprintf(&sb, "piece %d  hold %s  queue %v  eval %d  lines %d\n",
		step, hold, board.Queue(), child.Tree.Evaluation, child.Lock.Lines())

	o.ClearScreen()
	fmt.Fprint(r.w, sb.String())
}
