package evaluation

import (
	"math/bits"

	"stacker/game"
	"stacker/utils"
)

// Evaluation is the score of a single placement. Transient scores the shape of
// the resulting board and only matters at the leaf; Accumulated rewards the
// placement itself and is summed along a path.
type Evaluation struct {
	Transient   int32
	Accumulated int32
}

// Evaluate scores the board left by a placement. It is a pure function of its
// inputs.
func Evaluate(lock *game.LockResult, board *game.Board, bw *BoardWeights, pw *PlacementWeights, softDropped bool) Evaluation {
	return Evaluation{
		Transient:   evaluateBoard(board, bw),
		Accumulated: evaluatePlacement(lock, pw, softDropped),
	}
}

func evaluatePlacement(lock *game.LockResult, pw *PlacementWeights, softDropped bool) int32 {
	var score int32
	if softDropped {
		score += pw.SoftDrop
	}

	lines := lock.Lines()
	if lines == 0 {
		return score
	}
	if lock.PerfectClear {
		score += pw.PerfectClear
	}
	switch lock.TSpin {
	case game.FullTSpin:
		score += [...]int32{0, pw.TSpin1, pw.TSpin2, pw.TSpin3, pw.TSpin3}[lines]
	case game.MiniTSpin:
		score += [...]int32{0, pw.MiniTSpin1, pw.MiniTSpin2, pw.MiniTSpin2, pw.MiniTSpin2}[lines]
	default:
		score += [...]int32{0, pw.Clear1, pw.Clear2, pw.Clear3, pw.Clear4}[lines]
	}
	if lock.BackToBack {
		score += pw.BackToBack
	}
	score += pw.Combo * int32(lock.Combo)
	return score
}

// evaluateBoard tallies the weighted shape features of the field.
func evaluateBoard(board *game.Board, bw *BoardWeights) int32 {
	heights := board.ColumnHeights()
	maxHeight := utils.Max(heights[:]...)

	var score int32
	score += bw.Height * int32(maxHeight)
	score += bw.TopHalf * int32(max(maxHeight-game.VisibleHeight/2, 0))
	score += bw.TopQuarter * int32(max(maxHeight-game.VisibleHeight*3/4, 0))

	well := wellColumn(heights)
	bumpiness, bumpinessSq := calculateBumpiness(heights, well)
	score += bw.Bumpiness * bumpiness
	score += bw.BumpinessSq * bumpinessSq

	holes, covered := calculateHoles(board, heights)
	score += bw.Holes * holes
	score += bw.CoveredCells * covered

	score += bw.RowTransitions * calculateRowTransitions(board, maxHeight)

	depth := wellDepth(heights, well)
	score += bw.WellDepth * min(depth, bw.MaxWellDepth)
	return score
}

// wellColumn returns the lowest column, leftmost on ties.
func wellColumn(heights [game.Width]int) int {
	well := 0
	for x, h := range heights {
		if h < heights[well] {
			well = x
		}
	}
	return well
}

// calculateBumpiness sums height differences between neighbouring columns,
// skipping the well column so that keeping one open is not punished.
func calculateBumpiness(heights [game.Width]int, well int) (bumpiness, squared int32) {
	prev := -1
	for x := 0; x < game.Width; x++ {
		if x == well {
			continue
		}
		if prev >= 0 {
			d := int32(utils.Abs(heights[x] - heights[prev]))
			bumpiness += d
			squared += d * d
		}
		prev = x
	}
	return bumpiness, squared
}

// calculateHoles counts empty cells below the top of each column and the
// filled cells stacked over the highest hole of each column, up to six.
func calculateHoles(board *game.Board, heights [game.Width]int) (holes, covered int32) {
	for x, h := range heights {
		highestHole := -1
		for y := 0; y < h; y++ {
			if !board.Occupied(x, y) {
				holes++
				highestHole = y
			}
		}
		if highestHole < 0 {
			continue
		}
		for y := highestHole + 1; y < h && y <= highestHole+6; y++ {
			if board.Occupied(x, y) {
				covered++
			}
		}
	}
	return holes, covered
}

// calculateRowTransitions counts filled/empty boundaries along each row. The
// walls count as filled. Adapted from Dellacherie's feature.
func calculateRowTransitions(board *game.Board, top int) int32 {
	const walls = uint32(1)<<(game.Width+1) | 1
	var transitions int
	for y := 0; y < top; y++ {
		row := uint32(board.Row(y))<<1 | walls
		transitions += bits.OnesCount32((row ^ row>>1) & (1<<(game.Width+1) - 1))
	}
	return int32(transitions)
}

// wellDepth is how far the well column sits below its shallower neighbour.
func wellDepth(heights [game.Width]int, well int) int32 {
	neighbour := game.Height
	if well > 0 {
		neighbour = heights[well-1]
	}
	if well < game.Width-1 {
		neighbour = min(neighbour, heights[well+1])
	}
	return int32(max(neighbour-heights[well], 0))
}
