package searcher

import (
	"cmp"
	"slices"

	"golang.org/x/exp/rand"

	"stacker/evaluation"
	"stacker/game"
	"stacker/moves"
)

// decision holds the children of a node whose next piece and hold piece are
// both known. The children are kept sorted best first.
type decision struct {
	children []*Child
}

func (d *decision) evaluation() int32 {
	if len(d.children) == 0 {
		return deadBranchPenalty
	}
	return d.children[0].Tree.Evaluation
}

func (d *decision) expand(rng *rand.Rand, mode moves.MovementMode, weights *evaluation.Weights) expandResult {
	if len(d.children) == 0 {
		return expandResult{isDeath: true}
	}
	var result expandResult
	d.children, result = expandChildren(d.children, rng, mode, weights)
	result.isDeath = len(d.children) == 0
	return result
}

func (d *decision) addNextPiece(piece game.Piece) *decision {
	for _, child := range d.children {
		child.Tree.AddNextPiece(piece)
	}
	sortChildren(d.children)
	return d
}

func (d *decision) intoBestChild() (*Child, bool) {
	if len(d.children) == 0 {
		return nil, false
	}
	best := d.children[0]
	d.children = nil
	return best, true
}

// expandChildren descends into one child picked by weighted sampling. A dead
// child is pruned; otherwise the list is re-sorted. The returned result is
// measured from the parent, so its depth includes the edge to the child.
func expandChildren(children []*Child, rng *rand.Rand, mode moves.MovementMode, weights *evaluation.Weights) ([]*Child, expandResult) {
	index := pickChild(rng, children)
	result := children[index].Tree.expand(rng, mode, weights)
	result.depth++
	if result.isDeath {
		children = slices.Delete(children, index, index+1)
		result.isDeath = false
		return children, result
	}
	sortChildren(children)
	return children, result
}

func sortChildren(children []*Child) {
	slices.SortStableFunc(children, func(a, b *Child) int {
		return cmp.Compare(b.Tree.Evaluation, a.Tree.Evaluation)
	})
}

// newChildren generates every placement of the next piece, then every
// placement of the piece that becomes active after holding it, sorted best
// first. The queue must hold at least one piece when hold is occupied and at
// least two when it is empty.
func newChildren(board game.Board, mode moves.MovementMode, weights *evaluation.Weights) []*Child {
	next, ok := board.AdvanceQueue()
	if !ok {
		panic("cannot generate children: queue is empty")
	}
	spawned, ok := game.SpawnPiece(next, &board)
	if !ok {
		return nil
	}

	var children []*Child
	children = appendPlacements(children, &board, spawned, false, mode, weights)

	held := board.Clone()
	active, ok := held.Hold(next)
	if !ok {
		active, ok = held.AdvanceQueue()
		if !ok {
			panic("cannot generate children: hold is empty and the queue has no second piece")
		}
	}
	if spawned, ok := game.SpawnPiece(active, &held); ok {
		children = appendPlacements(children, &held, spawned, true, mode, weights)
	}

	sortChildren(children)
	return children
}

// appendPlacements locks every placement of spawned on a clone of board and
// appends a child for each one that does not lock out.
func appendPlacements(children []*Child, board *game.Board, spawned game.FallingPiece, hold bool, mode moves.MovementMode, weights *evaluation.Weights) []*Child {
	for _, mv := range moves.FindMoves(board, spawned, mode) {
		result := board.Clone()
		lock := result.LockPiece(mv.Location)
		if lock.LockedOut {
			continue
		}
		children = append(children, &Child{
			Hold: hold,
			Move: mv,
			Lock: lock,
			Tree: NewTree(result, &lock, mv.SoftDropped, weights),
		})
	}
	return children
}
