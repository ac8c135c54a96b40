package searcher

import (
	"golang.org/x/exp/rand"

	"stacker/evaluation"
	"stacker/game"
	"stacker/moves"
)

// Tree is a node of the placement search tree. It owns its board and every
// subtree below it.
type Tree struct {
	Board      game.Board
	RawEval    evaluation.Evaluation // Score of the placement that produced this node
	Evaluation int32                 // Accumulated score plus the best descendant contribution
	Depth      int                   // Longest expanded path below this node
	ChildNodes int                   // Nodes ever added to this subtree
	kind       kind                  // nil while unexpanded
}

// Child is an edge of the tree: the move taken and the subtree it leads to.
type Child struct {
	Hold bool
	Move moves.Move
	Lock game.LockResult
	Tree *Tree
}

// kind is the expanded state of a node: either a decision over known
// children or a chance fan-out over the unknown next piece.
type kind interface {
	evaluation() int32
	expand(rng *rand.Rand, mode moves.MovementMode, weights *evaluation.Weights) expandResult
	addNextPiece(piece game.Piece) *decision
	intoBestChild() (*Child, bool)
}

type expandResult struct {
	depth    int
	newNodes int
	isDeath  bool
}

// NewTree evaluates the placement that produced board and returns an
// unexpanded node for it.
func NewTree(board game.Board, lock *game.LockResult, softDropped bool, weights *evaluation.Weights) *Tree {
	raw := weights.Evaluate(lock, &board, softDropped)
	return &Tree{
		Board:      board,
		RawEval:    raw,
		Evaluation: raw.Accumulated + raw.Transient,
	}
}

// IsExpanded reports whether the node has children or a speculation.
func (t *Tree) IsExpanded() bool {
	return t.kind != nil
}

// IsSpeculative reports whether the node is waiting on the next piece.
func (t *Tree) IsSpeculative() bool {
	_, ok := t.kind.(*chance)
	return ok
}

// Children returns the known children, best first. It is empty for
// unexpanded and speculative nodes. The slice must not be modified.
func (t *Tree) Children() []*Child {
	if d, ok := t.kind.(*decision); ok {
		return d.children
	}
	return nil
}

// IntoBestChild takes the highest evaluated child out of a node with known
// children and releases the rest of the node. When the node is unexpanded,
// speculative or has no children left, it returns false and leaves the node
// untouched so the caller can keep expanding it.
func (t *Tree) IntoBestChild() (*Child, bool) {
	if t.kind == nil {
		return nil, false
	}
	return t.kind.intoBestChild()
}

// AddNextPiece tells the tree that piece is now known to follow the current
// queue. Speculative nodes collapse onto the branch for piece; it panics if
// that branch was never considered possible. A branch with no children left
// scores the dead branch penalty straight away.
func (t *Tree) AddNextPiece(piece game.Piece) {
	t.Board.AddNextPiece(piece)
	if t.kind == nil {
		return
	}
	d := t.kind.addNextPiece(piece)
	t.kind = d
	t.Evaluation = d.evaluation() + t.RawEval.Accumulated
}

// Expand grows the tree by one unit of work and reports whether the subtree
// is dead, meaning no legal placement remains anywhere below it.
func (t *Tree) Expand(rng *rand.Rand, mode moves.MovementMode, weights *evaluation.Weights) bool {
	return t.expand(rng, mode, weights).isDeath
}

func (t *Tree) expand(rng *rand.Rand, mode moves.MovementMode, weights *evaluation.Weights) expandResult {
	if t.kind != nil {
		result := t.kind.expand(rng, mode, weights)
		if !result.isDeath {
			t.Evaluation = t.kind.evaluation() + t.RawEval.Accumulated
			t.Depth = max(t.Depth, result.depth)
			t.ChildNodes += result.newNodes
		}
		return result
	}

	_, hasNext := t.Board.NextPiece()
	_, hasHold := t.Board.HoldPiece()
	_, hasNextNext := t.Board.NextNextPiece()
	switch {
	case hasNext && (hasHold || hasNextNext):
		children := newChildren(t.Board.Clone(), mode, weights)
		if len(children) == 0 {
			return expandResult{isDeath: true}
		}
		t.kind = &decision{children: children}
		t.Depth = 1
		t.ChildNodes = len(children)
		t.Evaluation = t.kind.evaluation() + t.RawEval.Accumulated
		return expandResult{depth: 1, newNodes: len(children)}
	case hasNext || hasHold:
		// Exactly one of the next piece and the hold piece is unknown.
		return t.speculate(mode, weights)
	default:
		return expandResult{}
	}
}

// speculate fans out over every piece that may still come next.
func (t *Tree) speculate(mode moves.MovementMode, weights *evaluation.Weights) expandResult {
	c := &chance{}
	total := 0
	for _, piece := range t.Board.Bag().Pieces() {
		board := t.Board.Clone()
		board.AddNextPiece(piece)
		children := newChildren(board, mode, weights)
		c.branches[piece] = &branch{children: children}
		total += len(children)
	}
	if total == 0 {
		return expandResult{isDeath: true}
	}

	t.kind = c
	t.Depth = 1
	t.ChildNodes = total
	t.Evaluation = c.evaluation() + t.RawEval.Accumulated
	return expandResult{depth: 1, newNodes: total}
}
