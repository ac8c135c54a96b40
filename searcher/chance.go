package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"

	"stacker/evaluation"
	"stacker/game"
	"stacker/moves"
	"stacker/utils"
)

// deadBranchPenalty scores a possible piece whose branch has no children left.
const deadBranchPenalty = -100

// branch is the children list for one possible next piece.
type branch struct {
	children []*Child
}

// chance holds one branch per piece that may come next. Pieces that cannot
// come next have a nil branch.
type chance struct {
	branches [game.PieceCount]*branch
}

// evaluation is the mean over possible pieces of each branch's best child,
// treating every possible piece as equally likely.
func (c *chance) evaluation() int32 {
	scores := make([]int32, 0, game.PieceCount)
	for _, b := range c.branches {
		if b == nil {
			continue
		}
		if len(b.children) == 0 {
			scores = append(scores, deadBranchPenalty)
		} else {
			scores = append(scores, b.children[0].Tree.Evaluation)
		}
	}
	return utils.Mean(scores...)
}

// live returns the pieces whose branch still has children.
func (c *chance) live() []game.Piece {
	pieces := make([]game.Piece, 0, game.PieceCount)
	for _, piece := range game.Pieces {
		if b := c.branches[piece]; b != nil && len(b.children) > 0 {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

func (c *chance) expand(rng *rand.Rand, mode moves.MovementMode, weights *evaluation.Weights) expandResult {
	pieces := c.live()
	if len(pieces) == 0 {
		return expandResult{isDeath: true}
	}
	b := c.branches[pieces[rng.Intn(len(pieces))]]

	var result expandResult
	b.children, result = expandChildren(b.children, rng, mode, weights)
	result.isDeath = len(b.children) == 0 && len(c.live()) == 0
	return result
}

// addNextPiece resolves the speculation onto the branch for piece and drops
// every other branch.
func (c *chance) addNextPiece(piece game.Piece) *decision {
	b := c.branches[piece]
	if b == nil {
		panic(fmt.Sprintf("piece %v was revealed but was not possible when speculating", piece))
	}
	return &decision{children: b.children}
}

// intoBestChild never succeeds: the piece to play is not known yet.
func (c *chance) intoBestChild() (*Child, bool) {
	return nil, false
}
