package engine

import (
	"golang.org/x/exp/rand"

	"stacker/game"
)

// Randomizer deals pieces from shuffled bags of all seven pieces.
type Randomizer struct {
	rng *rand.Rand
	bag []game.Piece
}

func NewRandomizer(seed uint64) *Randomizer {
	return &Randomizer{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next piece, shuffling a fresh bag when the current one is
// used up.
func (r *Randomizer) Next() game.Piece {
	if len(r.bag) == 0 {
		r.bag = append(r.bag, game.Pieces[:]...)
		r.rng.Shuffle(len(r.bag), func(i, j int) {
			r.bag[i], r.bag[j] = r.bag[j], r.bag[i]
		})
	}
	piece := r.bag[0]
	r.bag = r.bag[1:]
	return piece
}
