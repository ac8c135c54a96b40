package searcher

import "golang.org/x/exp/rand"

// maxSpread caps the distance from the worst child so that weights and their
// sum stay within int64.
const maxSpread = 1_000_000_000

// childWeights favours high evaluations while keeping every child
// reachable: weight(i) = (eval(i) - min)^2 / (i + 1) + 1 over a list sorted
// best first.
func childWeights(children []*Child) []int64 {
	low := int64(children[len(children)-1].Tree.Evaluation)
	weights := make([]int64, len(children))
	for i, child := range children {
		e := min(int64(child.Tree.Evaluation)-low, maxSpread)
		weights[i] = e*e/int64(i+1) + 1
	}
	return weights
}

// pickChild samples an index with probability proportional to its weight.
func pickChild(rng *rand.Rand, children []*Child) int {
	if len(children) == 0 {
		panic("cannot pick from an empty children list")
	}
	weights := childWeights(children)
	var total int64
	for _, w := range weights {
		total += w
	}
	target := rng.Int63n(total)
	for i, w := range weights {
		if target < w {
			return i
		}
		target -= w
	}
	return len(weights) - 1
}
