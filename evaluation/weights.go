package evaluation

import "stacker/game"

// BoardWeights scale the shape features of a board. They feed the transient
// part of an Evaluation.
type BoardWeights struct {
	Height         int32 `yaml:"height"`
	TopHalf        int32 `yaml:"top_half"`
	TopQuarter     int32 `yaml:"top_quarter"`
	Bumpiness      int32 `yaml:"bumpiness"`
	BumpinessSq    int32 `yaml:"bumpiness_sq"`
	Holes          int32 `yaml:"holes"`
	CoveredCells   int32 `yaml:"covered_cells"`
	RowTransitions int32 `yaml:"row_transitions"`
	WellDepth      int32 `yaml:"well_depth"`
	MaxWellDepth   int32 `yaml:"max_well_depth"`
}

// PlacementWeights reward or punish the placement itself. They feed the
// accumulated part of an Evaluation.
type PlacementWeights struct {
	Clear1       int32 `yaml:"clear1"`
	Clear2       int32 `yaml:"clear2"`
	Clear3       int32 `yaml:"clear3"`
	Clear4       int32 `yaml:"clear4"`
	TSpin1       int32 `yaml:"tspin1"`
	TSpin2       int32 `yaml:"tspin2"`
	TSpin3       int32 `yaml:"tspin3"`
	MiniTSpin1   int32 `yaml:"mini_tspin1"`
	MiniTSpin2   int32 `yaml:"mini_tspin2"`
	PerfectClear int32 `yaml:"perfect_clear"`
	BackToBack   int32 `yaml:"back_to_back"`
	Combo        int32 `yaml:"combo"`
	SoftDrop     int32 `yaml:"soft_drop"`
}

// Weights bundles both weight sets.
type Weights struct {
	Board     BoardWeights     `yaml:"board"`
	Placement PlacementWeights `yaml:"placement"`
}

// Evaluate scores a placement with these weights.
func (w *Weights) Evaluate(lock *game.LockResult, board *game.Board, softDropped bool) Evaluation {
	return Evaluate(lock, board, &w.Board, &w.Placement, softDropped)
}

func DefaultWeights() Weights {
	return Weights{
		Board: BoardWeights{
			Height:         -39,
			TopHalf:        -150,
			TopQuarter:     -511,
			Bumpiness:      -24,
			BumpinessSq:    -7,
			Holes:          -173,
			CoveredCells:   -17,
			RowTransitions: -5,
			WellDepth:      57,
			MaxWellDepth:   17,
		},
		Placement: PlacementWeights{
			Clear1:       -143,
			Clear2:       -100,
			Clear3:       -58,
			Clear4:       390,
			TSpin1:       121,
			TSpin2:       410,
			TSpin3:       602,
			MiniTSpin1:   -158,
			MiniTSpin2:   -93,
			PerfectClear: 999,
			BackToBack:   52,
			Combo:        150,
			SoftDrop:     -10,
		},
	}
}
