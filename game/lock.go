package game

// LockResult is the outcome of locking a piece onto a board.
type LockResult struct {
	LockedOut    bool        // Every cell of the piece ended above the visible field
	ClearedLines []int       // Row indices cleared, bottom first, before compaction
	TSpin        TSpinStatus // T-spin status of the locked piece
	Combo        int         // Clears in a row before this one; only meaningful with cleared lines
	BackToBack   bool        // This clear continues a back-to-back chain
	PerfectClear bool        // The board is empty after clearing
}

// Lines returns the number of cleared lines.
func (l *LockResult) Lines() int {
	return len(l.ClearedLines)
}
