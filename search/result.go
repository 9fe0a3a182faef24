// Package search implements quiescence search, alpha-beta over a tagged
// transposition cache, and the iterative deepening driver, plus the
// game-clock time budget and the tiny per-search state machine.
// Cancellation is cooperative: the context is polled before each node
// expansion and a cancelled subtree reports ok=false instead of a score.
package search

import (
	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/score"
)

// Result is constructed at every return from the alpha-beta core: a
// score, a principal variation stored leaf-first (the move chosen at this
// node is appended after the deeper PV; callers that print a PV reverse
// it first, via PVRootToLeaf), and the node count for that subtree.
type Result struct {
	Score score.Score
	PV    []board.Move
	Nodes int64
}

// PVRootToLeaf returns a copy of r.PV in root-to-leaf order, the form the
// UCI `info ... pv` line wants.
func (r Result) PVRootToLeaf() []board.Move {
	out := make([]board.Move, len(r.PV))
	for i, m := range r.PV {
		out[len(r.PV)-1-i] = m
	}
	return out
}

// BestMove returns the move at the root of r's PV (the first move to
// play), or the null move if the PV is empty.
func (r Result) BestMove() board.Move {
	if len(r.PV) == 0 {
		return board.NullMove
	}
	return r.PV[len(r.PV)-1]
}

func withMove(pv []board.Move, m board.Move) []board.Move {
	out := make([]board.Move, 0, len(pv)+1)
	out = append(out, pv...)
	out = append(out, m)
	return out
}
