// Package order implements the MVV-LVA move ordering heuristic: captures
// are tried most-valuable-victim first, ties broken by least-valuable-
// attacker, and non-captures are left in generation order after all
// captures.
package order

import (
	"sort"

	"github.com/shrikechess/shrike/board"
)

// key scores a move for ordering purposes: non-captures score 0 (so they
// stay below every capture, since capture keys are always negative);
// captures score -(12*victim_ordinal - attacker_ordinal), computed
// directly from board.Role ordinals rather than a precomputed 7x7 table.
func key(m board.Move) int {
	if m.Captured == board.NoRole {
		return 0
	}
	return -(12*int(m.Captured) - int(m.Piece))
}

// Order returns moves sorted so that captures precede non-captures, with
// captures ranked by descending victim value and ties broken by ascending
// attacker value (so PxQ sorts before NxQ sorts before QxQ). The sort is
// stable: non-captures and equal-keyed captures keep their relative
// generation order, so ordering is deterministic for a given generator.
func Order(moves []board.Move) []board.EvaledMove {
	out := make([]board.EvaledMove, len(moves))
	for i, m := range moves {
		out[i] = board.EvaledMove{Move: m, Value: key(m)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}
