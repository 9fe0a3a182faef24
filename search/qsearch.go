package search

import (
	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/eval"
	"github.com/shrikechess/shrike/order"
	"github.com/shrikechess/shrike/score"
)

// qsearch resolves tactical volatility at the horizon: a capture-only
// search with a stand-pat cutoff, unbounded in depth since the capture
// set strictly shrinks in material on every recursion. It takes no
// context and makes no cancellation check of its own; the shrinking
// capture set bounds how long it can outlive a stop request.
func qsearch(p *board.Position, alpha, beta score.Score) (score.Score, int64) {
	if s, ok := eval.Obvious(p); ok {
		return s, 1
	}

	standingPat := score.Cp(eval.Evaluate(p))
	if !score.Less(standingPat, beta) {
		return beta, 1
	}
	if score.Less(alpha, standingPat) {
		alpha = standingPat
	}

	var nodes int64 = 1
	for _, em := range order.Order(p.Captures()) {
		child := p.Apply(em.Move)
		s, n := qsearch(&child, beta.Step(), alpha.Step())
		nodes += n
		e := s.Step()
		if !score.Less(e, beta) {
			return beta, nodes
		}
		if score.Less(alpha, e) {
			alpha = e
		}
	}
	return alpha, nodes
}
