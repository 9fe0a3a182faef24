package search

import (
	"context"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/eval"
	"github.com/shrikechess/shrike/order"
	"github.com/shrikechess/shrike/score"
	"github.com/shrikechess/shrike/ttable"
)

// alphabeta searches p to depth plies within the (alpha, beta) window. It
// returns ok=false iff cancellation was observed anywhere during its
// execution (including by a recursive call), in which case the returned
// Result is the zero value and must not be used. Cancellation is an
// outcome, not an error.
//
// Cache reuse is gated by ttable.Entry.Usable: the stored bound tag is
// checked against the calling window, not just the stored depth.
func alphabeta(ctx context.Context, tt *ttable.Table, p *board.Position, alpha, beta score.Score, depth int) (Result, bool) {
	if ctx.Err() != nil {
		return Result{}, false
	}

	if s, ok := eval.Obvious(p); ok {
		return Result{Score: s, Nodes: 1}, true
	}

	if depth == 0 {
		s, n := qsearch(p, alpha, beta)
		return Result{Score: s, Nodes: n}, true
	}

	key := p.Key
	if e, ok := tt.Get(key); ok && e.Usable(depth, alpha, beta) {
		return Result{Score: e.Score, PV: e.PV, Nodes: 1}, true
	}

	moves := p.LegalMoves()
	ranked := order.Order(moves)

	origAlpha := alpha
	var nodes int64 = 1
	var bestPV []board.Move

	for _, em := range ranked {
		nodes++
		child := p.Apply(em.Move)
		childResult, ok := alphabeta(ctx, tt, &child, beta.Step(), alpha.Step(), depth-1)
		if !ok {
			return Result{}, false
		}
		nodes += childResult.Nodes
		e := childResult.Score.Step()

		if !score.Less(e, beta) {
			pv := withMove(childResult.PV, em.Move)
			tt.Insert(ttable.Entry{Key: key, Score: beta, Depth: depth, PV: pv, Bound: ttable.Lower})
			return Result{Score: beta, PV: pv, Nodes: nodes}, true
		}
		if score.Less(alpha, e) {
			alpha = e
			bestPV = withMove(childResult.PV, em.Move)
		}
	}

	bound := ttable.Upper
	if score.Less(origAlpha, alpha) {
		bound = ttable.Exact
	}
	tt.Insert(ttable.Entry{Key: key, Score: alpha, Depth: depth, PV: bestPV, Bound: bound})
	return Result{Score: alpha, PV: bestPV, Nodes: nodes}, true
}
