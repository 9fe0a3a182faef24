package search

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/score"
	"github.com/shrikechess/shrike/ttable"
)

// Progress is the per-depth snapshot the driver hands to the caller's
// callback between depths; the dispatcher formats it as a UCI `info`
// line. PV is already reversed to root-to-leaf order.
type Progress struct {
	Score        score.Score
	Depth        int
	Nodes        int64
	Elapsed      time.Duration
	NPS          int64
	HashPermille int
	PV           []board.Move
}

// Outcome is what Run returns once the loop ends: the best move found
// (the null move if no depth ever completed) and the score/depth it was
// found at.
type Outcome struct {
	BestMove board.Move
	Score    score.Score
	Depth    int
}

// Run is the iterative deepening driver: for each depth 1..depthMax it
// launches workerCount independent full-window searches sharing one
// transposition table, picks the best non-cancelled result, reports
// progress, and stops early on a proven mate at exactly this depth or on
// cancellation. Workers start identical and diverge only through cache
// interactions; the move list is never split across them, and a mate at
// the shallowest depth must be found even with a single worker.
func Run(ctx context.Context, root *board.Position, depthMax, workerCount int, tt *ttable.Table, progress func(Progress)) Outcome {
	start := time.Now()
	var best Outcome
	haveBest := false

	for d := 1; d <= depthMax; d++ {
		if ctx.Err() != nil {
			log.Debug().Int("depth", d).Msg("search: cancellation observed before depth launch")
			break
		}

		results := make([]Result, workerCount)
		oks := make([]bool, workerCount)
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workerCount; w++ {
			w := w
			g.Go(func() error {
				pos := *root
				r, ok := alphabeta(gctx, tt, &pos, score.MinusInf, score.PlusInf, d)
				results[w] = r
				oks[w] = ok
				return nil
			})
		}
		_ = g.Wait()

		var depthBest Result
		var nodes int64
		found := false
		for w := 0; w < workerCount; w++ {
			nodes += results[w].Nodes
			if !oks[w] {
				continue
			}
			if !found || score.Less(depthBest.Score, results[w].Score) {
				depthBest = results[w]
				found = true
			}
		}
		if !found {
			log.Debug().Int("depth", d).Msg("search: all workers cancelled, skipping report")
			break
		}

		best = Outcome{BestMove: depthBest.BestMove(), Score: depthBest.Score, Depth: d}
		haveBest = true

		elapsed := time.Since(start)
		nps := int64(0)
		if elapsed > 0 {
			nps = int64(float64(nodes) / elapsed.Seconds())
		}
		permille := tt.Permille()
		log.Debug().Int("depth", d).Int64("nodes", nodes).Dur("elapsed", elapsed).Msg("search: depth complete")

		if depthBest.Score.Kind == score.KindMate && depthBest.Score.V == int32(d) {
			progress(Progress{Score: depthBest.Score, Depth: d, Nodes: nodes, Elapsed: elapsed, NPS: nps, HashPermille: permille, PV: depthBest.PVRootToLeaf()})
			break
		}

		if ctx.Err() == nil {
			progress(Progress{Score: depthBest.Score, Depth: d, Nodes: nodes, Elapsed: elapsed, NPS: nps, HashPermille: permille, PV: depthBest.PVRootToLeaf()})
		}
	}

	if !haveBest {
		return Outcome{BestMove: board.NullMove}
	}
	return best
}
