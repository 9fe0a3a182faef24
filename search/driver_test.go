package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/search"
	"github.com/shrikechess/shrike/ttable"
)

// TestRunFindsMateInOne: a single worker must still find the mate
// reliably, since the driver relies on shared-cache parallelism rather
// than move-list splitting.
func TestRunFindsMateInOne(t *testing.T) {
	p, err := board.FromFEN("8/8/8/8/8/6k1/5q2/7K b - - 0 1")
	require.NoError(t, err)

	var reports int
	outcome := search.Run(context.Background(), &p, 2, 1, ttable.New(1<<20), func(pr search.Progress) {
		reports++
	})

	assert.Equal(t, "mate 1", outcome.Score.UCI())
	next := p.Apply(legalByName(t, &p, outcome.BestMove.String()))
	assert.True(t, next.IsCheckmate(), "the chosen move %s must deliver mate", outcome.BestMove)
	assert.GreaterOrEqual(t, reports, 1, "at least one info line must be emitted before bestmove")
}

func legalByName(t *testing.T, p *board.Position, name string) board.Move {
	t.Helper()
	for _, m := range p.LegalMoves() {
		if m.String() == name {
			return m
		}
	}
	t.Fatalf("move %s not legal in %s", name, p.FEN())
	return board.Move{}
}

// TestRunStopsOnCancellation: stopping an effectively infinite search
// must still yield a usable outcome from the depths that completed.
func TestRunStopsOnCancellation(t *testing.T) {
	p := board.InitialPosition()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	outcome := search.Run(ctx, &p, 255, 2, ttable.New(1<<20), func(search.Progress) {})
	assert.NotEqual(t, board.NullMove, outcome.BestMove, "a search that completed at least depth 1 must report a real move")
}

// TestHashPermilleResetAfterClear: a freshly cleared table reports
// hashfull 0 on the first progress line of the next search.
func TestHashPermilleResetAfterClear(t *testing.T) {
	tt := ttable.New(1<<20)
	p := board.InitialPosition()
	search.Run(context.Background(), &p, 2, 1, tt, func(search.Progress) {})
	require.Greater(t, tt.Len(), int64(0))

	tt.Clear()
	var first *search.Progress
	search.Run(context.Background(), &p, 1, 1, tt, func(pr search.Progress) {
		if first == nil {
			cp := pr
			first = &cp
		}
	})
	require.NotNil(t, first)
	assert.Equal(t, 0, first.HashPermille)
}
