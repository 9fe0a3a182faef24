package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/score"
	"github.com/shrikechess/shrike/ttable"
)

// TestCacheSoundness checks that the score returned by a full-window
// search does not depend on whether the cache is warm or freshly cleared;
// the cache may only affect speed.
func TestCacheSoundness(t *testing.T) {
	p := board.InitialPosition()

	warm := ttable.New(1<<20)
	r1, ok := alphabeta(context.Background(), warm, &p, score.MinusInf, score.PlusInf, 3)
	require.True(t, ok)

	cold := ttable.New(1<<20)
	r2, ok := alphabeta(context.Background(), cold, &p, score.MinusInf, score.PlusInf, 3)
	require.True(t, ok)

	assert.True(t, r1.Score.Equal(r2.Score), "cache state must not change the returned score")

	// Re-running against the now-warm cache from r1 must also agree.
	r3, ok := alphabeta(context.Background(), warm, &p, score.MinusInf, score.PlusInf, 3)
	require.True(t, ok)
	assert.True(t, r1.Score.Equal(r3.Score))
}

func TestAlphaBetaCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := board.InitialPosition()
	_, ok := alphabeta(ctx, ttable.New(1<<20), &p, score.MinusInf, score.PlusInf, 4)
	assert.False(t, ok, "a pre-cancelled context must make alphabeta return ok=false")
}

func TestAlphaBetaFindsMateInOne(t *testing.T) {
	p, err := board.FromFEN("8/8/8/8/8/6k1/5q2/7K b - - 0 1")
	require.NoError(t, err)
	r, ok := alphabeta(context.Background(), ttable.New(1<<20), &p, score.MinusInf, score.PlusInf, 2)
	require.True(t, ok)
	assert.Equal(t, "mate 1", r.Score.UCI())

	// Several queen moves mate here; any of them is correct.
	m, found := findMoveByName(&p, r.BestMove().String())
	require.True(t, found)
	next := p.Apply(m)
	assert.True(t, next.IsCheckmate(), "the chosen move %s must deliver mate", m)
}

func findMoveByName(p *board.Position, name string) (board.Move, bool) {
	for _, m := range p.LegalMoves() {
		if m.String() == name {
			return m, true
		}
	}
	return board.Move{}, false
}

func TestQsearchStandPat(t *testing.T) {
	p := board.InitialPosition()
	s, nodes := qsearch(&p, score.MinusInf, score.PlusInf)
	assert.Equal(t, score.Cp(0), s, "quiet starting position should stand pat at the static eval")
	assert.Equal(t, int64(1), nodes)
}
