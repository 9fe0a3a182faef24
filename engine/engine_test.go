package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/engine"
	"github.com/shrikechess/shrike/score"
	"github.com/shrikechess/shrike/search"
)

func TestSearchDrawnPositionScoresZero(t *testing.T) {
	p, err := board.FromFEN("7k/8/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)

	e := engine.NewEngine()
	var last search.Progress
	e.Search(context.Background(), []board.Position{p}, engine.Limits{Depth: 6, WorkerCount: 1}, func(pr search.Progress) {
		last = pr
	})
	assert.Equal(t, score.Cp(0), last.Score, "bare kings should be recognized as drawn at the root")
}

func TestSearchPawnEndgameScoresPositive(t *testing.T) {
	p, err := board.FromFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	e := engine.NewEngine()
	var last search.Progress
	best := e.Search(context.Background(), []board.Position{p}, engine.Limits{Depth: 4, WorkerCount: 1}, func(pr search.Progress) {
		last = pr
	})
	assert.False(t, best.IsNull())
	require.Equal(t, score.KindCp, last.Score.Kind)
	assert.Positive(t, last.Score.V, "the side with the extra pawn should be ahead")
}

func TestSearchSerializesStateMachine(t *testing.T) {
	e := engine.NewEngine()
	assert.Equal(t, search.Idle, e.State())
	p := board.InitialPosition()
	e.Search(context.Background(), []board.Position{p}, engine.Limits{Depth: 1, WorkerCount: 1}, nil)
	assert.Equal(t, search.Idle, e.State(), "the engine returns to Idle after reporting")
}

func TestSetHashReallocates(t *testing.T) {
	e := engine.NewEngine()
	p := board.InitialPosition()
	e.Search(context.Background(), []board.Position{p}, engine.Limits{Depth: 2, WorkerCount: 1}, nil)
	e.SetHash(1)
	// A fresh table after resize: the first progress line of the next
	// search starts from an empty cache.
	var first *search.Progress
	e.Search(context.Background(), []board.Position{p}, engine.Limits{Depth: 1, WorkerCount: 1}, func(pr search.Progress) {
		if first == nil {
			cp := pr
			first = &cp
		}
	})
	require.NotNil(t, first)
	assert.Equal(t, 0, first.HashPermille)
}
