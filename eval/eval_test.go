package eval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/eval"
)

// TestSymmetry checks that evaluating a color-mirrored position gives the
// same result as evaluating the original.
func TestSymmetry(t *testing.T) {
	positions := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"8/8/8/4k3/8/4K3/4P3/8 w - - 0 1",
	}
	for _, fen := range positions {
		p, err := board.FromFEN(fen)
		require.NoError(t, err)
		m := p.Mirror()
		assert.Equal(t, eval.Evaluate(&p), eval.Evaluate(&m), "mirroring should not change the evaluation: %s", fen)
	}
}

func TestObviousCheckmate(t *testing.T) {
	// Rook on a8 mates a king boxed in by its own pawns on the back rank.
	p, err := board.FromFEN("R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	require.NoError(t, err)
	s, ok := eval.Obvious(&p)
	require.True(t, ok)
	assert.Equal(t, "mate 0", s.UCI())
}

func TestObviousInsufficientMaterial(t *testing.T) {
	p, err := board.FromFEN("8/8/8/4k3/8/4K3/8/8 w - - 0 1")
	require.NoError(t, err)
	_, ok := eval.Obvious(&p)
	assert.True(t, ok, "bare kings should be an obvious draw")
}

func TestEvaluateStartposIsZero(t *testing.T) {
	p := board.InitialPosition()
	assert.Equal(t, int32(0), eval.Evaluate(&p), "symmetric starting position should evaluate to exactly 0")
}
