package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/order"
)

func TestCapturesBeforeQuiets(t *testing.T) {
	moves := []board.Move{
		{From: board.MakeSquare(4, 1), To: board.MakeSquare(4, 3), Piece: board.Pawn},
		{From: board.MakeSquare(3, 3), To: board.MakeSquare(4, 4), Piece: board.Pawn, Captured: board.Pawn},
		{From: board.MakeSquare(6, 0), To: board.MakeSquare(5, 2), Piece: board.Knight},
	}
	ranked := order.Order(moves)
	assert.True(t, ranked[0].Move.IsCapture(), "the only capture should sort first")
	assert.False(t, ranked[1].Move.IsCapture())
	assert.False(t, ranked[2].Move.IsCapture())
}

func TestMostValuableVictimFirst(t *testing.T) {
	pxq := board.Move{Piece: board.Pawn, Captured: board.Queen}
	nxp := board.Move{Piece: board.Knight, Captured: board.Pawn}
	ranked := order.Order([]board.Move{nxp, pxq})
	assert.Equal(t, pxq, ranked[0].Move, "capturing a queen should outrank capturing a pawn regardless of generation order")
}

func TestLeastValuableAttackerBreaksTies(t *testing.T) {
	qxq := board.Move{Piece: board.Queen, Captured: board.Queen}
	pxq := board.Move{Piece: board.Pawn, Captured: board.Queen}
	ranked := order.Order([]board.Move{qxq, pxq})
	assert.Equal(t, pxq, ranked[0].Move, "PxQ should outrank QxQ: same victim, cheaper attacker")
}

func TestOrderIsStable(t *testing.T) {
	a := board.Move{From: board.MakeSquare(0, 1), To: board.MakeSquare(0, 2), Piece: board.Pawn}
	b := board.Move{From: board.MakeSquare(1, 1), To: board.MakeSquare(1, 2), Piece: board.Pawn}
	ranked := order.Order([]board.Move{a, b})
	assert.Equal(t, a, ranked[0].Move)
	assert.Equal(t, b, ranked[1].Move)
}
