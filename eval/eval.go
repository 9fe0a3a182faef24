// Package eval implements the static evaluation function: a tapered,
// PeSTO-style piece-square-table score from the perspective of the side
// to move, plus the Obvious shortcut for trivially-known positions.
package eval

import (
	"math/bits"

	"github.com/shrikechess/shrike/board"
	"github.com/shrikechess/shrike/score"
)

// Material values in centipawns, middlegame and endgame, indexed by
// board.Role (NoRole and King unused for material purposes; King's value is
// never summed into material since it is never captured).
var (
	mgMaterial = [7]int32{0, 82, 337, 365, 477, 1025, 0}
	egMaterial = [7]int32{0, 94, 281, 297, 512, 936, 0}
)

// phaseWeight is the game-phase contribution of one piece of the given
// role: pawn 0, minor 1, rook 2, queen 4, king 0.
var phaseWeight = [7]int32{0, 0, 1, 1, 2, 4, 0}

const totalPhase = 24 // both full armies: 2 * (4 minors + 2 rooks*2 + queen*4)

// pst holds [role][square] piece-square values from White's perspective
// (square 0 = a1); Black values are read via a vertically mirrored index.
// The tables are built from closed-form shapes instead of literal value
// dumps: pawns advance, knights/bishops/queens centralize, rooks want the
// 7th rank, the king hides in the middlegame and centralizes in the
// endgame.
var (
	mgPST [7][64]int32
	egPST [7][64]int32
)

func init() {
	buildPawnPST()
	buildKnightPST()
	buildBishopPST()
	buildRookPST()
	buildQueenPST()
	buildKingPST()
}

// centerBonus gives a small bump to central squares, used as the shared
// shape for several of the middlegame tables below.
func centerBonus(sq board.Square) int32 {
	f, r := sq.File(), sq.Rank()
	df, dr := f-3, r-3
	if df < 0 {
		df = -df - 1
	}
	if dr < 0 {
		dr = -dr - 1
	}
	return int32(6 - df - dr)
}

func buildPawnPST() {
	for sq := 0; sq < 64; sq++ {
		r := board.Square(sq).Rank()
		f := board.Square(sq).File()
		centerFile := int32(4 - abs(f-3))
		mgPST[board.Pawn][sq] = int32(r-1)*6 + centerFile*4
		egPST[board.Pawn][sq] = int32(r - 1) * 12
	}
	// Back-rank and promotion-rank squares never hold a pawn; values there
	// are never read since no bitboard bit can be set there, left as-is.
}

func buildKnightPST() {
	for sq := 0; sq < 64; sq++ {
		c := centerBonus(board.Square(sq)) * 5
		mgPST[board.Knight][sq] = c
		egPST[board.Knight][sq] = c
	}
}

func buildBishopPST() {
	for sq := 0; sq < 64; sq++ {
		c := centerBonus(board.Square(sq)) * 3
		mgPST[board.Bishop][sq] = c
		egPST[board.Bishop][sq] = c
	}
}

func buildRookPST() {
	for sq := 0; sq < 64; sq++ {
		r := board.Square(sq).Rank()
		bonus := int32(0)
		if r == 6 {
			bonus = 20
		}
		mgPST[board.Rook][sq] = bonus
		egPST[board.Rook][sq] = bonus
	}
}

func buildQueenPST() {
	for sq := 0; sq < 64; sq++ {
		c := centerBonus(board.Square(sq)) * 2
		mgPST[board.Queen][sq] = c
		egPST[board.Queen][sq] = c
	}
}

func buildKingPST() {
	for sq := 0; sq < 64; sq++ {
		r := board.Square(sq).Rank()
		f := board.Square(sq).File()
		// Middlegame: reward staying on the back rank near the corners
		// (castled safety); endgame: reward centralization.
		edge := int32(0)
		if f <= 1 || f >= 6 {
			edge = 15
		}
		mgPST[board.King][sq] = edge - int32(r)*10
		egPST[board.King][sq] = centerBonus(board.Square(sq)) * 4
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func pstIndex(sq board.Square, c board.Color) int {
	if c == board.White {
		return int(sq)
	}
	return int(board.MakeSquare(sq.File(), 7-sq.Rank()))
}

// Evaluate returns the static evaluation of p from the perspective of the
// side to move, in centipawns: tapered material + PST blend
// weighted by game phase, oriented by side-to-move sign.
func Evaluate(p *board.Position) int32 {
	var mgScore, egScore, phase int32

	accumulate := func(bb uint64, role board.Role, color board.Color) {
		for bb != 0 {
			sq := board.Square(bits.TrailingZeros64(bb))
			bb &= bb - 1
			idx := pstIndex(sq, color)
			sign := int32(1)
			if color == board.Black {
				sign = -1
			}
			mgScore += sign * (mgMaterial[role] + mgPST[role][idx])
			egScore += sign * (egMaterial[role] + egPST[role][idx])
			phase += phaseWeight[role]
		}
	}

	for _, role := range []board.Role{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King} {
		var bb uint64
		switch role {
		case board.Pawn:
			bb = p.Pawns
		case board.Knight:
			bb = p.Knights
		case board.Bishop:
			bb = p.Bishops
		case board.Rook:
			bb = p.Rooks
		case board.Queen:
			bb = p.Queens
		case board.King:
			bb = p.Kings
		}
		accumulate(bb&p.White, role, board.White)
		accumulate(bb&p.Black, role, board.Black)
	}

	mgPhase := phase
	if mgPhase > totalPhase {
		mgPhase = totalPhase
	}
	egPhase := totalPhase - mgPhase

	total := (mgScore*mgPhase + egScore*egPhase) / totalPhase
	if p.ToMove == board.Black {
		total = -total
	}
	return total
}

// Obvious short-circuits positions whose value needs no evaluation:
// Mate(0) if the side to move is checkmated, Cp(0) if stalemated or drawn
// by insufficient material, and ok=false otherwise (the caller falls
// through to full search/evaluation).
func Obvious(p *board.Position) (s score.Score, ok bool) {
	if p.IsCheckmate() {
		return score.Mate(0), true
	}
	if p.IsStalemate() {
		return score.Cp(0), true
	}
	if p.InsufficientMaterial() {
		return score.Cp(0), true
	}
	return score.Score{}, false
}
