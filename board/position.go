package board

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = 56 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// Castling rights bits.
const (
	WhiteKingSide uint8 = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

// Position is the board state the search core treats as opaque. It is
// always passed and returned by value (or via a pointer receiver that
// never mutates its receiver), so a search worker holding its own copy
// never observes another worker's moves.
type Position struct {
	Pawns, Knights, Bishops, Rooks, Queens, Kings uint64
	White, Black                                  uint64
	ToMove                                        Color
	Castling                                      uint8
	EpSquare                                      Square // NoSquare if none
	HalfmoveClock                                 int
	LastMove                                      Move
	Key                                           uint64 // Hash(p, EPLegalOnly), kept current
}

func (p *Position) occupied() uint64 { return p.White | p.Black }

func (p *Position) occupancyOf(c Color) uint64 {
	if c == White {
		return p.White
	}
	return p.Black
}

// RoleAt returns the role occupying sq, or NoRole if empty.
func (p *Position) RoleAt(sq Square) Role {
	bb := sq.bit()
	switch {
	case p.Pawns&bb != 0:
		return Pawn
	case p.Knights&bb != 0:
		return Knight
	case p.Bishops&bb != 0:
		return Bishop
	case p.Rooks&bb != 0:
		return Rook
	case p.Queens&bb != 0:
		return Queen
	case p.Kings&bb != 0:
		return King
	default:
		return NoRole
	}
}

// ColorAt returns the color occupying sq; only meaningful if RoleAt(sq) != NoRole.
func (p *Position) ColorAt(sq Square) Color {
	if p.White&sq.bit() != 0 {
		return White
	}
	return Black
}

func (p *Position) bitboardFor(r Role) *uint64 {
	switch r {
	case Pawn:
		return &p.Pawns
	case Knight:
		return &p.Knights
	case Bishop:
		return &p.Bishops
	case Rook:
		return &p.Rooks
	case Queen:
		return &p.Queens
	case King:
		return &p.Kings
	default:
		panic("board: bitboardFor(NoRole)")
	}
}

func (p *Position) place(r Role, c Color, sq Square) {
	*p.bitboardFor(r) |= sq.bit()
	if c == White {
		p.White |= sq.bit()
	} else {
		p.Black |= sq.bit()
	}
}

func (p *Position) remove(r Role, c Color, sq Square) {
	*p.bitboardFor(r) &^= sq.bit()
	if c == White {
		p.White &^= sq.bit()
	} else {
		p.Black &^= sq.bit()
	}
}

// IsSquareAttacked reports whether sq is attacked by a piece of color by.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	theirs := p.occupancyOf(by)
	if pawnAttacks[by.Opposite()][sq]&p.Pawns&theirs != 0 {
		return true
	}
	if knightAttacks[sq]&p.Knights&theirs != 0 {
		return true
	}
	if kingAttacks[sq]&p.Kings&theirs != 0 {
		return true
	}
	occ := p.occupied()
	if bishopAttacks(sq, occ)&(p.Bishops|p.Queens)&theirs != 0 {
		return true
	}
	if rookAttacks(sq, occ)&(p.Rooks|p.Queens)&theirs != 0 {
		return true
	}
	return false
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.kingInCheck(p.ToMove)
}

func (p *Position) kingInCheck(c Color) bool {
	kingBB := p.Kings & p.occupancyOf(c)
	if kingBB == 0 {
		return false
	}
	return p.IsSquareAttacked(BitScan(kingBB), c.Opposite())
}

// Mirror returns a position with colors swapped and the board flipped
// vertically. Castling rights are swapped correspondingly; the en passant
// square, if any, is mirrored too.
func (p *Position) Mirror() Position {
	flip := func(bb uint64) uint64 {
		var out uint64
		for bb != 0 {
			sq := BitScan(bb)
			bb &= bb - 1
			msq := MakeSquare(sq.File(), 7-sq.Rank())
			out |= msq.bit()
		}
		return out
	}
	m := Position{
		Pawns:         flip(p.Pawns),
		Knights:       flip(p.Knights),
		Bishops:       flip(p.Bishops),
		Rooks:         flip(p.Rooks),
		Queens:        flip(p.Queens),
		Kings:         flip(p.Kings),
		White:         flip(p.Black),
		Black:         flip(p.White),
		ToMove:        p.ToMove.Opposite(),
		HalfmoveClock: p.HalfmoveClock,
	}
	if p.EpSquare != NoSquare {
		m.EpSquare = MakeSquare(p.EpSquare.File(), 7-p.EpSquare.Rank())
	} else {
		m.EpSquare = NoSquare
	}
	if p.Castling&WhiteKingSide != 0 {
		m.Castling |= BlackKingSide
	}
	if p.Castling&WhiteQueenSide != 0 {
		m.Castling |= BlackQueenSide
	}
	if p.Castling&BlackKingSide != 0 {
		m.Castling |= WhiteKingSide
	}
	if p.Castling&BlackQueenSide != 0 {
		m.Castling |= WhiteQueenSide
	}
	m.Key = Hash(&m, EPLegalOnly)
	return m
}

func rookCastleRightsLost(sq Square) uint8 {
	switch sq {
	case A1:
		return WhiteQueenSide
	case H1:
		return WhiteKingSide
	case A8:
		return BlackQueenSide
	case H8:
		return BlackKingSide
	default:
		return 0
	}
}

// Apply returns the position after playing m, which must be a move
// returned by LegalMoves (or Captures) for this exact position. Playing
// any other move is a programmer error and panics.
func (p *Position) Apply(m Move) Position {
	next := p.applyPseudoLegal(m)
	if next.kingInCheck(p.ToMove) {
		panic("board: Apply called with a move that leaves the mover in check")
	}
	return next
}

// applyPseudoLegal performs the mechanical part of move application without
// verifying that the mover's king ends up safe; LegalMoves uses it
// internally to test pseudo-legal candidates.
func (p *Position) applyPseudoLegal(m Move) Position {
	next := *p
	us := p.ToMove
	them := us.Opposite()

	next.HalfmoveClock = p.HalfmoveClock + 1
	next.EpSquare = NoSquare
	next.LastMove = m

	next.remove(m.Piece, us, m.From)

	switch m.Kind {
	case EnPassant:
		next.HalfmoveClock = 0
		capSq := MakeSquare(m.To.File(), m.From.Rank())
		next.remove(Pawn, them, capSq)
		next.place(Pawn, us, m.To)
	case CastleKingSide, CastleQueenSide:
		next.place(King, us, m.To)
		var rookFrom, rookTo Square
		if m.Kind == CastleKingSide {
			if us == White {
				rookFrom, rookTo = H1, F1
			} else {
				rookFrom, rookTo = H8, F8
			}
		} else {
			if us == White {
				rookFrom, rookTo = A1, D1
			} else {
				rookFrom, rookTo = A8, D8
			}
		}
		next.remove(Rook, us, rookFrom)
		next.place(Rook, us, rookTo)
	default: // Normal or DoublePawnPush
		if m.Captured != NoRole {
			next.HalfmoveClock = 0
			next.remove(m.Captured, them, m.To)
		}
		placed := m.Piece
		if m.Promotion != NoRole {
			placed = m.Promotion
		}
		if m.Piece == Pawn {
			next.HalfmoveClock = 0
		}
		next.place(placed, us, m.To)
		if m.Kind == DoublePawnPush {
			next.EpSquare = MakeSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
		}
	}

	if m.Piece == King {
		if us == White {
			next.Castling &^= WhiteKingSide | WhiteQueenSide
		} else {
			next.Castling &^= BlackKingSide | BlackQueenSide
		}
	}
	next.Castling &^= rookCastleRightsLost(m.From)
	next.Castling &^= rookCastleRightsLost(m.To)

	next.ToMove = them
	next.Key = Hash(&next, EPLegalOnly)
	return next
}

// InsufficientMaterial reports a draw by insufficient mating material: no
// pawns, rooks or queens on the board, and at most one minor piece total.
// Conservative: same-colored-bishop draws are not special-cased.
func (p *Position) InsufficientMaterial() bool {
	if p.Pawns|p.Rooks|p.Queens != 0 {
		return false
	}
	return !MoreThanOne(p.Knights | p.Bishops)
}

// IsCheckmate reports checkmate: the side to move is in check and has no
// legal move.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && len(p.LegalMoves()) == 0
}

// IsStalemate reports stalemate: the side to move is not in check and has
// no legal move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && len(p.LegalMoves()) == 0
}
