package board

// LegalMoves returns every legal move for the side to move. Pseudo-
// legal candidates are generated first and then filtered by actually
// applying each one and checking that the mover's own king is safe
// afterwards. Simple and easy to verify by inspection, at the cost of
// being slower than a pinned-piece-aware generator.
func (p *Position) LegalMoves() []Move {
	pseudo := p.pseudoLegalMoves(false)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		next := p.applyPseudoLegal(m)
		if !next.kingInCheck(p.ToMove) {
			legal = append(legal, m)
		}
	}
	return legal
}

// Captures returns the legal captures only (including en passant), the
// set quiescence search iterates over.
func (p *Position) Captures() []Move {
	pseudo := p.pseudoLegalMoves(true)
	caps := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		next := p.applyPseudoLegal(m)
		if !next.kingInCheck(p.ToMove) {
			caps = append(caps, m)
		}
	}
	return caps
}

func promotionRoles() []Role { return []Role{Queen, Rook, Bishop, Knight} }

// pseudoLegalMoves generates all moves obeying piece movement rules but not
// yet filtered for leaving the mover's own king in check. capturesOnly
// restricts pawn/piece moves to captures (including en passant) but still
// includes castling only when capturesOnly is false, since castling is
// never a capture.
func (p *Position) pseudoLegalMoves(capturesOnly bool) []Move {
	us := p.ToMove
	them := us.Opposite()
	own := p.occupancyOf(us)
	enemy := p.occupancyOf(them)
	occ := p.occupied()

	moves := make([]Move, 0, 48)

	// Pawns.
	pawns := p.Pawns & own
	forward := north
	startRank, promoRank := 1, 6
	if us == Black {
		forward = south
		startRank, promoRank = 6, 1
	}
	for bb := pawns; bb != 0; {
		from := BitScan(bb)
		bb &= bb - 1

		if !capturesOnly {
			oneBB := forward(from.bit()) &^ occ
			if oneBB != 0 {
				to := BitScan(oneBB)
				moves = append(moves, pawnMoveOrPromotions(from, to, from.Rank() == promoRank)...)
				if from.Rank() == startRank {
					twoBB := forward(oneBB) &^ occ
					if twoBB != 0 {
						moves = append(moves, Move{From: from, To: BitScan(twoBB), Piece: Pawn, Kind: DoublePawnPush})
					}
				}
			}
		}

		atk := pawnAttacks[us][from]
		for capBB := atk & enemy; capBB != 0; {
			to := BitScan(capBB)
			capBB &= capBB - 1
			moves = append(moves, pawnMoveOrPromotions2(from, to, p.RoleAt(to), from.Rank() == promoRank)...)
		}
		if p.EpSquare != NoSquare && atk&p.EpSquare.bit() != 0 {
			moves = append(moves, Move{From: from, To: p.EpSquare, Piece: Pawn, Captured: Pawn, Kind: EnPassant})
		}
	}

	for bb := p.Knights & own; bb != 0; {
		from := BitScan(bb)
		bb &= bb - 1
		targets := knightAttacks[from] &^ own
		if capturesOnly {
			targets &= enemy
		}
		appendTargets(&moves, from, Knight, targets, p)
	}

	for bb := p.Kings & own; bb != 0; {
		from := BitScan(bb)
		bb &= bb - 1
		targets := kingAttacks[from] &^ own
		if capturesOnly {
			targets &= enemy
		}
		appendTargets(&moves, from, King, targets, p)
	}

	for bb := p.Bishops & own; bb != 0; {
		from := BitScan(bb)
		bb &= bb - 1
		targets := bishopAttacks(from, occ) &^ own
		if capturesOnly {
			targets &= enemy
		}
		appendTargets(&moves, from, Bishop, targets, p)
	}

	for bb := p.Rooks & own; bb != 0; {
		from := BitScan(bb)
		bb &= bb - 1
		targets := rookAttacks(from, occ) &^ own
		if capturesOnly {
			targets &= enemy
		}
		appendTargets(&moves, from, Rook, targets, p)
	}

	for bb := p.Queens & own; bb != 0; {
		from := BitScan(bb)
		bb &= bb - 1
		targets := queenAttacks(from, occ) &^ own
		if capturesOnly {
			targets &= enemy
		}
		appendTargets(&moves, from, Queen, targets, p)
	}

	if !capturesOnly {
		moves = append(moves, p.castlingMoves()...)
	}

	return moves
}

func appendTargets(moves *[]Move, from Square, piece Role, targets uint64, p *Position) {
	for targets != 0 {
		to := BitScan(targets)
		targets &= targets - 1
		*moves = append(*moves, Move{From: from, To: to, Piece: piece, Captured: p.RoleAt(to)})
	}
}

func pawnMoveOrPromotions(from, to Square, promotes bool) []Move {
	return pawnMoveOrPromotions2(from, to, NoRole, promotes)
}

func pawnMoveOrPromotions2(from, to Square, captured Role, promotes bool) []Move {
	if !promotes {
		return []Move{{From: from, To: to, Piece: Pawn, Captured: captured}}
	}
	out := make([]Move, 0, 4)
	for _, promo := range promotionRoles() {
		out = append(out, Move{From: from, To: to, Piece: Pawn, Captured: captured, Promotion: promo})
	}
	return out
}

// castlingMoves returns pseudo-legal castling moves: it checks that the
// rights are held, the squares between king and rook are empty, and that
// the king does not start, pass through, or land on an attacked square
// (the one piece of "legality" castling needs before the generic
// apply-and-check-king filter, since that filter only sees the final
// square).
func (p *Position) castlingMoves() []Move {
	us := p.ToMove
	them := us.Opposite()
	occ := p.occupied()
	var moves []Move

	tryCastle := func(right uint8, kingFrom, kingTo Square, between uint64, kind Kind) {
		if p.Castling&right == 0 {
			return
		}
		if occ&between != 0 {
			return
		}
		step := (int(kingTo) - int(kingFrom)) / 2
		passSq := Square(int(kingFrom) + step)
		for _, sq := range [3]Square{kingFrom, passSq, kingTo} {
			if p.IsSquareAttacked(sq, them) {
				return
			}
		}
		moves = append(moves, Move{From: kingFrom, To: kingTo, Piece: King, Kind: kind})
	}

	if us == White {
		tryCastle(WhiteKingSide, E1, G1, F1.bit()|G1.bit(), CastleKingSide)
		tryCastle(WhiteQueenSide, E1, C1, B1.bit()|C1.bit()|D1.bit(), CastleQueenSide)
	} else {
		tryCastle(BlackKingSide, E8, G8, F8.bit()|G8.bit(), CastleKingSide)
		tryCastle(BlackQueenSide, E8, C8, B8.bit()|C8.bit()|D8.bit(), CastleQueenSide)
	}
	return moves
}
