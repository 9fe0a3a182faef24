package board

import (
	"fmt"
	"strconv"
	"strings"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// InitialPosition returns the standard chess starting position.
func InitialPosition() Position {
	p, err := FromFEN(startFEN)
	if err != nil {
		panic("board: startFEN failed to parse: " + err.Error())
	}
	return p
}

// FromFEN parses Forsyth-Edwards Notation into a Position. It accepts the
// usual six fields; a trailing halfmove/fullmove pair of "0 1" is assumed
// if omitted (some FEN sources truncate it).
func FromFEN(fen string) (Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("board: FEN %q: need at least 4 fields, got %d", fen, len(fields))
	}
	var p Position
	p.EpSquare = NoSquare

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Position{}, fmt.Errorf("board: FEN %q: expected 8 ranks, got %d", fen, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if file > 8 {
				return Position{}, fmt.Errorf("board: FEN %q: rank %d overflows", fen, rank+1)
			}
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			role, color, ok := roleFromFENChar(ch)
			if !ok {
				return Position{}, fmt.Errorf("board: FEN %q: bad piece char %q", fen, ch)
			}
			p.place(role, color, MakeSquare(file, rank))
			file++
		}
	}

	switch fields[1] {
	case "w":
		p.ToMove = White
	case "b":
		p.ToMove = Black
	default:
		return Position{}, fmt.Errorf("board: FEN %q: bad side to move %q", fen, fields[1])
	}

	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				p.Castling |= WhiteKingSide
			case 'Q':
				p.Castling |= WhiteQueenSide
			case 'k':
				p.Castling |= BlackKingSide
			case 'q':
				p.Castling |= BlackQueenSide
			default:
				return Position{}, fmt.Errorf("board: FEN %q: bad castling char %q", fen, ch)
			}
		}
	}

	if fields[3] != "-" {
		sq, err := parseSquareName(fields[3])
		if err != nil {
			return Position{}, fmt.Errorf("board: FEN %q: %w", fen, err)
		}
		p.EpSquare = sq
	}

	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return Position{}, fmt.Errorf("board: FEN %q: bad halfmove clock %q", fen, fields[4])
		}
		p.HalfmoveClock = n
	}

	p.Key = Hash(&p, EPLegalOnly)
	return p, nil
}

func roleFromFENChar(ch rune) (Role, Color, bool) {
	color := White
	lower := ch
	if ch >= 'a' && ch <= 'z' {
		color = Black
	} else {
		lower = ch + ('a' - 'A')
	}
	switch lower {
	case 'p':
		return Pawn, color, true
	case 'n':
		return Knight, color, true
	case 'b':
		return Bishop, color, true
	case 'r':
		return Rook, color, true
	case 'q':
		return Queen, color, true
	case 'k':
		return King, color, true
	default:
		return NoRole, White, false
	}
}

func parseSquareName(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("bad square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("bad square %q", s)
	}
	return MakeSquare(file, rank), nil
}

// FEN renders p back into Forsyth-Edwards Notation. The halfmove clock is
// printed; the fullmove number is not tracked by Position so it is always
// emitted as 1, matching positions constructed mid-search rather than from
// a game record.
func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := MakeSquare(file, rank)
			role := p.RoleAt(sq)
			if role == NoRole {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			ch := role.String()
			if p.ColorAt(sq) == White {
				ch = strings.ToUpper(ch)
			}
			sb.WriteString(ch)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.ToMove == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	rights := ""
	if p.Castling&WhiteKingSide != 0 {
		rights += "K"
	}
	if p.Castling&WhiteQueenSide != 0 {
		rights += "Q"
	}
	if p.Castling&BlackKingSide != 0 {
		rights += "k"
	}
	if p.Castling&BlackQueenSide != 0 {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	sb.WriteString(p.EpSquare.String())

	sb.WriteString(fmt.Sprintf(" %d 1", p.HalfmoveClock))
	return sb.String()
}
