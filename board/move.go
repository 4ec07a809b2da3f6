package board

import "strings"

// Move encodes a chess move in 16 bits.
type Move uint16

// Bitfield layout within Move (from LSB to MSB)
const (
	moveFromShift = 0  // 6 bits
	moveToShift   = 6  // 6 bits
	moveFlagShift = 12 // 4 bits
)

// MaxMoves bounds the number of moves in any position (the real maximum is 218).
const MaxMoves = 256

// MoveList is the fixed-size buffer move generation writes into.
type MoveList [MaxMoves]Move

// NullMove is the zero move, rendered as "0000".
const NullMove Move = 0

// Flag distinguishes special moves.
type Flag uint8

const (
	Normal Flag = iota
	// Castling flags: flag-1 is the bit index of the matching castling right.
	CastleWhiteShort
	CastleWhiteLong
	CastleBlackShort
	CastleBlackLong
	PromoteKnight
	PromoteBishop
	PromoteRook
	PromoteQueen
	EnPassant
	DoublePawnPush
)

// IsCastle reports whether the flag is one of the four castling variants.
func (f Flag) IsCastle() bool { return f >= CastleWhiteShort && f <= CastleBlackLong }

// IsPromotion reports whether the flag is one of the four promotion variants.
func (f Flag) IsPromotion() bool { return f >= PromoteKnight && f <= PromoteQueen }

// PromotionType returns the piece type a promotion flag produces.
func (f Flag) PromotionType() PieceType { return Knight + PieceType(f-PromoteKnight) }

// promotionFlag is the inverse of PromotionType.
func promotionFlag(t PieceType) Flag { return PromoteKnight + Flag(t-Knight) }

// castleRight returns the castling right bit belonging to a castling flag.
func (f Flag) castleRight() CastlingRights { return CastlingRights(1) << (f - CastleWhiteShort) }

// castling describes the squares involved in one castling move.
type castling struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	between          uint64 // must be empty
	safe             [3]Square
}

// castlings is indexed by flag-1.
var castlings = [4]castling{
	{E1, G1, H1, F1, F1.Bitboard() | G1.Bitboard(), [3]Square{E1, F1, G1}},
	{E1, C1, A1, D1, B1.Bitboard() | C1.Bitboard() | D1.Bitboard(), [3]Square{E1, D1, C1}},
	{E8, G8, H8, F8, F8.Bitboard() | G8.Bitboard(), [3]Square{E8, F8, G8}},
	{E8, C8, A8, D8, B8.Bitboard() | C8.Bitboard() | D8.Bitboard(), [3]Square{E8, D8, C8}},
}

// NewMove constructs a Move value from components.
func NewMove(from, to Square, flag Flag) Move {
	return Move(uint16(from&0x3F)<<moveFromShift |
		uint16(to&0x3F)<<moveToShift |
		uint16(flag&0xF)<<moveFlagShift)
}

// From returns the source square of the move.
func (m Move) From() Square { return Square((m >> moveFromShift) & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((m >> moveToShift) & 0x3F) }

// Flag returns the special move flag.
func (m Move) Flag() Flag { return Flag((m >> moveFlagShift) & 0xF) }

// IsNoisy reports whether the flag alone marks the move as tactical
// (promotion or en passant). Plain captures need the board to tell.
func (m Move) IsNoisy() bool { return m.Flag().IsPromotion() || m.Flag() == EnPassant }

// String produces the long algebraic form of the move (e.g. "e2e4", "e7e8q", "e1g1").
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.Flag().IsPromotion() {
		s += m.Flag().PromotionType().String()
	}
	return s
}

// ParseMove converts a long algebraic move into a Move, inferring the flag
// from the position.
func ParseMove(s string, b *Board) (Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 4 || len(s) > 5 {
		return NullMove, parseErrorf(s, "invalid move length")
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, parseErrorf(s, "invalid origin square")
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, parseErrorf(s, "invalid destination square")
	}
	piece := b.PieceAt(from)
	if piece == NoPieceType {
		return NullMove, parseErrorf(s, "no piece on %s", from)
	}

	flag := Normal
	switch piece {
	case King:
		if from == E1 && to == G1 {
			flag = CastleWhiteShort
		} else if from == E1 && to == C1 {
			flag = CastleWhiteLong
		} else if from == E8 && to == G8 {
			flag = CastleBlackShort
		} else if from == E8 && to == C8 {
			flag = CastleBlackLong
		}
	case Pawn:
		switch {
		case to == b.epSquare:
			flag = EnPassant
		case to.Rank() == 0 || to.Rank() == 7:
			if len(s) != 5 {
				return NullMove, parseErrorf(s, "missing promotion piece")
			}
		case int(to)-int(from) == 16 || int(from)-int(to) == 16:
			flag = DoublePawnPush
		}
	}

	if len(s) == 5 {
		if piece != Pawn || (to.Rank() != 0 && to.Rank() != 7) {
			return NullMove, parseErrorf(s, "promotion suffix on a non-promoting move")
		}
		switch s[4] {
		case 'n':
			flag = PromoteKnight
		case 'b':
			flag = PromoteBishop
		case 'r':
			flag = PromoteRook
		case 'q':
			flag = PromoteQueen
		default:
			return NullMove, parseErrorf(s, "invalid promotion piece")
		}
	}
	return NewMove(from, to, flag), nil
}
