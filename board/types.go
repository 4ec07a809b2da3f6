package board

import (
	"math/bits"
)

// Color identifies a side. Black is 0 and White is 1 so that a piece's color
// can be read straight out of bit 3 of its encoding.
type Color uint8

const (
	Black Color = 0
	White Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

var pieceTypeChars = [7]byte{'p', 'n', 'b', 'r', 'q', 'k', '.'}

func (t PieceType) String() string { return string(pieceTypeChars[t%7]) }

// Piece packs a type in the low 3 bits and the color in bit 3.
type Piece uint8

const (
	BlackPawn   Piece = Piece(Pawn)
	BlackKnight Piece = Piece(Knight)
	BlackBishop Piece = Piece(Bishop)
	BlackRook   Piece = Piece(Rook)
	BlackQueen  Piece = Piece(Queen)
	BlackKing   Piece = Piece(King)

	// NoPiece marks an empty square.
	NoPiece Piece = Piece(NoPieceType)

	WhitePawn   Piece = 8 | Piece(Pawn)
	WhiteKnight Piece = 8 | Piece(Knight)
	WhiteBishop Piece = 8 | Piece(Bishop)
	WhiteRook   Piece = 8 | Piece(Rook)
	WhiteQueen  Piece = 8 | Piece(Queen)
	WhiteKing   Piece = 8 | Piece(King)
)

// MakePiece combines a colorless type with a side to produce a concrete Piece.
func MakePiece(c Color, t PieceType) Piece { return Piece(t) | Piece(c)<<3 }

// Type returns the colorless type of the piece.
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece.
func (p Piece) Color() Color { return Color(p >> 3) }

// Char returns the FEN letter of the piece, '.' for NoPiece.
func (p Piece) Char() byte {
	ch := pieceTypeChars[p.Type()%7]
	if p.Type() != NoPieceType && p.Color() == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string { return string(p.Char()) }

// CastlingRights holds one bit per castling option.
type CastlingRights uint8

const (
	CastlingWhiteShort CastlingRights = 1 << iota
	CastlingWhiteLong
	CastlingBlackShort
	CastlingBlackLong

	CastlingNone CastlingRights = 0
	CastlingAll  CastlingRights = 0xF
)

// Square represents a board position (0-63), a1=0 and h8=63.
type Square uint8

// NoSquare is the en-passant sentinel.
const NoSquare Square = 64

// Named squares used by castling and tests.
const (
	A1 Square = 0
	B1 Square = 1
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	A8 Square = 56
	B8 Square = 57
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

func (sq Square) File() int { return int(sq) & 7 }
func (sq Square) Rank() int { return int(sq) >> 3 }

// Bitboard returns a bitboard with only this square set.
func (sq Square) Bitboard() uint64 { return uint64(1) << sq }

func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare converts "a1".."h8" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, parseErrorf(s, "invalid square")
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// FlipIndex mirrors a square vertically (a1 <-> a8).
func FlipIndex(sq Square) Square { return sq ^ 56 }

// ==========================
// Bitboard helpers
// ==========================

const (
	fileMaskA uint64 = 0x0101010101010101
	rankMask1 uint64 = 0xFF
)

// FileMask returns the bitboard of file 0..7.
func FileMask(file int) uint64 { return fileMaskA << uint(file) }

// RankMask returns the bitboard of rank 0..7.
func RankMask(rank int) uint64 { return rankMask1 << uint(8*rank) }

// PopLSB removes and returns the least significant set bit from the mask.
func PopLSB(mask *uint64) Square {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return Square(idx)
}
