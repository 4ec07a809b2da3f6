package board

import (
	"math/bits"
	"strings"

	"github.com/Ciekce/Clarity/nnue"
)

// historyReserve pre-sizes the undo stacks so search never reallocates in
// ordinary games; deeper games grow the slices.
const historyReserve = 256

// BoardState holds everything MakeMove changes that cannot be cheaply
// re-derived. A copy is pushed before every move and restored on undo.
type BoardState struct {
	colors            [2]uint64 // indexed by Color
	pieces            [6]uint64 // indexed by PieceType
	epSquare          Square
	kingSquares       [2]Square
	fiftyMoveCounter  uint16
	hundredPlyCounter uint16
	castlingRights    CastlingRights
	hash              uint64
	isRepeated        bool
}

// nullState stores what ChangeColor overwrites.
type nullState struct {
	epSquare          Square
	hundredPlyCounter uint16
	hash              uint64
	isRepeated        bool
}

// Board represents the live chess position plus its undo history.
// A Board is not safe for concurrent use; give every goroutine its own.
type Board struct {
	BoardState

	// Half-moves played since the start of the game (derived from the FEN
	// full-move number), not since the Board was constructed.
	plyCount   int
	sideToMove Color

	history     []BoardState
	hashHistory []uint64
	nullHistory []nullState

	// nnue mirrors every piece placement; nil for movegen-only boards.
	nnue *nnue.State
}

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.hash }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRights returns the rights mask still held.
func (b *Board) CastlingRights() CastlingRights { return b.castlingRights }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.epSquare }

// FiftyMoveCounter returns the half-move clock of the fifty-move rule.
func (b *Board) FiftyMoveCounter() int { return int(b.fiftyMoveCounter) }

// HundredPlyCounter returns the half-moves since the last irreversible move.
func (b *Board) HundredPlyCounter() int { return int(b.hundredPlyCounter) }

// PlyCount returns the half-moves played since the start of the game.
func (b *Board) PlyCount() int { return b.plyCount }

// Depth returns the number of moves that can currently be undone.
func (b *Board) Depth() int { return len(b.history) }

// KingSquare returns the square of color's king.
func (b *Board) KingSquare(c Color) Square { return b.kingSquares[c] }

// IsRepeatedPosition reports whether the current position already occurred
// with the same side to move since the last irreversible move.
func (b *Board) IsRepeatedPosition() bool { return b.isRepeated }

// Occupied returns a bitboard of all occupied squares.
func (b *Board) Occupied() uint64 { return b.colors[Black] | b.colors[White] }

// ColorBitboard returns the occupancy of one side.
func (b *Board) ColorBitboard(c Color) uint64 { return b.colors[c] }

// CurrentPlayerBitboard returns the occupancy of the side to move.
func (b *Board) CurrentPlayerBitboard() uint64 { return b.colors[b.sideToMove] }

// ColoredPieceBitboard returns the squares holding pieces of type t and color c.
func (b *Board) ColoredPieceBitboard(c Color, t PieceType) uint64 {
	return b.colors[c] & b.pieces[t]
}

// PieceAt returns the type of the piece on sq, or NoPieceType.
func (b *Board) PieceAt(sq Square) PieceType {
	bit := sq.Bitboard()
	if b.Occupied()&bit == 0 {
		return NoPieceType
	}
	for t := Pawn; t < King; t++ {
		if b.pieces[t]&bit != 0 {
			return t
		}
	}
	return King
}

// ColorAt returns the color of the piece on sq. The result is meaningless
// for empty squares.
func (b *Board) ColorAt(sq Square) Color {
	if b.colors[White]&sq.Bitboard() != 0 {
		return White
	}
	return Black
}

// Piece returns the colored piece on sq, or NoPiece.
func (b *Board) Piece(sq Square) Piece {
	t := b.PieceAt(sq)
	if t == NoPieceType {
		return NoPiece
	}
	return MakePiece(b.ColorAt(sq), t)
}

// ==========================
// Piece placement
// ==========================

// addPiece places a piece on an empty square and updates bitboards, hash and accumulator.
func (b *Board) addPiece(sq Square, c Color, t PieceType) {
	bit := sq.Bitboard()
	b.colors[c] |= bit
	b.pieces[t] |= bit
	b.hash ^= zobristPiece[c][t][sq]
	if b.nnue != nil {
		b.nnue.ActivateFeature(int(MakePiece(c, t)), int(sq))
	}
}

// removePiece clears a piece known to stand on sq.
func (b *Board) removePiece(sq Square, c Color, t PieceType) {
	mask := ^sq.Bitboard()
	b.colors[c] &= mask
	b.pieces[t] &= mask
	b.hash ^= zobristPiece[c][t][sq]
	if b.nnue != nil {
		b.nnue.DeactivateFeature(int(MakePiece(c, t)), int(sq))
	}
}

// movePiece relocates a piece to an empty square in one accumulator pass.
func (b *Board) movePiece(from, to Square, c Color, t PieceType) {
	flip := from.Bitboard() | to.Bitboard()
	b.colors[c] ^= flip
	b.pieces[t] ^= flip
	b.hash ^= zobristPiece[c][t][from] ^ zobristPiece[c][t][to]
	if b.nnue != nil {
		b.nnue.MoveFeature(int(MakePiece(c, t)), int(from), int(to))
	}
}

// resetNnue rebuilds the accumulator stack from the current placement.
func (b *Board) resetNnue() {
	if b.nnue == nil {
		return
	}
	b.nnue.Reset()
	for c := Black; c <= White; c++ {
		for t := Pawn; t <= King; t++ {
			pieces := b.ColoredPieceBitboard(c, t)
			for pieces != 0 {
				sq := PopLSB(&pieces)
				b.nnue.ActivateFeature(int(MakePiece(c, t)), int(sq))
			}
		}
	}
}

// ==========================
// Attack queries
// ==========================

// attackedBy reports whether sq is attacked by any piece of color by.
func (b *Board) attackedBy(sq Square, by Color) bool {
	them := b.colors[by]
	if knightAttacks[sq]&b.pieces[Knight]&them != 0 {
		return true
	}
	if kingAttacks[sq]&b.pieces[King]&them != 0 {
		return true
	}
	// A pawn of by attacks sq iff a pawn of the other color on sq would attack it.
	if pawnAttacks[by.Other()][sq]&b.pieces[Pawn]&them != 0 {
		return true
	}
	occ := b.Occupied()
	if BishopAttacks(sq, occ)&(b.pieces[Bishop]|b.pieces[Queen])&them != 0 {
		return true
	}
	return RookAttacks(sq, occ)&(b.pieces[Rook]|b.pieces[Queen])&them != 0
}

// SquareIsUnderAttack reports whether sq is attacked by the side not to move.
func (b *Board) SquareIsUnderAttack(sq Square) bool {
	return b.attackedBy(sq, b.sideToMove.Other())
}

// InCheck reports whether the side to move has its king in check.
func (b *Board) InCheck() bool {
	return b.SquareIsUnderAttack(b.kingSquares[b.sideToMove])
}

// ==========================
// Game status
// ==========================

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	var moves MoveList
	n := b.GenerateMoves(&moves)
	for _, m := range moves[:n] {
		if b.MakeMove(m) {
			b.UndoMove()
			return true
		}
	}
	return false
}

// IsCheckmate reports whether the side to move is checkmated.
func (b *Board) IsCheckmate() bool { return b.InCheck() && !b.HasLegalMoves() }

// IsStalemate reports whether the side to move is stalemated.
func (b *Board) IsStalemate() bool { return !b.InCheck() && !b.HasLegalMoves() }

// IsDrawBy50 reports a 50-move rule draw (the counter is in half-moves).
func (b *Board) IsDrawBy50() bool { return b.fiftyMoveCounter >= 100 }

// Evaluate returns the network's score in centipawns from the side to
// move's point of view. The board must have been built with a network.
func (b *Board) Evaluate() int {
	if b.nnue == nil {
		panic("board: Evaluate on a board without a network")
	}
	return b.nnue.Evaluate(int(b.sideToMove))
}

// Validate checks internal consistency between bitboards, king squares and the hash.
// Returns true if consistent, false otherwise.
func (b *Board) Validate() bool {
	if b.colors[White]&b.colors[Black] != 0 {
		return false
	}
	var all uint64
	for t := Pawn; t <= King; t++ {
		if all&b.pieces[t] != 0 {
			return false
		}
		all |= b.pieces[t]
	}
	if all != b.Occupied() {
		return false
	}
	for c := Black; c <= White; c++ {
		kings := b.ColoredPieceBitboard(c, King)
		if bits.OnesCount64(kings) != 1 || Square(bits.TrailingZeros64(kings)) != b.kingSquares[c] {
			return false
		}
	}
	if b.nnue != nil && b.nnue.Depth() != len(b.history) {
		return false
	}
	return b.hash == b.FullZobristRegen()
}

// String renders the board as an 8x8 diagram, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteByte(b.Piece(NewSquare(file, rank)).Char())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
