package board

import (
	"math/bits"
	"strconv"
	"strings"

	"github.com/Ciekce/Clarity/nnue"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceFromChar converts a FEN character to the corresponding Piece constant.
func pieceFromChar(ch byte) (Piece, bool) {
	for t := Pawn; t <= King; t++ {
		switch ch {
		case pieceTypeChars[t]:
			return MakePiece(Black, t), true
		case pieceTypeChars[t] - ('a' - 'A'):
			return MakePiece(White, t), true
		}
	}
	return NoPiece, false
}

// ParseFEN parses a FEN string into a movegen-only Board (no network).
func ParseFEN(fen string) (*Board, error) { return New(fen, nil) }

// New parses a FEN string and returns a Board set up to that position.
// When net is non-nil every piece placement is mirrored in an accumulator
// stack over that network. The network is shared read-only.
func New(fen string, net *nnue.Network) (*Board, error) {
	Initialize()

	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, parseErrorf(fen, "expected 4 to 6 fields, got %d", len(fields))
	}

	b := &Board{
		history:     make([]BoardState, 0, historyReserve),
		hashHistory: make([]uint64, 0, historyReserve+1),
	}
	b.epSquare = NoSquare

	// 1. Piece placement
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, parseErrorf(fen, "expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := pieceFromChar(ch)
			if !ok {
				return nil, parseErrorf(fen, "unrecognized piece character %q", ch)
			}
			if file >= 8 {
				return nil, parseErrorf(fen, "too many squares in rank %d", rank+1)
			}
			sq := NewSquare(file, rank)
			b.colors[piece.Color()] |= sq.Bitboard()
			b.pieces[piece.Type()] |= sq.Bitboard()
			if piece.Type() == King {
				b.kingSquares[piece.Color()] = sq
			}
			file++
		}
		if file != 8 {
			return nil, parseErrorf(fen, "rank %d does not have 8 files", rank+1)
		}
	}
	for c := Black; c <= White; c++ {
		if n := bits.OnesCount64(b.ColoredPieceBitboard(c, King)); n != 1 {
			return nil, parseErrorf(fen, "%s has %d kings", c, n)
		}
	}

	// 2. Side to move
	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, parseErrorf(fen, "side to move must be 'w' or 'b'")
	}

	// 3. Castling rights
	if fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			switch fields[2][j] {
			case 'K':
				b.castlingRights |= CastlingWhiteShort
			case 'Q':
				b.castlingRights |= CastlingWhiteLong
			case 'k':
				b.castlingRights |= CastlingBlackShort
			case 'q':
				b.castlingRights |= CastlingBlackLong
			default:
				return nil, parseErrorf(fen, "invalid castling rights character %q", fields[2][j])
			}
		}
	}

	// 4. En passant target square
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, parseErrorf(fen, "invalid en passant square %q", fields[3])
		}
		// The pawn that just moved two squares stands in front of the
		// target, and both squares it crossed are empty.
		wantRank, pawnSq, originSq := 5, sq-8, sq+8
		if b.sideToMove == Black {
			wantRank, pawnSq, originSq = 2, sq+8, sq-8
		}
		if sq.Rank() != wantRank {
			return nil, parseErrorf(fen, "en passant square %s does not match the side to move", sq)
		}
		if b.ColoredPieceBitboard(b.sideToMove.Other(), Pawn)&pawnSq.Bitboard() == 0 {
			return nil, parseErrorf(fen, "no pawn in front of en passant square %s", sq)
		}
		if b.Occupied()&(sq.Bitboard()|originSq.Bitboard()) != 0 {
			return nil, parseErrorf(fen, "en passant square %s or the square behind it is occupied", sq)
		}
		b.epSquare = sq
	}

	// 5. Halfmove clock
	if len(fields) > 4 {
		halfmove, err := strconv.ParseUint(fields[4], 10, 16)
		if err != nil {
			return nil, parseErrorf(fen, "halfmove clock is not a number")
		}
		b.fiftyMoveCounter = uint16(halfmove)
	}

	// 6. Fullmove number
	fullmove := 1
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, parseErrorf(fen, "fullmove number is not a positive number")
		}
		fullmove = n
	}
	b.plyCount = 2 * (fullmove - 1)
	if b.sideToMove == Black {
		b.plyCount++
	}

	if net != nil {
		b.nnue = nnue.NewState(net)
		b.resetNnue()
	}
	b.hash = b.FullZobristRegen()
	b.hashHistory = append(b.hashHistory, b.hash)
	return b, nil
}

// FEN produces the FEN string representation of the board's current state.
func (b *Board) FEN() string {
	var sb strings.Builder

	// 1. Piece placement
	for rank := 7; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < 8; file++ {
			p := b.Piece(NewSquare(file, rank))
			if p == NoPiece {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte('0' + byte(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Char())
		}
		if emptyCount > 0 {
			sb.WriteByte('0' + byte(emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteByte(' ')

	// 2. Side to move
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')

	// 3. Castling rights
	if b.castlingRights == CastlingNone {
		sb.WriteByte('-')
	} else {
		for i, ch := range []byte("KQkq") {
			if b.castlingRights&(1<<i) != 0 {
				sb.WriteByte(ch)
			}
		}
	}
	sb.WriteByte(' ')

	// 4. En passant square
	sb.WriteString(b.epSquare.String())
	sb.WriteByte(' ')

	// 5. Halfmove clock
	sb.WriteString(strconv.Itoa(int(b.fiftyMoveCounter)))
	sb.WriteByte(' ')

	// 6. Fullmove number
	sb.WriteString(strconv.Itoa(b.plyCount/2 + 1))
	return sb.String()
}
