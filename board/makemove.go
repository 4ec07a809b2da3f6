package board

// castlingMask[sq] is ANDed into the rights whenever a move touches sq.
var castlingMask [64]CastlingRights

func initCastlingMasks() {
	for sq := range castlingMask {
		castlingMask[sq] = CastlingAll
	}
	castlingMask[E1] &^= CastlingWhiteShort | CastlingWhiteLong
	castlingMask[H1] &^= CastlingWhiteShort
	castlingMask[A1] &^= CastlingWhiteLong
	castlingMask[E8] &^= CastlingBlackShort | CastlingBlackLong
	castlingMask[H8] &^= CastlingBlackShort
	castlingMask[A8] &^= CastlingBlackLong
}

// MakeMove applies a pseudo-legal move. It returns false if the move leaves
// the mover's king attacked, in which case the board is already restored.
func (b *Board) MakeMove(m Move) bool {
	b.history = append(b.history, b.BoardState)
	if b.nnue != nil {
		b.nnue.Push()
	}

	us := b.sideToMove
	them := us.Other()
	from, to, flag := m.From(), m.To(), m.Flag()
	moved := b.PieceAt(from)

	if b.epSquare != NoSquare {
		b.hash ^= zobristEnPassant[b.epSquare.File()]
		b.epSquare = NoSquare
	}

	captured := false
	if flag == EnPassant {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		b.removePiece(capSq, them, Pawn)
		captured = true
	} else if b.colors[them]&to.Bitboard() != 0 {
		b.removePiece(to, them, b.PieceAt(to))
		captured = true
	}

	if flag.IsPromotion() {
		b.removePiece(from, us, Pawn)
		b.addPiece(to, us, flag.PromotionType())
	} else {
		b.movePiece(from, to, us, moved)
	}

	if flag.IsCastle() {
		c := &castlings[flag-CastleWhiteShort]
		b.movePiece(c.rookFrom, c.rookTo, us, Rook)
	}

	rights := b.castlingRights & castlingMask[from] & castlingMask[to]
	rightsChanged := rights != b.castlingRights
	if rightsChanged {
		b.hash ^= zobristCastle[b.castlingRights] ^ zobristCastle[rights]
		b.castlingRights = rights
	}

	if flag == DoublePawnPush {
		b.epSquare = (from + to) / 2
		b.hash ^= zobristEnPassant[b.epSquare.File()]
	}

	if moved == Pawn || captured {
		b.fiftyMoveCounter = 0
	} else {
		b.fiftyMoveCounter++
	}
	if moved == Pawn || captured || flag.IsCastle() || rightsChanged {
		b.hundredPlyCounter = 0
	} else {
		b.hundredPlyCounter++
	}

	if moved == King {
		b.kingSquares[us] = to
	}

	b.sideToMove = them
	b.hash ^= zobristSide
	b.plyCount++
	b.hashHistory = append(b.hashHistory, b.hash)
	b.isRepeated = b.scanRepetition()

	if b.attackedBy(b.kingSquares[us], them) {
		b.UndoMove()
		return false
	}
	return true
}

// scanRepetition looks for the current hash among earlier positions with
// the same side to move, no further back than the last irreversible move.
func (b *Board) scanRepetition() bool {
	top := len(b.hashHistory) - 1
	for d := 2; d <= int(b.hundredPlyCounter) && d <= top; d += 2 {
		if b.hashHistory[top-d] == b.hash {
			return true
		}
	}
	return false
}

// UndoMove takes back the last move made with MakeMove.
func (b *Board) UndoMove() {
	n := len(b.history)
	if n == 0 {
		panic(ErrStackUnderflow)
	}
	b.BoardState = b.history[n-1]
	b.history = b.history[:n-1]
	b.hashHistory = b.hashHistory[:len(b.hashHistory)-1]
	if b.nnue != nil {
		b.nnue.Pop()
	}
	b.sideToMove = b.sideToMove.Other()
	b.plyCount--
}

// ChangeColor makes a null move: the side to move passes.
func (b *Board) ChangeColor() {
	b.nullHistory = append(b.nullHistory, nullState{
		epSquare:          b.epSquare,
		hundredPlyCounter: b.hundredPlyCounter,
		hash:              b.hash,
		isRepeated:        b.isRepeated,
	})
	if b.epSquare != NoSquare {
		b.hash ^= zobristEnPassant[b.epSquare.File()]
		b.epSquare = NoSquare
	}
	b.hash ^= zobristSide
	b.sideToMove = b.sideToMove.Other()
	b.hundredPlyCounter = 0
	b.isRepeated = false
}

// UndoChangeColor reverts the last ChangeColor.
func (b *Board) UndoChangeColor() {
	n := len(b.nullHistory)
	if n == 0 {
		panic(ErrStackUnderflow)
	}
	st := b.nullHistory[n-1]
	b.nullHistory = b.nullHistory[:n-1]
	b.epSquare = st.epSquare
	b.hundredPlyCounter = st.hundredPlyCounter
	b.hash = st.hash
	b.isRepeated = st.isRepeated
	b.sideToMove = b.sideToMove.Other()
}
