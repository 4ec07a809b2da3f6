package board

import "math/bits"

// ==========================
// Move generation
// ==========================

// GenerateMoves writes every pseudo-legal move for the side to move into out
// and returns how many were written. Legality is settled by MakeMove.
func (b *Board) GenerateMoves(out *MoveList) int {
	return b.generate(out, false)
}

// GenerateQSearchMoves writes captures, en passant and all promotions
// (quiet or capturing) into out and returns how many were written.
func (b *Board) GenerateQSearchMoves(out *MoveList) int {
	return b.generate(out, true)
}

func (b *Board) generate(out *MoveList, noisyOnly bool) int {
	us := b.sideToMove
	own := b.colors[us]
	enemy := b.colors[us.Other()]
	occ := own | enemy
	empty := ^occ

	targets := ^own
	if noisyOnly {
		targets = enemy
	}

	n := b.generatePawnMoves(out, 0, enemy, empty, noisyOnly)

	for t := Knight; t <= King; t++ {
		pieces := own & b.pieces[t]
		for pieces != 0 {
			from := PopLSB(&pieces)
			var attacks uint64
			switch t {
			case Knight:
				attacks = knightAttacks[from]
			case Bishop:
				attacks = BishopAttacks(from, occ)
			case Rook:
				attacks = RookAttacks(from, occ)
			case Queen:
				attacks = QueenAttacks(from, occ)
			case King:
				attacks = kingAttacks[from]
			}
			attacks &= targets
			for attacks != 0 {
				out[n] = NewMove(from, PopLSB(&attacks), Normal)
				n++
			}
		}
	}

	if !noisyOnly {
		n = b.generateCastles(out, n, occ)
	}
	return n
}

// generatePawnMoves appends pawn pushes, captures, en passant and promotions.
func (b *Board) generatePawnMoves(out *MoveList, n int, enemy, empty uint64, noisyOnly bool) int {
	us := b.sideToMove
	pawns := b.colors[us] & b.pieces[Pawn]
	lastRank := RankMask(7)
	if us == Black {
		lastRank = RankMask(0)
	}

	captureTargets := enemy
	if b.epSquare != NoSquare {
		captureTargets |= b.epSquare.Bitboard()
	}

	for pawns != 0 {
		from := PopLSB(&pawns)
		bit := from.Bitboard()

		single := PawnPushes(bit, empty, us)
		if single&lastRank != 0 {
			n = appendPromotions(out, n, from, Square(bits.TrailingZeros64(single)))
		} else if !noisyOnly && single != 0 {
			out[n] = NewMove(from, Square(bits.TrailingZeros64(single)), Normal)
			n++
			if double := DoublePawnPushes(single, empty, us); double != 0 {
				out[n] = NewMove(from, Square(bits.TrailingZeros64(double)), DoublePawnPush)
				n++
			}
		}

		captures := pawnAttacks[us][from] & captureTargets
		for captures != 0 {
			to := PopLSB(&captures)
			switch {
			case to == b.epSquare:
				out[n] = NewMove(from, to, EnPassant)
				n++
			case to.Bitboard()&lastRank != 0:
				n = appendPromotions(out, n, from, to)
			default:
				out[n] = NewMove(from, to, Normal)
				n++
			}
		}
	}
	return n
}

func appendPromotions(out *MoveList, n int, from, to Square) int {
	for flag := PromoteKnight; flag <= PromoteQueen; flag++ {
		out[n] = NewMove(from, to, flag)
		n++
	}
	return n
}

// generateCastles appends castling moves whose rights are held, whose rook
// is still on its corner, whose path is empty and whose king squares are
// not attacked.
func (b *Board) generateCastles(out *MoveList, n int, occ uint64) int {
	us := b.sideToMove
	them := us.Other()
	first := CastleWhiteShort
	if us == Black {
		first = CastleBlackShort
	}
	for flag := first; flag < first+2; flag++ {
		if b.castlingRights&flag.castleRight() == 0 {
			continue
		}
		c := &castlings[flag-CastleWhiteShort]
		if b.ColoredPieceBitboard(us, Rook)&c.rookFrom.Bitboard() == 0 {
			continue
		}
		if b.ColoredPieceBitboard(us, King)&c.kingFrom.Bitboard() == 0 {
			continue
		}
		if occ&c.between != 0 {
			continue
		}
		if b.attackedBy(c.safe[0], them) || b.attackedBy(c.safe[1], them) || b.attackedBy(c.safe[2], them) {
			continue
		}
		out[n] = NewMove(c.kingFrom, c.kingTo, flag)
		n++
	}
	return n
}
