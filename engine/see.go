package engine

import (
	"math/bits"

	"github.com/Ciekce/Clarity/board"
)

// SeePieceValue is the material value of each piece type in exchanges.
var SeePieceValue = [6]int{
	board.Pawn:   100,
	board.Knight: 300,
	board.Bishop: 300,
	board.Rook:   500,
	board.Queen:  900,
	board.King:   5000,
}

// SEE returns the static exchange evaluation of move m: the material the
// side to move expects to win on m.To() if both sides keep recapturing with
// their least valuable attacker and may stop whenever continuing loses.
func SEE(b *board.Board, m board.Move) int {
	var gain [32]int
	from, to := m.From(), m.To()

	target := b.PieceAt(to)
	if m.Flag() == board.EnPassant {
		target = board.Pawn
	}
	attacker := b.PieceAt(from)

	occ := b.Occupied() &^ from.Bitboard()
	if m.Flag() == board.EnPassant {
		occ &^= board.NewSquare(to.File(), from.Rank()).Bitboard()
	}
	if target != board.NoPieceType {
		gain[0] = SeePieceValue[target]
	}
	if m.Flag().IsPromotion() {
		promo := m.Flag().PromotionType()
		gain[0] += SeePieceValue[promo] - SeePieceValue[board.Pawn]
		attacker = promo
	}

	attackerSq := from
	side := b.SideToMove()
	d := 0
	for {
		d++
		gain[d] = SeePieceValue[attacker] - gain[d-1]
		// Neither side can gain by continuing.
		if max(-gain[d-1], gain[d]) < 0 {
			break
		}
		occ &^= attackerSq.Bitboard()
		side = side.Other()
		attackers := attackersTo(b, to, occ) & occ & b.ColorBitboard(side)
		if attackers == 0 || d == len(gain)-1 {
			break
		}
		attackerSq, attacker = leastValuableAttacker(b, attackers)
	}

	for d--; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// attackersTo returns every piece attacking sq for the occupancy occ. Sliders
// behind a removed piece show up as x-rays.
func attackersTo(b *board.Board, sq board.Square, occ uint64) uint64 {
	pawns := b.ColoredPieceBitboard(board.White, board.Pawn)&board.PawnAttacks(sq, board.Black) |
		b.ColoredPieceBitboard(board.Black, board.Pawn)&board.PawnAttacks(sq, board.White)
	knights := (b.ColoredPieceBitboard(board.White, board.Knight) | b.ColoredPieceBitboard(board.Black, board.Knight)) & board.KnightAttacks(sq)
	kings := (b.ColoredPieceBitboard(board.White, board.King) | b.ColoredPieceBitboard(board.Black, board.King)) & board.KingAttacks(sq)
	queens := b.ColoredPieceBitboard(board.White, board.Queen) | b.ColoredPieceBitboard(board.Black, board.Queen)
	diagonal := b.ColoredPieceBitboard(board.White, board.Bishop) | b.ColoredPieceBitboard(board.Black, board.Bishop) | queens
	orthogonal := b.ColoredPieceBitboard(board.White, board.Rook) | b.ColoredPieceBitboard(board.Black, board.Rook) | queens
	return pawns | knights | kings |
		board.BishopAttacks(sq, occ)&diagonal |
		board.RookAttacks(sq, occ)&orthogonal
}

func leastValuableAttacker(b *board.Board, attackers uint64) (board.Square, board.PieceType) {
	for t := board.Pawn; t <= board.King; t++ {
		c := board.White
		subset := attackers & b.ColoredPieceBitboard(c, t)
		if subset == 0 {
			c = board.Black
			subset = attackers & b.ColoredPieceBitboard(c, t)
		}
		if subset != 0 {
			return board.Square(bits.TrailingZeros64(subset)), t
		}
	}
	return board.NoSquare, board.NoPieceType
}
