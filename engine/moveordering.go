package engine

import "github.com/Ciekce/Clarity/board"

// Most Valuable Victim - Least Valuable Aggressor; used to score captures.
// Indexed by [victim][attacker].
var mvvLva = [6][6]int{
	{14, 13, 12, 11, 10, 0}, // victim Pawn
	{24, 23, 22, 21, 20, 0}, // victim Knight
	{34, 33, 32, 31, 30, 0}, // victim Bishop
	{44, 43, 42, 41, 40, 0}, // victim Rook
	{54, 53, 52, 51, 50, 0}, // victim Queen
	{0, 0, 0, 0, 0, 0},      // victim King
}

/*
	Move ordering offsets:
	- The PV move goes first.
	- Promotions, then captures that do not lose material.
	- Quiet moves score 0.
	- Captures losing material by SEE go below the quiet moves.
*/
const (
	pvOffset        = 25000
	promotionOffset = 20000
	captureOffset   = 15000
	badCaptureScore = -captureOffset
)

// ScoreMoves fills values with a static ordering score for the first n
// moves of b.
func ScoreMoves(b *board.Board, moves *board.MoveList, n int, values *[board.MaxMoves]int, pvMove board.Move) {
	them := b.SideToMove().Other()
	for i, m := range moves[:n] {
		var score int
		isCapture := m.Flag() == board.EnPassant || b.ColorBitboard(them)&m.To().Bitboard() != 0
		switch {
		case m == pvMove && m != board.NullMove:
			score = pvOffset
		case m.Flag().IsPromotion():
			score = promotionOffset + SeePieceValue[m.Flag().PromotionType()]/100
		case isCapture:
			victim := board.Pawn
			if m.Flag() != board.EnPassant {
				victim = b.PieceAt(m.To())
			}
			if SEE(b, m) < 0 {
				score = badCaptureScore + mvvLva[victim][b.PieceAt(m.From())]
			} else {
				score = captureOffset + mvvLva[victim][b.PieceAt(m.From())]
			}
		}
		values[i] = score
	}
}

// SortMoves orders the first n moves by descending value. Values are
// reordered alongside their moves.
func SortMoves(values *[board.MaxMoves]int, moves *board.MoveList, n int) {
	// insertion sort
	for i := 1; i < n; i++ {
		v, m := values[i], moves[i]
		j := i - 1
		for ; j >= 0 && values[j] < v; j-- {
			values[j+1] = values[j]
			moves[j+1] = moves[j]
		}
		values[j+1] = v
		moves[j+1] = m
	}
}

// IncrementalSort swaps the best-scored move in [i, n) into position i, so
// that callers only pay for the moves they actually visit.
func IncrementalSort(values *[board.MaxMoves]int, moves *board.MoveList, n, i int) {
	best := i
	for j := i + 1; j < n; j++ {
		if values[j] > values[best] {
			best = j
		}
	}
	values[i], values[best] = values[best], values[i]
	moves[i], moves[best] = moves[best], moves[i]
}
