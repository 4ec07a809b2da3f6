package engine_test

import (
	"math"
	"testing"

	"github.com/Ciekce/Clarity/board"
	"github.com/Ciekce/Clarity/engine"
)

func init() { engine.Initialize() }

func TestReductions(t *testing.T) {
	for m := range engine.Reductions[0] {
		if engine.Reductions[0][m] != 0 {
			t.Fatalf("depth 0, move %d: got %d want 0", m, engine.Reductions[0][m])
		}
	}
	for d := range engine.Reductions {
		if engine.Reductions[d][0] != 0 {
			t.Fatalf("depth %d, move 0: got %d want 0", d, engine.Reductions[d][0])
		}
	}
	tests := []struct{ d, m int }{{1, 1}, {3, 4}, {10, 20}, {49, 217}}
	for _, tt := range tests {
		want := uint8(0.77 + math.Log(float64(tt.d))*math.Log(float64(tt.m))*0.42)
		if got := engine.Reductions[tt.d][tt.m]; got != want {
			t.Fatalf("Reductions[%d][%d]: got %d want %d", tt.d, tt.m, got, want)
		}
	}
	if engine.Reductions[49][217] < engine.Reductions[10][20] {
		t.Fatalf("reductions must grow with depth and move index")
	}
}

func TestSortMoves(t *testing.T) {
	var values [board.MaxMoves]int
	var moves board.MoveList
	scores := []int{5, -3, 40, 0, 40, 12}
	for i, v := range scores {
		values[i] = v
		moves[i] = board.NewMove(board.Square(i), board.Square(i+8), board.Normal)
	}
	engine.SortMoves(&values, &moves, len(scores))
	for i := 1; i < len(scores); i++ {
		if values[i-1] < values[i] {
			t.Fatalf("values not descending at %d: %v", i, values[:len(scores)])
		}
	}
	for i := range scores {
		if int(moves[i].From()) >= len(scores) || scores[moves[i].From()] != values[i] {
			t.Fatalf("move %s lost its value %d", moves[i], values[i])
		}
	}
}

func TestIncrementalSort(t *testing.T) {
	var values [board.MaxMoves]int
	var moves board.MoveList
	scores := []int{1, 9, 3, 7}
	for i, v := range scores {
		values[i] = v
		moves[i] = board.NewMove(board.Square(i), board.Square(i+8), board.Normal)
	}
	want := []int{9, 7, 3, 1}
	for i := range scores {
		engine.IncrementalSort(&values, &moves, len(scores), i)
		if values[i] != want[i] || scores[moves[i].From()] != values[i] {
			t.Fatalf("step %d: got value %d move %s", i, values[i], moves[i])
		}
	}
}

func mustParse(t *testing.T, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func mustMove(t *testing.T, b *board.Board, s string) board.Move {
	t.Helper()
	m, err := board.ParseMove(s, b)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", s, err)
	}
	return m
}

func TestSEE(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want int
	}{
		{"bishop for knight, queen recaptures", "6k1/4q1p1/4n3/8/2B5/8/8/6K1 w - - 0 1", "c4e6", 0},
		{"en passant", "k7/8/8/3pP3/8/8/8/6K1 w - d6 0 1", "e5d6", 100},
		{"free rook", "6k1/8/8/3r4/8/8/8/3R2K1 w - - 0 1", "d1d5", 500},
		{"queen takes defended pawn", "6k1/8/2p5/3p4/8/8/8/3Q2K1 w - - 0 1", "d1d5", -800},
		{"x-ray rook battery", "3r2k1/8/8/3p4/8/8/3R4/3R2K1 w - - 0 1", "d2d5", 100},
	}
	for _, tt := range tests {
		b := mustParse(t, tt.fen)
		if got := engine.SEE(b, mustMove(t, b, tt.move)); got != tt.want {
			t.Errorf("%s: SEE(%s) = %d want %d", tt.name, tt.move, got, tt.want)
		}
	}
}

func TestScoreMovesOrdering(t *testing.T) {
	b := mustParse(t, "6k1/8/2p5/3p4/4P3/8/8/3Q2K1 w - - 0 1")
	var moves board.MoveList
	n := b.GenerateMoves(&moves)
	var values [board.MaxMoves]int

	engine.ScoreMoves(b, &moves, n, &values, board.NullMove)
	engine.SortMoves(&values, &moves, n)

	if got := moves[0].String(); got != "e4d5" {
		t.Fatalf("best move: got %s want e4d5 (pawn takes pawn)", got)
	}
	if values[1] != 0 {
		t.Fatalf("second move %s: got value %d want 0 for a quiet move", moves[1], values[1])
	}
	if got := moves[n-1].String(); got != "d1d5" {
		t.Fatalf("last move: got %s want the losing capture d1d5", got)
	}

	pv := mustMove(t, b, "d1d3")
	engine.ScoreMoves(b, &moves, n, &values, pv)
	engine.SortMoves(&values, &moves, n)
	if moves[0] != pv {
		t.Fatalf("pv move must be first, got %s", moves[0])
	}
}

func TestScoreMovesPromotions(t *testing.T) {
	b := mustParse(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	var moves board.MoveList
	n := b.GenerateMoves(&moves)
	var values [board.MaxMoves]int
	engine.ScoreMoves(b, &moves, n, &values, board.NullMove)
	engine.SortMoves(&values, &moves, n)
	if got := moves[0].String(); got != "a7a8q" {
		t.Fatalf("best move: got %s want a7a8q", got)
	}
	for i := 0; i < 4; i++ {
		if !moves[i].Flag().IsPromotion() {
			t.Fatalf("move %d: got %s want a promotion ahead of king moves", i, moves[i])
		}
	}
}
