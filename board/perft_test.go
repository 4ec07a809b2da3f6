package board_test

import (
	"testing"

	"github.com/Ciekce/Clarity/board"
)

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		nodes []uint64 // indexed by depth-1
	}{
		{"initial", board.FENStartPos, []uint64{20, 400, 8902, 197281, 4865609}},
		{"kiwipete", kiwipete, []uint64{48, 2039, 97862, 4085603}},
		{"position 3", pos3, []uint64{14, 191, 2812, 43238}},
		{"position 4", pos4, []uint64{6, 264, 9467, 422333}},
		{"position 5", pos5, []uint64{44, 1486, 62379, 2103487}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, tt.fen)
			for i, want := range tt.nodes {
				depth := i + 1
				if testing.Short() && want > 100000 {
					t.Skipf("skipping depth %d in short mode", depth)
				}
				if got := board.Perft(b, depth); got != want {
					t.Fatalf("perft depth%d: got %d want %d", depth, got, want)
				}
				if b.FEN() != tt.fen || b.Depth() != 0 {
					t.Fatalf("perft depth%d left the board changed: %s", depth, b.FEN())
				}
			}
		})
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	b := mustParse(t, kiwipete)
	div := board.PerftDivide(b, 2)
	if len(div) != 48 {
		t.Fatalf("root moves: got %d want 48", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 2039 {
		t.Fatalf("divide total: got %d want 2039", sum)
	}
	if len(board.PerftDivide(b, 0)) != 0 {
		t.Fatalf("divide at depth 0 must be empty")
	}
}

func TestPerftWithNetworkMatches(t *testing.T) {
	b, err := board.New(kiwipete, testNet)
	if err != nil {
		t.Fatal(err)
	}
	if got := board.Perft(b, 3); got != 97862 {
		t.Fatalf("perft with network attached: got %d want 97862", got)
	}
	if !b.Validate() {
		t.Fatalf("accumulator stack out of sync after perft")
	}
}
