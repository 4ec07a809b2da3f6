package crosscheck

import (
	"fmt"
	"sort"

	"github.com/Ciekce/Clarity/board"
)

// Diff lists the moves one generator produced and the other did not.
type Diff struct {
	Missing []string // legal per the reference, not generated by the board
	Extra   []string // generated by the board, rejected by the reference
}

// Empty reports whether both generators agreed.
func (d Diff) Empty() bool { return len(d.Missing) == 0 && len(d.Extra) == 0 }

// LegalMoves returns the board's legal moves in long algebraic notation.
func LegalMoves(b *board.Board) []string {
	var moves board.MoveList
	n := b.GenerateMoves(&moves)
	out := make([]string, 0, n)
	for _, m := range moves[:n] {
		if b.MakeMove(m) {
			out = append(out, m.String())
			b.UndoMove()
		}
	}
	return out
}

// CompareMoves diffs the legal moves of fen against ref.
func CompareMoves(fen string, ref Reference) (Diff, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return Diff{}, err
	}
	want, err := ref.LegalMoves(fen)
	if err != nil {
		return Diff{}, err
	}
	return diff(LegalMoves(b), want), nil
}

func diff(got, want []string) Diff {
	seen := make(map[string]int, len(got))
	for _, m := range got {
		seen[m]++
	}
	var d Diff
	for _, m := range want {
		if seen[m] == 0 {
			d.Missing = append(d.Missing, m)
			continue
		}
		seen[m]--
	}
	for m, n := range seen {
		for ; n > 0; n-- {
			d.Extra = append(d.Extra, m)
		}
	}
	sort.Strings(d.Missing)
	sort.Strings(d.Extra)
	return d
}

// PerftMismatch is a root move whose subtree count differs from the reference.
type PerftMismatch struct {
	Move string
	Got  uint64
	Want uint64
}

func (m PerftMismatch) String() string {
	return fmt.Sprintf("%s: got %d want %d", m.Move, m.Got, m.Want)
}

// ComparePerft divides fen at the root and compares every subtree count
// against ref. Root moves missing on either side are reported by
// CompareMoves, not here.
func ComparePerft(fen string, depth int, ref Perfter) ([]PerftMismatch, error) {
	if depth < 1 {
		return nil, fmt.Errorf("crosscheck: perft depth must be positive, got %d", depth)
	}
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	var mismatches []PerftMismatch
	var moves board.MoveList
	n := b.GenerateMoves(&moves)
	for _, m := range moves[:n] {
		if !b.MakeMove(m) {
			continue
		}
		got := board.Perft(b, depth-1)
		want, err := ref.Perft(b.FEN(), depth-1)
		b.UndoMove()
		if err != nil {
			return nil, fmt.Errorf("crosscheck: %s after %s: %w", ref.Name(), m, err)
		}
		if got != want {
			mismatches = append(mismatches, PerftMismatch{Move: m.String(), Got: got, Want: want})
		}
	}
	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].Move < mismatches[j].Move })
	return mismatches, nil
}
