package board_test

import (
	"testing"

	"github.com/Ciekce/Clarity/board"
)

func TestKnightShuffleRepetition(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	play(t, b, "g1f3", "g8f6", "f3g1")
	if b.IsRepeatedPosition() {
		t.Fatalf("no repetition after three plies")
	}
	play(t, b, "f6g8")
	if !b.IsRepeatedPosition() {
		t.Fatalf("start position reached again, want repetition")
	}
	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	if !b.IsRepeatedPosition() {
		t.Fatalf("want repetition after two cycles")
	}
	if b.HundredPlyCounter() < 8 {
		t.Fatalf("hundred-ply counter: got %d want >= 8", b.HundredPlyCounter())
	}
	b.UndoMove()
	if !b.IsRepeatedPosition() {
		t.Fatalf("undo must restore the flag of the position after the seventh ply")
	}
	b.UndoMove()
	b.UndoMove()
	if !b.IsRepeatedPosition() {
		t.Fatalf("position after the fifth ply first occurred at the first ply, want repetition")
	}
}

func TestRepetitionStopsAtIrreversibleMove(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8", "e2e4", "e7e5")
	if b.HundredPlyCounter() != 0 {
		t.Fatalf("pawn move must reset the hundred-ply counter")
	}
	// The en-passant square left by e7e5 is part of the hash, so the first
	// shuffle does not return to a known position.
	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	if b.IsRepeatedPosition() {
		t.Fatalf("no repetition expected after the first shuffle")
	}
	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	if !b.IsRepeatedPosition() {
		t.Fatalf("want repetition after the second shuffle")
	}
	if b.HundredPlyCounter() != 8 {
		t.Fatalf("hundred-ply counter: got %d want 8", b.HundredPlyCounter())
	}
}

func TestNullMoveHidesRepetition(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	play(t, b, "g1f3")
	afterFirst := b.Hash()

	// Two null moves around f3g1 bring back the start position with White
	// to move, so g1f3 reaches a position already in the history.
	b.ChangeColor()
	play(t, b, "f3g1")
	b.ChangeColor()
	if b.FEN() != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 2 2" {
		t.Fatalf("unexpected position after null moves: %s", b.FEN())
	}
	play(t, b, "g1f3")
	if b.Hash() != afterFirst {
		t.Fatalf("hash after g1f3 differs from the first time it was played")
	}
	if b.IsRepeatedPosition() {
		t.Fatalf("repetition must not be detected across a null move")
	}
	if b.Hash() != b.FullZobristRegen() {
		t.Fatalf("hash inconsistent after null moves")
	}

	b.UndoMove()
	b.UndoChangeColor()
	b.UndoMove()
	b.UndoChangeColor()
	if b.Hash() != afterFirst || b.SideToMove() != board.Black || b.IsRepeatedPosition() {
		t.Fatalf("undo did not return to the position after g1f3: %s", b.FEN())
	}
}

func TestFiftyMoveRuleAfterShuffling(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	for i := 0; i < 25; i++ {
		play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	}
	if !b.IsDrawBy50() {
		t.Fatalf("expected fifty-move draw after 100 half-moves, got %d", b.FiftyMoveCounter())
	}
	if b.Depth() != 100 || b.Hash() != b.FullZobristRegen() {
		t.Fatalf("depth %d, hash consistent %v", b.Depth(), b.Hash() == b.FullZobristRegen())
	}
	for b.Depth() > 0 {
		b.UndoMove()
	}
	if b.FEN() != board.FENStartPos {
		t.Fatalf("undoing 100 moves left %q", b.FEN())
	}
}
