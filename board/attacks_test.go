package board_test

import (
	"encoding/binary"
	"math/bits"
	"testing"

	"lukechampine.com/frand"

	"github.com/Ciekce/Clarity/board"
)

func randomOccupancy() uint64 {
	occ := binary.LittleEndian.Uint64(frand.Bytes(8))
	// Thin it out so long rays appear as well as short ones.
	return occ & binary.LittleEndian.Uint64(frand.Bytes(8))
}

func TestInitializeIsIdempotent(t *testing.T) {
	b := mustParse(t, kiwipete)
	hash := b.FullZobristRegen()
	occ := b.Occupied()
	rook, bishop := board.RookAttacks(board.E1, occ), board.BishopAttacks(board.E1, occ)

	board.Initialize()
	if b.FullZobristRegen() != hash {
		t.Fatalf("second Initialize changed the Zobrist keys")
	}
	if board.RookAttacks(board.E1, occ) != rook || board.BishopAttacks(board.E1, occ) != bishop {
		t.Fatalf("second Initialize changed the slider tables")
	}
}

func TestSliderLookupMatchesRayWalk(t *testing.T) {
	for i := 0; i < 2000; i++ {
		occ := randomOccupancy()
		for sq := board.Square(0); sq < 64; sq++ {
			if got, want := board.RookAttacks(sq, occ), board.RookAttacksRay(sq, occ); got != want {
				t.Fatalf("rook %s occ %#x: got %#x want %#x", sq, occ, got, want)
			}
			if got, want := board.BishopAttacks(sq, occ), board.BishopAttacksRay(sq, occ); got != want {
				t.Fatalf("bishop %s occ %#x: got %#x want %#x", sq, occ, got, want)
			}
		}
	}
}

func TestSliderAttacksEmptyBoard(t *testing.T) {
	for sq := board.Square(0); sq < 64; sq++ {
		if got := bits.OnesCount64(board.RookAttacks(sq, 0)); got != 14 {
			t.Fatalf("rook on %s: got %d squares want 14", sq, got)
		}
		if q, r, b := board.QueenAttacks(sq, 0), board.RookAttacks(sq, 0), board.BishopAttacks(sq, 0); q != r|b {
			t.Fatalf("queen on %s is not rook|bishop", sq)
		}
	}
	if got := bits.OnesCount64(board.BishopAttacks(board.NewSquare(3, 3), 0)); got != 13 {
		t.Fatalf("bishop on d4: got %d squares want 13", got)
	}
}

func TestSliderStopsAtBlocker(t *testing.T) {
	d1, d4 := board.NewSquare(3, 0), board.NewSquare(3, 3)
	attacks := board.RookAttacks(d1, d4.Bitboard())
	if attacks&d4.Bitboard() == 0 {
		t.Fatalf("blocker square must be attacked")
	}
	if attacks&board.NewSquare(3, 4).Bitboard() != 0 {
		t.Fatalf("square behind the blocker must not be attacked")
	}
}

func TestLeaperTables(t *testing.T) {
	tests := []struct {
		name string
		got  uint64
		want int
	}{
		{"knight a1", board.KnightAttacks(board.A1), 2},
		{"knight d4", board.KnightAttacks(board.NewSquare(3, 3)), 8},
		{"king a1", board.KingAttacks(board.A1), 3},
		{"king e4", board.KingAttacks(board.NewSquare(4, 3)), 8},
		{"white pawn a2", board.PawnAttacks(board.NewSquare(0, 1), board.White), 1},
		{"black pawn e7", board.PawnAttacks(board.NewSquare(4, 6), board.Black), 2},
		{"white pawn h8", board.PawnAttacks(board.H8, board.White), 0},
	}
	for _, tt := range tests {
		if got := bits.OnesCount64(tt.got); got != tt.want {
			t.Errorf("%s: got %d squares want %d", tt.name, got, tt.want)
		}
	}
	if board.PawnAttacks(board.NewSquare(4, 1), board.White) != board.NewSquare(3, 2).Bitboard()|board.NewSquare(5, 2).Bitboard() {
		t.Fatalf("white pawn on e2 must attack d3 and f3")
	}
}

func TestPawnPushes(t *testing.T) {
	b := mustParse(t, board.FENStartPos)
	empty := ^b.Occupied()
	white := b.ColoredPieceBitboard(board.White, board.Pawn)
	single := board.PawnPushes(white, empty, board.White)
	if single != board.RankMask(2) {
		t.Fatalf("white single pushes: got %#x want %#x", single, board.RankMask(2))
	}
	if double := board.DoublePawnPushes(single, empty, board.White); double != board.RankMask(3) {
		t.Fatalf("white double pushes: got %#x want %#x", double, board.RankMask(3))
	}
	black := b.ColoredPieceBitboard(board.Black, board.Pawn)
	single = board.PawnPushes(black, empty, board.Black)
	if double := board.DoublePawnPushes(single, empty, board.Black); double != board.RankMask(4) {
		t.Fatalf("black double pushes: got %#x want %#x", double, board.RankMask(4))
	}
}

func TestPassedPawnMask(t *testing.T) {
	e4 := board.NewSquare(4, 3)
	mask := board.PassedPawnMask(e4, board.White)
	if got := bits.OnesCount64(mask); got != 12 {
		t.Fatalf("white e4: got %d squares want 12", got)
	}
	if mask&e4.Bitboard() != 0 || mask&board.NewSquare(4, 2).Bitboard() != 0 {
		t.Fatalf("mask must only cover squares in front")
	}
	if got := bits.OnesCount64(board.PassedPawnMask(board.NewSquare(0, 6), board.Black)); got != 12 {
		t.Fatalf("black a7: got %d squares want 12", got)
	}
}

func TestBitHelpers(t *testing.T) {
	bb := board.A1.Bitboard() | board.H8.Bitboard()
	if sq := board.PopLSB(&bb); sq != board.A1 {
		t.Fatalf("PopLSB: got %s want a1", sq)
	}
	if bb != board.H8.Bitboard() {
		t.Fatalf("PopLSB must clear the lowest bit")
	}
	if board.FlipIndex(board.A1) != board.A8 || board.FlipIndex(board.E8) != board.E1 {
		t.Fatalf("FlipIndex must mirror ranks")
	}
	if bits.OnesCount64(board.FileMask(4)) != 8 || board.FileMask(0)&board.H1.Bitboard() != 0 {
		t.Fatalf("FileMask is wrong")
	}
}
