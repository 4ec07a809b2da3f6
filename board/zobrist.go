package board

import "golang.org/x/exp/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
var zobristPiece [2][6][64]uint64 // [color][type][square]
var zobristCastle [16]uint64      // indexed by the castling rights mask
var zobristEnPassant [8]uint64    // en passant file
var zobristSide uint64            // Black to move

// zobristSeed is fixed so hashes are stable across runs.
const zobristSeed = 0xC0DE

func initZobrist() {
	rnd := rand.New(rand.NewSource(zobristSeed))

	for c := 0; c < 2; c++ {
		for t := 0; t < 6; t++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][t][sq] = rnd.Uint64()
			}
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// FullZobristRegen computes the hash of the current position from scratch.
// It must always equal Hash().
func (b *Board) FullZobristRegen() uint64 {
	var key uint64

	for c := Black; c <= White; c++ {
		for t := Pawn; t <= King; t++ {
			pieces := b.colors[c] & b.pieces[t]
			for pieces != 0 {
				sq := PopLSB(&pieces)
				key ^= zobristPiece[c][t][sq]
			}
		}
	}

	if b.sideToMove == Black {
		key ^= zobristSide
	}

	key ^= zobristCastle[b.castlingRights]

	if b.epSquare != NoSquare {
		key ^= zobristEnPassant[b.epSquare.File()]
	}

	return key
}
