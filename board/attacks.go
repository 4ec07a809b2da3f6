package board

import (
	"math/bits"
	"sync"

	"golang.org/x/exp/rand"
)

// Precomputed attack masks for knights and kings from each square.
var knightAttacks [64]uint64
var kingAttacks [64]uint64

// pawnAttacks[color][sq] is the set of squares a pawn of color attacks from sq.
var pawnAttacks [2][64]uint64

// passedPawnMasks[color][sq] covers the same and adjacent files strictly in
// front of sq from color's point of view.
var passedPawnMasks [2][64]uint64

// Ray directions. The first four grow towards higher square indices, so the
// nearest blocker on them is the lowest set bit; the last four shrink.
const (
	dirN = iota
	dirE
	dirNE
	dirNW
	dirS
	dirW
	dirSE
	dirSW
)

var rayOffsets = [8][2]int{
	dirN: {1, 0}, dirE: {0, 1}, dirNE: {1, 1}, dirNW: {1, -1},
	dirS: {-1, 0}, dirW: {0, -1}, dirSE: {-1, 1}, dirSW: {-1, -1},
}

var rookDirs = [4]int{dirN, dirE, dirS, dirW}
var bishopDirs = [4]int{dirNE, dirNW, dirSE, dirSW}

// rays[dir][sq] is every square from sq in that direction, excluding sq.
var rays [8][64]uint64

// magicEntry describes the fancy-magic lookup for one square.
type magicEntry struct {
	mask    uint64
	magic   uint64
	shift   uint8
	attacks []uint64
}

var rookMagics [64]magicEntry
var bishopMagics [64]magicEntry

var initOnce sync.Once

// Initialize builds the attack tables and the Zobrist keys. It must run
// before any attack lookup; New and ParseFEN call it themselves. It is safe
// to call any number of times and the work happens once per process.
func Initialize() {
	initOnce.Do(func() {
		initLeaperTables()
		initRays()
		initSliderTables()
		initCastlingMasks()
		initZobrist()
	})
}

func onBoard(rank, file int) bool { return rank >= 0 && rank < 8 && file >= 0 && file < 8 }

// initLeaperTables precomputes knight, king and pawn attacks and passed pawn masks.
func initLeaperTables() {
	knightOffsets := [8][2]int{
		{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
		{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
	}
	kingOffsets := [8][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for sq := 0; sq < 64; sq++ {
		file := sq % 8
		rank := sq / 8
		for _, off := range knightOffsets {
			if onBoard(rank+off[0], file+off[1]) {
				knightAttacks[sq] |= uint64(1) << ((rank+off[0])*8 + file + off[1])
			}
		}
		for _, off := range kingOffsets {
			if onBoard(rank+off[0], file+off[1]) {
				kingAttacks[sq] |= uint64(1) << ((rank+off[0])*8 + file + off[1])
			}
		}
		for _, df := range [2]int{-1, 1} {
			if onBoard(rank+1, file+df) {
				pawnAttacks[White][sq] |= uint64(1) << ((rank+1)*8 + file + df)
			}
			if onBoard(rank-1, file+df) {
				pawnAttacks[Black][sq] |= uint64(1) << ((rank-1)*8 + file + df)
			}
		}

		files := FileMask(file)
		if file > 0 {
			files |= FileMask(file - 1)
		}
		if file < 7 {
			files |= FileMask(file + 1)
		}
		var ahead, behind uint64
		for r := rank + 1; r < 8; r++ {
			ahead |= RankMask(r)
		}
		for r := rank - 1; r >= 0; r-- {
			behind |= RankMask(r)
		}
		passedPawnMasks[White][sq] = files & ahead
		passedPawnMasks[Black][sq] = files & behind
	}
}

// initRays precomputes directional rays for rook and bishop moves.
func initRays() {
	for sq := 0; sq < 64; sq++ {
		for dir, off := range rayOffsets {
			var ray uint64
			for r, f := sq/8+off[0], sq%8+off[1]; onBoard(r, f); r, f = r+off[0], f+off[1] {
				ray |= uint64(1) << (r*8 + f)
			}
			rays[dir][sq] = ray
		}
	}
}

// rayAttacks walks one direction and stops at the first blocker (inclusive).
func rayAttacks(dir int, sq Square, occ uint64) uint64 {
	ray := rays[dir][sq]
	blockers := ray & occ
	if blockers == 0 {
		return ray
	}
	var first int
	if dir < dirS {
		first = bits.TrailingZeros64(blockers)
	} else {
		first = 63 - bits.LeadingZeros64(blockers)
	}
	return ray &^ rays[dir][first]
}

// RookAttacksRay computes rook attacks by walking rays. It is the reference
// for the table lookup in RookAttacks.
func RookAttacksRay(sq Square, occ uint64) uint64 {
	var attacks uint64
	for _, dir := range rookDirs {
		attacks |= rayAttacks(dir, sq, occ)
	}
	return attacks
}

// BishopAttacksRay computes bishop attacks by walking rays.
func BishopAttacksRay(sq Square, occ uint64) uint64 {
	var attacks uint64
	for _, dir := range bishopDirs {
		attacks |= rayAttacks(dir, sq, occ)
	}
	return attacks
}

// RookAttacks returns rook attacks from sq for the occupancy via magic lookup.
func RookAttacks(sq Square, occ uint64) uint64 {
	m := &rookMagics[sq]
	return m.attacks[((occ&m.mask)*m.magic)>>m.shift]
}

// BishopAttacks returns bishop attacks from sq for the occupancy via magic lookup.
func BishopAttacks(sq Square, occ uint64) uint64 {
	m := &bishopMagics[sq]
	return m.attacks[((occ&m.mask)*m.magic)>>m.shift]
}

// QueenAttacks is the union of rook and bishop attacks.
func QueenAttacks(sq Square, occ uint64) uint64 {
	return RookAttacks(sq, occ) | BishopAttacks(sq, occ)
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) uint64 { return knightAttacks[sq] }

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) uint64 { return kingAttacks[sq] }

// PawnAttacks returns the squares a pawn of color c attacks from sq.
func PawnAttacks(sq Square, c Color) uint64 { return pawnAttacks[c][sq] }

// PassedPawnMask returns the squares that must be free of enemy pawns for a
// pawn of color c on sq to be passed.
func PassedPawnMask(sq Square, c Color) uint64 { return passedPawnMasks[c][sq] }

// PawnPushes returns single-step destinations of pawns onto empty squares.
func PawnPushes(pawns, empty uint64, c Color) uint64 {
	if c == White {
		return (pawns << 8) & empty
	}
	return (pawns >> 8) & empty
}

// DoublePawnPushes extends single pushes that landed on the third rank
// (sixth for Black) by one more step onto empty squares.
func DoublePawnPushes(singlePushes, empty uint64, c Color) uint64 {
	if c == White {
		return ((singlePushes & RankMask(2)) << 8) & empty
	}
	return ((singlePushes & RankMask(5)) >> 8) & empty
}

// initSliderTables builds per-square occupancy masks, finds magic numbers
// and fills the attack tables.
func initSliderTables() {
	rng := rand.New(rand.NewSource(0x5EED_B1A5))
	for sq := Square(0); sq < 64; sq++ {
		rookMagics[sq] = findMagic(sq, relevantMask(sq, rookDirs), RookAttacksRay, rng)
		bishopMagics[sq] = findMagic(sq, relevantMask(sq, bishopDirs), BishopAttacksRay, rng)
	}
}

// relevantMask is the union of the rays without their final (edge) square,
// since a blocker on the edge never changes the attack set.
func relevantMask(sq Square, dirs [4]int) uint64 {
	var mask uint64
	for _, dir := range dirs {
		ray := rays[dir][sq]
		if ray == 0 {
			continue
		}
		var edge int
		if dir < dirS {
			edge = 63 - bits.LeadingZeros64(ray)
		} else {
			edge = bits.TrailingZeros64(ray)
		}
		mask |= ray &^ (uint64(1) << edge)
	}
	return mask
}

func findMagic(sq Square, mask uint64, slow func(Square, uint64) uint64, rng *rand.Rand) magicEntry {
	n := bits.OnesCount64(mask)
	size := 1 << n
	occs := make([]uint64, size)
	refs := make([]uint64, size)
	for i := 0; i < size; i++ {
		occs[i] = pdep(uint64(i), mask)
		refs[i] = slow(sq, occs[i])
	}

	entry := magicEntry{mask: mask, shift: uint8(64 - n), attacks: make([]uint64, size)}
	epoch := make([]int, size)
	for attempt := 1; ; attempt++ {
		magic := rng.Uint64() & rng.Uint64() & rng.Uint64()
		if bits.OnesCount64((mask*magic)>>56) < 6 {
			continue
		}
		ok := true
		for i := 0; i < size; i++ {
			idx := (occs[i] * magic) >> entry.shift
			if epoch[idx] != attempt {
				epoch[idx] = attempt
				entry.attacks[idx] = refs[i]
			} else if entry.attacks[idx] != refs[i] {
				ok = false
				break
			}
		}
		if ok {
			entry.magic = magic
			return entry
		}
	}
}

// software pdep: deposit low bits of x into positions of mask
func pdep(x, mask uint64) uint64 {
	var res uint64
	var idx uint
	m := mask
	for m != 0 {
		bit := uint(bits.TrailingZeros64(m))
		if (x>>idx)&1 != 0 {
			res |= 1 << bit
		}
		idx++
		m &= m - 1
	}
	return res
}
