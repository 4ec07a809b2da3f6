package board

// Perft counts leaf nodes (legal move sequences) from the position for a
// given depth. Move buffers are allocated once per depth.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	bufs := make([]MoveList, depth+1)
	return perftRec(b, depth, bufs)
}

func perftRec(b *Board, depth int, bufs []MoveList) uint64 {
	moves := &bufs[depth]
	n := b.GenerateMoves(moves)
	var nodes uint64
	for _, m := range moves[:n] {
		if !b.MakeMove(m) {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += perftRec(b, depth-1, bufs)
		}
		b.UndoMove()
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf nodes
// reachable from that move at the given depth. Useful for debugging.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	var moves MoveList
	n := b.GenerateMoves(&moves)
	for _, m := range moves[:n] {
		if b.MakeMove(m) {
			result[m] = Perft(b, depth-1)
			b.UndoMove()
		}
	}
	return result
}
