package nnue

import "golang.org/x/exp/constraints"

func clamp[T constraints.Integer](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func crelu(x int16) int64 { return int64(clamp(x, 0, 255)) }

// Evaluate runs the output layer on the current accumulator and returns a
// score in centipawns for the side to move (1 for White, 0 for Black).
func (s *State) Evaluate(stm int) int {
	acc := &s.stack[s.top]
	us, them := &acc.black, &acc.white
	if stm == 1 {
		us, them = &acc.white, &acc.black
	}

	w := &s.net.OutputWeights
	var sum int64
	for i := 0; i < Layer1Size; i++ {
		sum += crelu(us[i]) * int64(w[i])
		sum += crelu(them[i]) * int64(w[Layer1Size+i])
	}
	sum += int64(s.net.OutputBias)
	return int(sum * Scale / Q)
}
