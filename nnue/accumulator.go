package nnue

import "errors"

// ErrStackUnderflow is the panic value of Pop on an empty stack.
var ErrStackUnderflow = errors.New("nnue: pop with empty accumulator stack")

const stackReserve = 256

// accumulator holds the hidden layer before activation, once from White's
// point of view and once from Black's.
type accumulator struct {
	white [Layer1Size]int16
	black [Layer1Size]int16
}

// State is a stack of accumulators, one per ply of the owning board.
type State struct {
	net   *Network
	stack []accumulator
	top   int
}

// NewState returns an empty state over net.
func NewState(net *Network) *State {
	s := &State{net: net, stack: make([]accumulator, stackReserve)}
	s.Reset()
	return s
}

// Reset drops every pushed accumulator and sets the base one to the biases.
func (s *State) Reset() {
	s.top = 0
	acc := &s.stack[0]
	acc.white = s.net.FeatureBiases
	acc.black = s.net.FeatureBiases
}

// Depth returns the number of accumulators pushed above the base.
func (s *State) Depth() int { return s.top }

// Push duplicates the current accumulator.
func (s *State) Push() {
	if s.top+1 == len(s.stack) {
		s.stack = append(s.stack, accumulator{})
	}
	s.stack[s.top+1] = s.stack[s.top]
	s.top++
}

// Pop returns to the previous accumulator.
func (s *State) Pop() {
	if s.top == 0 {
		panic(ErrStackUnderflow)
	}
	s.top--
}

// featureIndices maps a piece (type | color<<3, White=1) on sq to the input
// index seen from each perspective. Pieces of the perspective's own color
// occupy the first half of the input.
func featureIndices(piece, sq int) (white, black int) {
	t, c := piece&7, piece>>3
	white = 64*t + sq
	if c != 1 {
		white += 384
	}
	black = 64*t + (sq ^ 56)
	if c != 0 {
		black += 384
	}
	return white, black
}

// ActivateFeature adds the weights of piece on sq.
func (s *State) ActivateFeature(piece, sq int) {
	w, b := featureIndices(piece, sq)
	acc := &s.stack[s.top]
	addWeights(&acc.white, s.net.column(w))
	addWeights(&acc.black, s.net.column(b))
}

// DeactivateFeature subtracts the weights of piece on sq.
func (s *State) DeactivateFeature(piece, sq int) {
	w, b := featureIndices(piece, sq)
	acc := &s.stack[s.top]
	subWeights(&acc.white, s.net.column(w))
	subWeights(&acc.black, s.net.column(b))
}

// MoveFeature moves piece from src to dst in a single pass per perspective.
func (s *State) MoveFeature(piece, src, dst int) {
	ws, bs := featureIndices(piece, src)
	wd, bd := featureIndices(piece, dst)
	acc := &s.stack[s.top]
	subAddWeights(&acc.white, s.net.column(ws), s.net.column(wd))
	subAddWeights(&acc.black, s.net.column(bs), s.net.column(bd))
}

func (n *Network) column(feature int) []int16 {
	return n.FeatureWeights[feature*Layer1Size : (feature+1)*Layer1Size]
}

func addWeights(acc *[Layer1Size]int16, w []int16) {
	w = w[:Layer1Size]
	for i := range acc {
		acc[i] += w[i]
	}
}

func subWeights(acc *[Layer1Size]int16, w []int16) {
	w = w[:Layer1Size]
	for i := range acc {
		acc[i] -= w[i]
	}
}

func subAddWeights(acc *[Layer1Size]int16, sub, add []int16) {
	sub, add = sub[:Layer1Size], add[:Layer1Size]
	for i := range acc {
		acc[i] += add[i] - sub[i]
	}
}
