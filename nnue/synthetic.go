package nnue

import "golang.org/x/exp/rand"

// NewSyntheticNetwork builds a deterministic network from seed. Its output
// halves are mirrored and its bias is zero, so a position and its
// color-swapped mirror score the same for the side to move and symmetric
// positions score 0. It is meant for tests and tools without a trained net.
func NewSyntheticNetwork(seed uint64) *Network {
	rnd := rand.New(rand.NewSource(seed))
	n := &Network{}
	for i := range n.FeatureWeights {
		n.FeatureWeights[i] = int16(rnd.Intn(129) - 64)
	}
	for i := range n.FeatureBiases {
		n.FeatureBiases[i] = int16(rnd.Intn(129))
	}
	for i := 0; i < Layer1Size; i++ {
		w := int16(rnd.Intn(129) - 64)
		n.OutputWeights[i] = w
		n.OutputWeights[Layer1Size+i] = -w
	}
	return n
}
