// Package nnue implements a 768->768x2->1 efficiently updatable network
// with a per-ply accumulator stack.
package nnue

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	InputSize  = 64 * 12
	Layer1Size = 768

	// Scale converts the network output to centipawns.
	Scale = 400
	// Q is the product of the two quantization factors.
	Q = 255 * 64
)

// Network holds the quantized weights. It is never modified after loading
// and may be shared by any number of boards.
type Network struct {
	FeatureWeights [InputSize * Layer1Size]int16
	FeatureBiases  [Layer1Size]int16
	OutputWeights  [Layer1Size * 2]int16
	OutputBias     int16
}

// Load reads a network blob: every field in declaration order as
// little-endian int16 with no header. Bytes after the output bias are
// ignored.
func Load(r io.Reader) (*Network, error) {
	var n = &Network{}
	if err := binary.Read(r, binary.LittleEndian, n.FeatureWeights[:]); err != nil {
		return nil, fmt.Errorf("nnue: read feature weights: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, n.FeatureBiases[:]); err != nil {
		return nil, fmt.Errorf("nnue: read feature biases: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, n.OutputWeights[:]); err != nil {
		return nil, fmt.Errorf("nnue: read output weights: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &n.OutputBias); err != nil {
		return nil, fmt.Errorf("nnue: read output bias: %w", err)
	}
	return n, nil
}

// LoadFile opens path and loads a network from it.
func LoadFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nnue: %w", err)
	}
	defer f.Close()

	n, err := Load(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int16("outputBias", n.OutputBias).Msg("loaded network")
	return n, nil
}

// WriteTo writes the network in the format Load reads.
func (n *Network) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, field := range []any{n.FeatureWeights[:], n.FeatureBiases[:], n.OutputWeights[:], n.OutputBias} {
		if err := binary.Write(bw, binary.LittleEndian, field); err != nil {
			return written, fmt.Errorf("nnue: write network: %w", err)
		}
		written += int64(binary.Size(field))
	}
	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("nnue: write network: %w", err)
	}
	return written, nil
}
