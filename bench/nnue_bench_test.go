package bench

import (
	"testing"

	"github.com/Ciekce/Clarity/board"
	"github.com/Ciekce/Clarity/nnue"
)

var benchNet = nnue.NewSyntheticNetwork(1)

func BenchmarkMakeUndo_WithNetwork_Kiwipete(b *testing.B) {
	pos, err := board.New("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", benchNet)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	benchMakeUndo(b, pos)
}

func BenchmarkEvaluate_Initial(b *testing.B) {
	pos, err := board.New(board.FENStartPos, benchNet)
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.Evaluate()
	}
}
