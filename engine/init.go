package engine

import (
	"math"
	"sync"

	"github.com/Ciekce/Clarity/board"
)

// Reductions is the late-move reduction table, indexed by depth and move index.
var Reductions [50][218]uint8

// RootColorToMove is the side to move at the root of the current search.
var RootColorToMove board.Color

var initOnce sync.Once

// Initialize builds the board tables and the reduction table. Calling it
// again is a no-op.
func Initialize() {
	initOnce.Do(func() {
		board.Initialize()
		initLMRTable()
	})
}

func initLMRTable() {
	for d := range Reductions {
		for m := range Reductions[d] {
			var r float64
			if d > 0 && m > 0 {
				r = math.Log(float64(d)) * math.Log(float64(m)) * 0.42
			}
			Reductions[d][m] = uint8(0.77 + r)
		}
	}
}
