package bench

import (
	"os"
	"testing"

	"github.com/Ciekce/Clarity/engine"
)

func TestMain(m *testing.M) {
	engine.Initialize()
	os.Exit(m.Run())
}
