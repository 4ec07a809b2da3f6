package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// run executes a command and prints its combined output. Returns exit code.
func run(name string, args ...string) int {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	fmt.Print(out.String())
	if err == nil {
		return 0
	}
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "error running %s: %v\n", name, err)
	return 1
}

type suiteEntry struct {
	label string
	fen   string
	depth int
}

var suite = []suiteEntry{
	{"Initial", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 5},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4},
	{"Position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 5},
	{"Position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 4},
	{"Position5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 4},
}

func main() {
	// Usage: go run ./cmd/benchrun [-skip-bench] [-verify] [-extra N]
	skipBench := flag.Bool("skip-bench", false, "Only run the perft suite")
	verify := flag.Bool("verify", false, "Check every suite entry against the reference generators")
	extra := flag.Int("extra", 0, "Added to every suite depth")
	flag.Parse()

	if !*skipBench {
		// Format: BenchmarkName  Iterations  ns/op  B/op  allocs/op
		fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
		if code := run("go", "test", "./bench", "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s"); code != 0 {
			os.Exit(code)
		}
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	failed := 0
	for _, e := range suite {
		args := []string{"run", "./cmd/perft", "-fen", e.fen, "-depth", strconv.Itoa(e.depth + *extra), "-label", e.label}
		if *verify {
			args = append(args, "-verify")
		}
		if run("go", args...) != 0 {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d suite entries failed\n", failed)
		os.Exit(1)
	}
}
