package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Ciekce/Clarity/board"
	"github.com/Ciekce/Clarity/crosscheck"
	"github.com/Ciekce/Clarity/engine"
)

func main() {
	fen := flag.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	workers := flag.Int("workers", runtime.NumCPU(), "Root moves searched in parallel")
	verify := flag.Bool("verify", false, "Compare root divide counts against reference generators")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *depth <= 0 {
		log.Fatal().Msg("-depth must be > 0")
	}
	if *workers < 1 {
		*workers = 1
	}

	engine.Initialize()
	root, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("parse FEN")
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatal().Err(err).Msg("create cpuprofile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("start cpu profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	start := time.Now()
	counts, err := parallelDivide(context.Background(), root, *depth, *workers)
	if err != nil {
		log.Fatal().Err(err).Msg("perft")
	}
	elapsed := time.Since(start)

	var total uint64
	for _, c := range counts {
		total += c.nodes
	}

	if *divide {
		for _, c := range counts {
			fmt.Printf("%s: %d\n", c.move, c.nodes)
		}
		fmt.Printf("Total: %d\n", total)
	}

	// Single line: Depth Nodes Time NPS
	nps := float64(total) / elapsed.Seconds()
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, total, elapsed, nps)

	if *verify {
		if !verifyAll(*fen, *depth, total) {
			os.Exit(1)
		}
	}
}

type rootCount struct {
	move  board.Move
	nodes uint64
}

// parallelDivide counts every legal root move's subtree. Each worker parses
// its own Board since boards are not safe for concurrent use.
func parallelDivide(ctx context.Context, root *board.Board, depth, workers int) ([]rootCount, error) {
	var moves board.MoveList
	n := root.GenerateMoves(&moves)
	var counts []rootCount
	for _, m := range moves[:n] {
		if root.MakeMove(m) {
			root.UndoMove()
			counts = append(counts, rootCount{move: m})
		}
	}

	fen := root.FEN()
	jobs := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range counts {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			b, err := board.ParseFEN(fen)
			if err != nil {
				return err
			}
			for i := range jobs {
				if !b.MakeMove(counts[i].move) {
					return fmt.Errorf("root move %s became illegal", counts[i].move)
				}
				counts[i].nodes = board.Perft(b, depth-1)
				b.UndoMove()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].move.String() < counts[j].move.String() })
	return counts, nil
}

// verifyAll checks the total and every root subtree against each reference.
func verifyAll(fen string, depth int, total uint64) bool {
	ok := true
	for _, ref := range crosscheck.Perfters() {
		want, err := ref.Perft(fen, depth)
		if err != nil {
			log.Error().Err(err).Str("reference", ref.Name()).Msg("reference perft failed")
			ok = false
			continue
		}
		if want != total {
			log.Error().Str("reference", ref.Name()).Uint64("got", total).Uint64("want", want).Msg("total mismatch")
			ok = false
		}
		mismatches, err := crosscheck.ComparePerft(fen, depth, ref)
		if err != nil {
			log.Error().Err(err).Str("reference", ref.Name()).Msg("divide comparison failed")
			ok = false
			continue
		}
		for _, m := range mismatches {
			log.Error().Str("reference", ref.Name()).Stringer("mismatch", m).Msg("root move differs")
			ok = false
		}
		if ok {
			log.Info().Str("reference", ref.Name()).Uint64("nodes", want).Msg("verified")
		}
	}
	return ok
}
