package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ciekce/Clarity/engine"
	"github.com/Ciekce/Clarity/nnue"
)

const DefaultPort = 8080

func main() {
	var port uint
	flag.UintVar(&port, "port", DefaultPort, "Port to listen on")
	netPath := flag.String("net", "", "Network file to evaluate positions with")
	syntheticSeed := flag.Uint64("synthetic-seed", 0, "Use a synthetic network built from this seed when -net is empty (0 disables evaluation)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if port == 0 || port > 65535 {
		log.Fatal().Uint("port", port).Msg("invalid port number")
	}

	engine.Initialize()

	var net *nnue.Network
	switch {
	case *netPath != "":
		var err error
		net, err = nnue.LoadFile(*netPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load network")
		}
	case *syntheticSeed != 0:
		net = nnue.NewSyntheticNetwork(*syntheticSeed)
		log.Info().Uint64("seed", *syntheticSeed).Msg("using synthetic network")
	}

	app := NewApplication(net, log.Logger)
	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Msg("starting server")
	if err := http.ListenAndServe(addr, app); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
