package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Ciekce/Clarity/board"
	"github.com/Ciekce/Clarity/crosscheck"
	"github.com/Ciekce/Clarity/nnue"
)

// maxPerftDepth keeps a single request from pinning a core for minutes.
const maxPerftDepth = 5

type Application struct {
	router   *mux.Router
	net      *nnue.Network // nil: no evaluation
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

// recoveryLogger adapts zerolog to handlers.RecoveryHandlerLogger.
type recoveryLogger struct{ logger zerolog.Logger }

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error().Msg(fmt.Sprint(v...))
}

func NewApplication(net *nnue.Network, logger zerolog.Logger) *Application {
	app := &Application{
		router: mux.NewRouter(),
		net:    net,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	accessLog := func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(logger, next)
	}
	app.router.NotFoundHandler = accessLog(http.HandlerFunc(notFoundHandler))
	app.router.Use(accessLog)
	app.router.Use(handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{logger})))

	app.router.HandleFunc("/healthz", app.healthHandler).Methods(http.MethodGet)
	v1 := app.router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/position", app.positionHandler).Methods(http.MethodGet)
	v1.HandleFunc("/perft", app.perftHandler).Methods(http.MethodGet)
	v1.HandleFunc("/ws", app.wsHandler)
	return app
}

func (app *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func (app *Application) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type positionResponse struct {
	FEN        string   `json:"fen"`
	SideToMove string   `json:"sideToMove"`
	InCheck    bool     `json:"inCheck"`
	Repeated   bool     `json:"repeated"`
	Checkmate  bool     `json:"checkmate"`
	Stalemate  bool     `json:"stalemate"`
	LegalMoves []string `json:"legalMoves"`
	NoisyMoves []string `json:"noisyMoves"`
	Evaluation *int     `json:"evaluation,omitempty"`
	Diagram    string   `json:"diagram"`
}

func (app *Application) positionHandler(w http.ResponseWriter, r *http.Request) {
	b, err := board.New(fenParam(r), app.net)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := positionResponse{
		FEN:        b.FEN(),
		SideToMove: b.SideToMove().String(),
		InCheck:    b.InCheck(),
		Repeated:   b.IsRepeatedPosition(),
		Checkmate:  b.IsCheckmate(),
		Stalemate:  b.IsStalemate(),
		LegalMoves: crosscheck.LegalMoves(b),
		NoisyMoves: noisyMoves(b),
		Diagram:    b.String(),
	}
	if app.net != nil {
		eval := b.Evaluate()
		resp.Evaluation = &eval
	}
	writeJSON(w, http.StatusOK, resp)
}

// noisyMoves returns the legal quiescence moves.
func noisyMoves(b *board.Board) []string {
	var moves board.MoveList
	n := b.GenerateQSearchMoves(&moves)
	out := []string{}
	for _, m := range moves[:n] {
		if b.MakeMove(m) {
			out = append(out, m.String())
			b.UndoMove()
		}
	}
	return out
}

type perftResponse struct {
	FEN    string            `json:"fen"`
	Depth  int               `json:"depth"`
	Nodes  uint64            `json:"nodes"`
	Divide map[string]uint64 `json:"divide"`
}

func (app *Application) perftHandler(w http.ResponseWriter, r *http.Request) {
	depth, err := strconv.Atoi(r.URL.Query().Get("depth"))
	if err != nil || depth < 1 || depth > maxPerftDepth {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("depth must be between 1 and %d", maxPerftDepth))
		return
	}
	b, err := board.ParseFEN(fenParam(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := perftResponse{FEN: b.FEN(), Depth: depth, Divide: map[string]uint64{}}
	for m, nodes := range board.PerftDivide(b, depth) {
		resp.Divide[m.String()] = nodes
		resp.Nodes += nodes
	}
	app.logger.Debug().Str("fen", resp.FEN).Int("depth", depth).Uint64("nodes", resp.Nodes).Msg("perft")
	writeJSON(w, http.StatusOK, resp)
}

type streamRequest struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

// streamMessage is one frame of a streamed divide: a root move with its
// subtree count, the closing total with Done set, or an error.
type streamMessage struct {
	Move  string `json:"move,omitempty"`
	Nodes uint64 `json:"nodes"`
	Done  bool   `json:"done,omitempty"`
	Error string `json:"error,omitempty"`
}

// wsHandler serves perft divides over a websocket. Every request message is
// answered with one frame per legal root move as its count completes.
func (app *Application) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()
	app.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("websocket connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				app.logger.Warn().Err(err).Msg("websocket read")
			}
			return
		}
		var req streamRequest
		if err := json.Unmarshal(data, &req); err != nil {
			err = conn.WriteJSON(streamMessage{Error: "malformed request: " + err.Error()})
		} else {
			err = app.streamPerft(conn, req)
		}
		if err != nil {
			app.logger.Warn().Err(err).Msg("websocket write")
			return
		}
	}
}

func (app *Application) streamPerft(conn *websocket.Conn, req streamRequest) error {
	if req.Depth < 1 || req.Depth > maxPerftDepth {
		return conn.WriteJSON(streamMessage{Error: fmt.Sprintf("depth must be between 1 and %d", maxPerftDepth)})
	}
	fen := req.FEN
	if fen == "" {
		fen = board.FENStartPos
	}
	b, err := board.ParseFEN(fen)
	if err != nil {
		return conn.WriteJSON(streamMessage{Error: err.Error()})
	}

	var moves board.MoveList
	n := b.GenerateMoves(&moves)
	var total uint64
	for _, m := range moves[:n] {
		if !b.MakeMove(m) {
			continue
		}
		nodes := board.Perft(b, req.Depth-1)
		b.UndoMove()
		total += nodes
		if err := conn.WriteJSON(streamMessage{Move: m.String(), Nodes: nodes}); err != nil {
			return err
		}
	}
	return conn.WriteJSON(streamMessage{Nodes: total, Done: true})
}

func fenParam(r *http.Request) string {
	if fen := r.URL.Query().Get("fen"); fen != "" {
		return fen
	}
	return board.FENStartPos
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
