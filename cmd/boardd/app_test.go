package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Ciekce/Clarity/board"
	"github.com/Ciekce/Clarity/nnue"
)

func newTestServer(t *testing.T, net *nnue.Network) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewApplication(net, zerolog.New(io.Discard)))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, rawURL string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d want %d", rawURL, resp.StatusCode, wantStatus)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("GET %s: content type %q", rawURL, ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("GET %s: decode: %v", rawURL, err)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	var body map[string]string
	getJSON(t, srv.URL+"/healthz", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Fatalf("got %v", body)
	}
}

func TestPositionWithoutNetwork(t *testing.T) {
	srv := newTestServer(t, nil)
	var resp positionResponse
	getJSON(t, srv.URL+"/v1/position", http.StatusOK, &resp)
	if resp.FEN != board.FENStartPos || resp.SideToMove != "white" {
		t.Fatalf("got fen %q side %q", resp.FEN, resp.SideToMove)
	}
	if len(resp.LegalMoves) != 20 || len(resp.NoisyMoves) != 0 {
		t.Fatalf("got %d legal and %d noisy moves", len(resp.LegalMoves), len(resp.NoisyMoves))
	}
	if resp.Evaluation != nil {
		t.Fatalf("evaluation must be omitted without a network")
	}
}

func TestPositionWithNetwork(t *testing.T) {
	srv := newTestServer(t, nnue.NewSyntheticNetwork(1))
	fen := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	var resp positionResponse
	getJSON(t, srv.URL+"/v1/position?fen="+url.QueryEscape(fen), http.StatusOK, &resp)
	if !resp.InCheck || !resp.Checkmate || len(resp.LegalMoves) != 0 {
		t.Fatalf("fool's mate: check %v mate %v moves %v", resp.InCheck, resp.Checkmate, resp.LegalMoves)
	}
	if resp.Evaluation == nil {
		t.Fatalf("evaluation missing with a network loaded")
	}
}

func TestPerft(t *testing.T) {
	srv := newTestServer(t, nil)
	var resp perftResponse
	getJSON(t, srv.URL+"/v1/perft?depth=3", http.StatusOK, &resp)
	if resp.Nodes != 8902 || len(resp.Divide) != 20 {
		t.Fatalf("got %d nodes over %d root moves", resp.Nodes, len(resp.Divide))
	}
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t, nil)
	for _, path := range []string{
		"/v1/position?fen=" + url.QueryEscape("not a fen"),
		"/v1/perft?depth=0",
		"/v1/perft?depth=6",
		"/v1/perft?depth=abc",
		"/v1/perft?depth=2&fen=" + url.QueryEscape("8/8/8/8/8/8/8/8 w - - 0 1"),
	} {
		var body map[string]string
		getJSON(t, srv.URL+path, http.StatusBadRequest, &body)
		if body["error"] == "" {
			t.Fatalf("%s: missing error message", path)
		}
	}
	var body map[string]string
	getJSON(t, srv.URL+"/nope", http.StatusNotFound, &body)
}
