// Package crosscheck compares the board's move generator against
// independent open-source generators.
package crosscheck

import (
	"fmt"

	"github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/corentings/chess/v2"
	"github.com/dylhunn/dragontoothmg"
	notnil "github.com/notnil/chess"
)

// Reference is an independent legal move generator.
type Reference interface {
	Name() string
	// LegalMoves returns the legal moves of fen in long algebraic notation.
	LegalMoves(fen string) ([]string, error)
}

// Perfter is a Reference that can also count perft leaf nodes.
type Perfter interface {
	Reference
	Perft(fen string, depth int) (uint64, error)
}

// Dragontooth wraps github.com/dylhunn/dragontoothmg.
type Dragontooth struct{}

func (Dragontooth) Name() string { return "dragontoothmg" }

func (Dragontooth) parse(fen string) (b dragontoothmg.Board, err error) {
	// ParseFen panics on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("crosscheck: dragontoothmg rejected %q: %v", fen, r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

func (d Dragontooth) LegalMoves(fen string) ([]string, error) {
	b, err := d.parse(fen)
	if err != nil {
		return nil, err
	}
	moves := b.GenerateLegalMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, moves[i].String())
	}
	return out, nil
}

func (d Dragontooth) Perft(fen string, depth int) (uint64, error) {
	b, err := d.parse(fen)
	if err != nil {
		return 0, err
	}
	return dragontoothPerft(&b, depth), nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

// Goose wraps github.com/Oliverans/GooseEngineMG/goosemg.
type Goose struct{}

func (Goose) Name() string { return "goosemg" }

func (Goose) LegalMoves(fen string) ([]string, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("crosscheck: goosemg: %w", err)
	}
	moves := b.GenerateMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out, nil
}

func (Goose) Perft(fen string, depth int) (uint64, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return 0, fmt.Errorf("crosscheck: goosemg: %w", err)
	}
	return goosemg.Perft(b, depth), nil
}

// Corentings wraps github.com/corentings/chess/v2. It has no perft entry
// point and only serves legal move lists.
type Corentings struct{}

func (Corentings) Name() string { return "corentings/chess" }

func (Corentings) LegalMoves(fen string) ([]string, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("crosscheck: corentings/chess: %w", err)
	}
	g := chess.NewGame(opt)
	moves := g.ValidMoves()
	out := make([]string, 0, len(moves))
	for i := range moves {
		out = append(out, chess.UCINotation{}.Encode(g.Position(), &moves[i]))
	}
	return out, nil
}

// Notnil wraps github.com/notnil/chess, the library corentings/chess was
// forked from. Legal move lists only.
type Notnil struct{}

func (Notnil) Name() string { return "notnil/chess" }

func (Notnil) LegalMoves(fen string) ([]string, error) {
	opt, err := notnil.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("crosscheck: notnil/chess: %w", err)
	}
	g := notnil.NewGame(opt)
	moves := g.ValidMoves()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, notnil.UCINotation{}.Encode(g.Position(), m))
	}
	return out, nil
}

// References returns every available reference generator.
func References() []Reference {
	return []Reference{Dragontooth{}, Goose{}, Corentings{}, Notnil{}}
}

// Perfters returns the references that can count perft.
func Perfters() []Perfter {
	return []Perfter{Dragontooth{}, Goose{}}
}
