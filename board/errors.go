package board

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is wrapped by every *ParseError.
	ErrParse = errors.New("board: parse error")

	// ErrStackUnderflow is the panic value of UndoMove and UndoChangeColor
	// when there is nothing to undo.
	ErrStackUnderflow = errors.New("board: undo with empty history")
)

// ParseError reports a malformed FEN string or move string.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("board: cannot parse %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func parseErrorf(input, format string, args ...any) *ParseError {
	return &ParseError{Input: input, Reason: fmt.Sprintf(format, args...)}
}
