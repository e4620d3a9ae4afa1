package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/daystram/arbiter/board"
)

var (
	// ErrNoMove is returned when a suggester has nothing usable to offer.
	ErrNoMove = errors.New("no move suggested")

	// ErrEngineUnavailable wraps transport failures of a remote suggester.
	ErrEngineUnavailable = errors.New("engine unavailable")
)

// Suggester proposes a move for the side to move in the given FEN position.
type Suggester interface {
	Suggest(ctx context.Context, fen string) (board.Move, error)
}

// SuggesterFunc adapts a plain function to a Suggester.
type SuggesterFunc func(ctx context.Context, fen string) (board.Move, error)

func (f SuggesterFunc) Suggest(ctx context.Context, fen string) (board.Move, error) {
	return f(ctx, fen)
}

// Play asks s for a move in the current position of b and applies it.
func Play(ctx context.Context, b *board.Board, s Suggester) (board.Move, error) {
	if b.IsGameOver() {
		return board.Move{}, fmt.Errorf("%w: %s", board.ErrGameOver, b.GameOverMessage())
	}
	fen := b.FEN()
	mv, err := s.Suggest(ctx, fen)
	if err != nil {
		return board.Move{}, err
	}
	if err := b.Apply(mv); err != nil {
		return board.Move{}, err
	}
	if b.FEN() == fen {
		return board.Move{}, fmt.Errorf("%w: %s does not move a %s piece", ErrNoMove, mv, b.Turn())
	}
	return mv, nil
}

// Line is a sequence of moves played out from a position.
type Line []board.Move

func ParseLine(s string) (Line, error) {
	var l Line
	for _, f := range strings.Fields(s) {
		mv, err := board.ParseMove(f)
		if err != nil {
			return nil, err
		}
		l = append(l, mv)
	}
	return l, nil
}

func (l Line) StringUCI() string {
	builder := strings.Builder{}
	for i, mv := range l {
		_, _ = builder.WriteString(mv.UCI())
		if i < len(l)-1 {
			_, _ = builder.WriteRune(' ')
		}
	}
	return builder.String()
}

// String renders the line in algebraic notation starting from b.
func (l Line) String(b *board.Board) string {
	return DumpHistory(b, l)
}

// DumpHistory plays mvs on a clone of b and returns the numbered move text.
// It stops at the first move that cannot be applied.
func DumpHistory(b *board.Board, mvs []board.Move) string {
	if b == nil || len(mvs) == 0 {
		return ""
	}
	builder := strings.Builder{}
	bb := b.Clone()
	if bb.Turn() == board.SideBlack {
		_, _ = builder.WriteString(fmt.Sprintf("%d... ", bb.FullMoveClock()))
	}
	for i, mv := range mvs {
		side, fullMoveClock := bb.Turn(), bb.FullMoveClock()
		if err := bb.Apply(mv); err != nil || bb.LastMove() == nil || bb.LastMove().Move != mv {
			break
		}
		if i > 0 {
			_, _ = builder.WriteRune(' ')
		}
		if side == board.SideWhite {
			_, _ = builder.WriteString(fmt.Sprintf("%d. ", fullMoveClock))
		}
		_, _ = builder.WriteString(bb.LastMove().Notation)
	}
	return builder.String()
}
