package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"

	"github.com/daystram/arbiter/board"
)

// Local suggests a uniformly random legal move without leaving the process.
// It is meant for offline play and tests, not for strength.
type Local struct {
	mu     sync.Mutex
	rand   *PseudoRand
	logger zerolog.Logger
}

type LocalOption func(*Local)

func WithSeed(seed uint64) LocalOption {
	return func(l *Local) {
		l.rand.Seed(seed)
	}
}

func WithLocalLogger(logger zerolog.Logger) LocalOption {
	return func(l *Local) {
		l.logger = logger
	}
}

func NewLocal(opts ...LocalOption) *Local {
	l := &Local{
		rand:   NewPseudoRand(0),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) Suggest(ctx context.Context, fen string) (board.Move, error) {
	if err := ctx.Err(); err != nil {
		return board.Move{}, err
	}
	// dragontoothmg panics on malformed input, so validate first
	if _, err := board.NewBoard(board.WithFEN(fen)); err != nil {
		return board.Move{}, err
	}

	b := dragontoothmg.ParseFen(fen)
	moves := b.GenerateLegalMoves()
	if len(moves) == 0 {
		return board.Move{}, fmt.Errorf("%w: no legal moves", ErrNoMove)
	}

	l.mu.Lock()
	pick := moves[l.rand.Intn(len(moves))]
	l.mu.Unlock()

	mv, err := board.ParseMove(pick.String())
	if err != nil {
		return board.Move{}, fmt.Errorf("%w: %v", ErrNoMove, err)
	}
	l.logger.Debug().Str("fen", fen).Str("move", mv.UCI()).Int("candidates", len(moves)).Msg("picked move")
	return mv, nil
}
