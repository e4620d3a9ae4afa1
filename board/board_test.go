package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daystram/arbiter/position"
)

func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, m := range moves {
		mv, err := ParseMove(m)
		require.NoError(t, err, m)
		require.NoError(t, b.Apply(mv), m)
	}
}

func newBoard(t *testing.T, opts ...BoardOption) *Board {
	t.Helper()
	b, err := NewBoard(opts...)
	require.NoError(t, err)
	return b
}

func TestNewBoard(t *testing.T) {
	t.Parallel()
	b := newBoard(t)

	assert.Equal(t, DefaultStartingPositionFEN, b.FEN())
	assert.Equal(t, SideWhite, b.Turn())
	assert.Equal(t, StateRunning, b.State())
	assert.Equal(t, 20, b.LegalMoves().Count())
	assert.False(t, b.CheckState().InCheck)
	assert.Nil(t, b.LastMove())
	assert.Empty(t, b.MoveList())
	assert.Len(t, b.History(), 1)
	assert.Empty(t, b.GameOverMessage())
	assert.Equal(t, uint64(1), b.FullMoveClock())
}

func TestApplyEnPassantField(t *testing.T) {
	t.Parallel()
	b := newBoard(t)

	play(t, b, "e2e4")
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", b.FEN())
	play(t, b, "e7e5")
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", b.FEN())
	play(t, b, "g1f3")
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", b.FEN())
}

func TestFoolsMate(t *testing.T) {
	t.Parallel()
	b := newBoard(t)

	play(t, b, "f2f3", "e7e5", "g2g4", "d8h4")

	assert.Equal(t, StateCheckmate, b.State())
	assert.True(t, b.IsGameOver())
	assert.Equal(t, SideBlack, b.Winner())
	assert.Equal(t, "Black won by checkmate", b.GameOverMessage())
	assert.Equal(t, CheckState{InCheck: true, King: position.E1}, b.CheckState())
	assert.Equal(t, []MoveListEntry{
		{Number: 1, White: "f3", Black: "e5"},
		{Number: 2, White: "g4", Black: "Qh4#"},
	}, b.MoveList())
	assert.True(t, b.LastMove().Type.Has(MoveTypeCheckMate))

	fen := b.FEN()
	err := b.Apply(Move{From: position.A2, To: position.A3})
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, fen, b.FEN())
}

func TestEnPassantCapture(t *testing.T) {
	t.Parallel()
	b := newBoard(t)

	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5")
	require.True(t, b.LegalMoves().Has(position.E5, position.D6))
	play(t, b, "e5d6")

	last := b.LastMove()
	assert.True(t, last.IsEnPassant)
	assert.True(t, last.Type.Has(MoveTypeCapture))
	assert.Equal(t, "exd6", last.Notation)
	assert.True(t, b.View().At(position.D5).IsEmpty())
	assert.Equal(t, Cell{Side: SideWhite, Piece: PiecePawn}, b.View().At(position.D6))
	assert.Equal(t, uint64(0), b.HalfMoveClock())
}

func TestEnPassantExpires(t *testing.T) {
	t.Parallel()
	b := newBoard(t)

	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5", "h2h3", "h7h6")
	assert.False(t, b.LegalMoves().Has(position.E5, position.D6))
}

func TestCastling(t *testing.T) {
	t.Parallel()

	t.Run("both sides", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t, WithFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))

		play(t, b, "e1g1")
		assert.Equal(t, "O-O", b.LastMove().Notation)
		assert.True(t, b.LastMove().Type.Has(MoveTypeCastling))
		assert.Equal(t, Cell{Side: SideWhite, Piece: PieceRook}, b.View().At(position.F1))
		assert.True(t, b.View().At(position.H1).IsEmpty())
		assert.Equal(t, "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1", b.FEN())

		play(t, b, "e8c8")
		assert.Equal(t, "O-O-O", b.LastMove().Notation)
		assert.Equal(t, Cell{Side: SideBlack, Piece: PieceRook}, b.View().At(position.D8))
		assert.Equal(t, "2kr3r/8/8/8/8/8/8/R4RK1 w - - 2 2", b.FEN())
	})

	t.Run("king moved back", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t, WithFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"))

		play(t, b, "e1f1", "e8f8", "f1e1", "f8e8")
		assert.False(t, b.LegalMoves().Has(position.E1, position.G1))
		assert.False(t, b.LegalMoves().Has(position.E1, position.C1))
		assert.Equal(t, "r3k2r/8/8/8/8/8/8/R3K2R w - - 4 3", b.FEN())
		assert.ErrorIs(t, b.Apply(Move{From: position.E1, To: position.G1}), ErrIllegalMove)
	})

	t.Run("through attacked square", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t, WithFEN("4k3/8/8/8/8/5r2/8/R3K2R w KQ - 0 1"))

		assert.False(t, b.LegalMoves().Has(position.E1, position.G1))
		assert.True(t, b.LegalMoves().Has(position.E1, position.C1))
	})

	t.Run("queenside knight square occupied", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t, WithFEN("4k3/8/8/8/8/8/8/RN2K3 w Q - 0 1"))

		assert.False(t, b.LegalMoves().Has(position.E1, position.C1))
	})

	t.Run("in check", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t, WithFEN("4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1"))

		assert.True(t, b.CheckState().InCheck)
		assert.False(t, b.LegalMoves().Has(position.E1, position.G1))
		assert.False(t, b.LegalMoves().Has(position.E1, position.C1))
	})
}

func TestApplyRejected(t *testing.T) {
	t.Parallel()

	t.Run("illegal destination", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t)
		err := b.Apply(Move{From: position.E2, To: position.E5})
		assert.ErrorIs(t, err, ErrIllegalMove)
		assert.Equal(t, DefaultStartingPositionFEN, b.FEN())
		assert.Len(t, b.History(), 1)
	})

	t.Run("ignored", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t)
		for _, mv := range []Move{
			{From: position.Invalid, To: position.E4},
			{From: position.E2, To: position.Pos(64)},
			{From: position.E3, To: position.E4},
			{From: position.E7, To: position.E5},
		} {
			assert.NoError(t, b.Apply(mv), mv)
		}
		assert.Equal(t, DefaultStartingPositionFEN, b.FEN())
		assert.Equal(t, SideWhite, b.Turn())
		assert.Len(t, b.History(), 1)
	})
}

func TestPromotion(t *testing.T) {
	t.Parallel()

	t.Run("missing piece", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t, WithFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1"))
		assert.ErrorIs(t, b.Apply(Move{From: position.A7, To: position.A8}), ErrInvalidPromotion)
		assert.ErrorIs(t, b.Apply(Move{From: position.A7, To: position.A8, Promote: PieceKing}), ErrInvalidPromotion)
		assert.Equal(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1", b.FEN())
	})

	t.Run("unexpected piece", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t)
		err := b.Apply(Move{From: position.E2, To: position.E4, Promote: PieceQueen})
		assert.ErrorIs(t, err, ErrInvalidPromotion)
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t, WithFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1"))
		play(t, b, "a7a8n")
		assert.Equal(t, "a8=N", b.LastMove().Notation)
		assert.Equal(t, Cell{Side: SideWhite, Piece: PieceKnight}, b.View().At(position.A8))
		assert.True(t, b.LastMove().Type.Has(MoveTypePromotion))
	})

	t.Run("capture with check", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t, WithFEN("1n5k/P7/8/8/8/8/8/K7 w - - 0 1"))
		play(t, b, "a7b8q")
		assert.Equal(t, "axb8=Q+", b.LastMove().Notation)
		assert.True(t, b.CheckState().InCheck)
		assert.Equal(t, position.H8, b.CheckState().King)
	})
}

func TestNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{name: "pawn push", fen: DefaultStartingPositionFEN, move: "e2e4", want: "e4"},
		{name: "knight", fen: DefaultStartingPositionFEN, move: "g1f3", want: "Nf3"},
		{name: "file", fen: "4k3/8/8/8/8/8/7P/1N2KN2 w - - 0 1", move: "b1d2", want: "Nbd2"},
		{name: "rank", fen: "4k3/8/8/R7/8/8/8/R3K3 w - - 0 1", move: "a1a3", want: "R1a3"},
		{name: "square", fen: "4k3/8/8/8/8/Q7/8/Q1Q4K w - - 0 1", move: "a1b2", want: "Qa1b2"},
		{name: "file against rivals", fen: "4k3/8/8/8/8/2Q5/8/Q1Q4K w - - 0 1", move: "a1b2", want: "Qab2"},
		{name: "capture", fen: "4k3/8/8/3p4/8/8/8/3RK3 w - - 0 1", move: "d1d5", want: "Rxd5"},
		{name: "check", fen: "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", move: "a1a8", want: "Ra8+"},
		{name: "pinned rival", fen: "4k3/8/8/8/1b6/8/3N4/4K1N1 w - - 0 1", move: "g1f3", want: "Nf3"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newBoard(t, WithFEN(tt.fen))
			play(t, b, tt.move)
			assert.Equal(t, tt.want, b.LastMove().Notation)
		})
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()
	b := newBoard(t)

	play(t, b, "e2e4", "f7f6", "d1h5")
	assert.Equal(t, "Qh5+", b.LastMove().Notation)
	assert.Equal(t, CheckState{InCheck: true, King: position.E8}, b.CheckState())
	for from, dests := range b.LegalMoves() {
		for _, to := range dests {
			assert.Equal(t, position.G7, from, "only g6 blocks, got %s%s", from, to)
		}
	}
}

func TestStalemate(t *testing.T) {
	t.Parallel()
	b := newBoard(t, WithFEN("7k/5Q2/8/6K1/8/8/8/8 w - - 0 1"))

	play(t, b, "g5g6")
	assert.Equal(t, StateStalemate, b.State())
	assert.Equal(t, SideUnknown, b.Winner())
	assert.Equal(t, "Stalemate", b.GameOverMessage())
	assert.True(t, b.State().IsDraw())
}

func TestInsufficientMaterial(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen  string
		want State
	}{
		{fen: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", want: StateInsufficientMaterial},
		{fen: "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", want: StateInsufficientMaterial},
		{fen: "4kn2/8/8/8/8/8/8/4K3 w - - 0 1", want: StateInsufficientMaterial},
		{fen: "4k3/8/8/8/8/8/8/3NKN2 w - - 0 1", want: StateInsufficientMaterial},
		{fen: "4kb2/8/8/8/8/8/8/2B1K3 w - - 0 1", want: StateInsufficientMaterial},
		{fen: "4k3/8/8/8/8/8/8/B1B1K3 w - - 0 1", want: StateInsufficientMaterial},
		{fen: "4k1b1/8/8/8/8/8/8/2B1K3 w - - 0 1", want: StateRunning},
		{fen: "4kn2/8/8/8/8/8/8/4KN2 w - - 0 1", want: StateRunning},
		{fen: "4k3/8/8/8/8/8/8/2NNK3 w - - 0 1", want: StateInsufficientMaterial},
		{fen: "4k3/8/8/8/8/8/8/1NNNK3 w - - 0 1", want: StateRunning},
		{fen: "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", want: StateRunning},
		{fen: "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", want: StateRunning},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()
			b := newBoard(t, WithFEN(tt.fen))
			assert.Equal(t, tt.want, b.State())
		})
	}

	t.Run("after capture", func(t *testing.T) {
		t.Parallel()
		b := newBoard(t, WithFEN("4k3/8/8/8/8/8/3r4/4K3 w - - 0 1"))
		play(t, b, "e1d2")
		assert.Equal(t, StateInsufficientMaterial, b.State())
		assert.Equal(t, "Draw due to insufficient material", b.GameOverMessage())
	})
}

func TestThreefoldRepetition(t *testing.T) {
	t.Parallel()
	b := newBoard(t)

	play(t, b, "g1f3", "g8f6", "f3g1", "f6g8")
	assert.Equal(t, StateRunning, b.State())
	play(t, b, "g1f3", "g8f6", "f3g1")
	assert.Equal(t, StateRunning, b.State())
	play(t, b, "f6g8")
	assert.Equal(t, StateThreefoldRepetition, b.State())
	assert.Equal(t, "Draw due to threefold repetition", b.GameOverMessage())
}

func TestFiftyMoveRule(t *testing.T) {
	t.Parallel()
	b := newBoard(t, WithFEN("4k3/8/8/8/8/8/8/R3K3 w - - 98 80"))

	play(t, b, "a1a2")
	assert.Equal(t, StateRunning, b.State())
	assert.Equal(t, 49.5, b.FiftyMoveCounter())
	play(t, b, "e8d8")
	assert.Equal(t, uint64(100), b.HalfMoveClock())
	assert.Equal(t, float64(50), b.FiftyMoveCounter())
	assert.Equal(t, StateFiftyMoveViolated, b.State())
	assert.Equal(t, "Draw due to fifty move rule", b.GameOverMessage())
}

func TestMoveListStartingWithBlack(t *testing.T) {
	t.Parallel()
	b := newBoard(t, WithFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"))

	play(t, b, "e7e5")
	list := b.MoveList()
	require.Len(t, list, 1)
	assert.Equal(t, "1... e5", list[0].String())
	play(t, b, "g1f3")
	assert.Equal(t, []MoveListEntry{
		{Number: 1, Black: "e5"},
		{Number: 2, White: "Nf3"},
	}, b.MoveList())
}

func TestHistory(t *testing.T) {
	t.Parallel()
	b := newBoard(t)

	play(t, b, "e2e4", "e7e5")
	history := b.History()
	require.Len(t, history, 3)
	assert.Nil(t, history[0].LastMove)
	assert.Equal(t, Cell{Side: SideWhite, Piece: PiecePawn}, history[0].View.At(position.E2))
	assert.Equal(t, "e4", history[1].LastMove.Notation)
	assert.Equal(t, "e5", history[2].LastMove.Notation)

	history[1].LastMove.Notation = "tampered"
	history[1].View[position.E4] = Cell{}
	again := b.History()
	assert.Equal(t, "e4", again[1].LastMove.Notation)
	assert.Equal(t, Cell{Side: SideWhite, Piece: PiecePawn}, again[1].View.At(position.E4))
}

func TestClone(t *testing.T) {
	t.Parallel()
	b := newBoard(t)
	play(t, b, "e2e4")

	c := b.Clone()
	play(t, c, "e7e5", "g1f3")

	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", b.FEN())
	assert.Len(t, b.History(), 2)
	assert.Len(t, b.MoveList(), 1)
	assert.Len(t, c.History(), 4)
	assert.False(t, b.At(position.G1).HasMoved())
	assert.True(t, c.At(position.F3).HasMoved())
}

func TestGameInvariants(t *testing.T) {
	t.Parallel()
	b := newBoard(t)

	// walk a deterministic game, always taking the n-th legal move
	for ply := 0; ply < 300 && !b.IsGameOver(); ply++ {
		lm := b.LegalMoves()
		origins := lm.Origins()
		require.NotEmpty(t, origins)
		from := origins[ply%len(origins)]
		to := lm[from][ply%len(lm[from])]

		mv := Move{From: from, To: to}
		if u := b.At(from); u.Piece == PiecePawn && to.Y() == u.Side.promotionRank() {
			mv.Promote = PieceQueen
		}
		mover := b.Turn()
		require.NoError(t, b.Apply(mv))

		v := b.View()
		assert.Equal(t, 1, v.Count(SideWhite, PieceKing))
		assert.Equal(t, 1, v.Count(SideBlack, PieceKing))
		assert.False(t, b.isInCheck(mover, false), "%s left its king in check with %s", mover, mv)
		assert.NotEqual(t, mover, b.Turn())
		for _, from := range b.LegalMoves().Origins() {
			u := b.At(from)
			require.NotNil(t, u)
			assert.Equal(t, b.Turn(), u.Side, "legal move origin %s belongs to %s", from, u.Side)
		}
	}
}
