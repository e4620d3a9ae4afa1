package board

import (
	"fmt"

	"github.com/daystram/arbiter/position"
)

// Apply plays mv for the side to move. Out-of-range squares and origins that
// do not hold a piece of the side to move are ignored. Every error is returned
// before the board is touched.
func (b *Board) Apply(mv Move) error {
	if b.IsGameOver() {
		return fmt.Errorf("%w: %s", ErrGameOver, b.GameOverMessage())
	}
	if !mv.From.Valid() || !mv.To.Valid() {
		return nil
	}
	u := b.cells[mv.From]
	if u == nil || u.Side != b.turn {
		return nil
	}
	if !b.legalMoves.Has(mv.From, mv.To) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, mv)
	}
	promoting := u.Piece == PiecePawn && mv.To.Y() == u.Side.promotionRank()
	if promoting != (mv.Promote != PieceUnknown) || (promoting && !mv.Promote.IsPromoteCandidate()) {
		return fmt.Errorf("%w: %s", ErrInvalidPromotion, mv)
	}

	prevMoves := b.legalMoves
	rec := &MoveRecord{Move: mv, Side: u.Side, Piece: u.Piece}
	u.MarkMoved()

	captured := b.cells[mv.To]
	if rookFrom, rookTo, d := castleRookMove(u, mv.From, mv.To); d != CastleDirectionUnknown {
		rook := b.cells[rookFrom]
		rook.MarkMoved()
		b.cells[rookFrom], b.cells[rookTo] = nil, rook
		rec.Type |= MoveTypeCastling
		b.logger.Debug().Stringer("castle", d).Msg("castling")
	}
	if u.Piece == PiecePawn && captured == nil && mv.From.File() != mv.To.File() {
		passed := position.New(mv.From.Rank(), mv.To.File())
		captured = b.cells[passed]
		b.cells[passed] = nil
		rec.IsEnPassant = true
	}
	if captured != nil {
		rec.Type |= MoveTypeCapture
	}

	placed := u
	if promoting {
		placed = NewUnit(u.Side, mv.Promote)
		placed.MarkMoved()
		rec.Type |= MoveTypePromotion
	}
	b.cells[mv.From], b.cells[mv.To] = nil, placed

	if u.Piece == PiecePawn || captured != nil {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}

	b.lastMove = rec
	b.turn = b.turn.Opposite()
	b.isInCheck(b.turn, true)
	b.legalMoves = b.findLegalMoves()

	switch {
	case b.check.InCheck && len(b.legalMoves) == 0:
		rec.Type |= MoveTypeCheckMate
	case b.check.InCheck:
		rec.Type |= MoveTypeCheck
	case rec.Type == 0:
		rec.Type = MoveTypeBasicMove
	}

	rec.Notation = b.notation(rec, prevMoves)
	b.appendMoveList(rec.Side, rec.Notation)
	b.history = append(b.history, b.snapshot())
	if rec.Side == SideBlack {
		b.fullMoveClock++
	}
	b.fen = MarshalFEN(b)
	b.recordRepetition()
	b.state = b.evaluateState()

	b.logger.Debug().
		Str("move", mv.UCI()).
		Str("notation", rec.Notation).
		Str("fen", b.fen).
		Msg("move applied")
	if b.IsGameOver() {
		b.logger.Info().
			Stringer("state", b.state).
			Str("result", b.GameOverMessage()).
			Msg("game over")
	}
	return nil
}
