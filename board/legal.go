package board

import (
	"sort"

	"github.com/daystram/arbiter/position"
)

// LegalMoves maps every movable square of the side to move to its legal
// destinations.
type LegalMoves map[position.Pos][]position.Pos

func (lm LegalMoves) Has(from, to position.Pos) bool {
	for _, dest := range lm[from] {
		if dest == to {
			return true
		}
	}
	return false
}

// Origins returns the movable squares in ascending order.
func (lm LegalMoves) Origins() []position.Pos {
	origins := make([]position.Pos, 0, len(lm))
	for from := range lm {
		origins = append(origins, from)
	}
	sort.Slice(origins, func(i, j int) bool { return origins[i] < origins[j] })
	return origins
}

// Count is the number of (from, to) pairs.
func (lm LegalMoves) Count() int {
	var n int
	for _, dests := range lm {
		n += len(dests)
	}
	return n
}

func (lm LegalMoves) clone() LegalMoves {
	c := make(LegalMoves, len(lm))
	for from, dests := range lm {
		c[from] = append([]position.Pos(nil), dests...)
	}
	return c
}

// findLegalMoves builds the index for the side to move. It expects the check
// state to be current.
func (b *Board) findLegalMoves() LegalMoves {
	lm := make(LegalMoves)
	for from := position.Pos(0); from < TotalCells; from++ {
		u := b.cells[from]
		if u == nil || u.Side != b.turn {
			continue
		}

		var dests []position.Pos
		for _, d := range u.Directions() {
			to, ok := from.Offset(d.Rank, d.File)
			for ok {
				target := b.cells[to]
				if target != nil && target.Side == u.Side {
					break
				}
				if u.Piece == PiecePawn && !b.isPawnStepAllowed(from, to, d) {
					break
				}
				if b.isPositionSafeAfterMove(from, to) {
					dests = append(dests, to)
				}
				if target != nil || !u.Piece.IsSliding() {
					break
				}
				to, ok = to.Offset(d.Rank, d.File)
			}
		}

		switch u.Piece {
		case PieceKing:
			for _, kingside := range []bool{true, false} {
				if b.canCastle(u, from, kingside) {
					dests = append(dests, posCastling[castleDirection(u.Side, kingside)][PieceKing][1])
				}
			}
		case PiecePawn:
			if to, ok := b.canCaptureEnPassant(u, from); ok {
				dests = append(dests, to)
			}
		}

		if len(dests) > 0 {
			lm[from] = dests
		}
	}
	return lm
}

// isPawnStepAllowed applies the pawn-specific rules on top of the plain
// direction walk: diagonals need an enemy, forward steps need empty squares.
func (b *Board) isPawnStepAllowed(from, to position.Pos, d Direction) bool {
	target := b.cells[to]
	switch {
	case d.File != 0:
		return target != nil && target.Side != b.cells[from].Side
	case position.Abs(d.Rank) == 2:
		mid, _ := from.Offset(d.Rank/2, 0)
		return target == nil && b.cells[mid] == nil
	default:
		return target == nil
	}
}

// isPositionSafeAfterMove reports whether moving the piece on from to to
// leaves its own king unattacked. The grid is restored before returning.
func (b *Board) isPositionSafeAfterMove(from, to position.Pos) bool {
	moving := b.cells[from]
	if moving == nil {
		return false
	}
	if target := b.cells[to]; target != nil && target.Side == moving.Side {
		return false
	}

	captured := b.cells[to]
	b.cells[from], b.cells[to] = nil, moving
	defer func() {
		b.cells[from], b.cells[to] = moving, captured
	}()
	return !b.isInCheck(moving.Side, false)
}

// canCaptureEnPassant returns the landing square of an en passant capture by
// the pawn on from, if the last move allows one and it is safe.
func (b *Board) canCaptureEnPassant(pawn *Unit, from position.Pos) (position.Pos, bool) {
	last := b.lastMove
	if pawn.Piece != PiecePawn || !last.isDoubleAdvance() || last.Side == pawn.Side {
		return position.Invalid, false
	}
	files, ranks := position.Distance(from, last.To)
	if ranks != 0 || files != 1 {
		return position.Invalid, false
	}
	passed := b.cells[last.To]
	if passed == nil || passed.Piece != PiecePawn || passed.Side == pawn.Side {
		return position.Invalid, false
	}
	to, ok := from.Offset(pawn.Side.forward(), last.To.File()-from.File())
	if !ok || b.cells[to] != nil {
		return position.Invalid, false
	}

	b.cells[last.To] = nil
	defer func() {
		b.cells[last.To] = passed
	}()
	return to, b.isPositionSafeAfterMove(from, to)
}
