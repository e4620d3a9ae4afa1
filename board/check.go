package board

import "github.com/daystram/arbiter/position"

// isInCheck reports whether the king of side s is attacked. With commit set,
// the result is stored as the board's check state.
func (b *Board) isInCheck(s Side, commit bool) bool {
	king, attacked := b.findAttackedKing(s)
	if commit {
		b.check = CheckState{InCheck: attacked, King: king}
		if !attacked {
			b.check.King = position.Invalid
		}
	}
	return attacked
}

func (b *Board) findAttackedKing(s Side) (position.Pos, bool) {
	for from := position.Pos(0); from < TotalCells; from++ {
		u := b.cells[from]
		if u == nil || u.Side == s {
			continue
		}
		for _, d := range u.Directions() {
			// pawns never capture straight ahead
			if u.Piece == PiecePawn && d.File == 0 {
				continue
			}
			to, ok := from.Offset(d.Rank, d.File)
			for ok {
				target := b.cells[to]
				if target != nil && target.Side == s && target.Piece == PieceKing {
					return to, true
				}
				if target != nil || !u.Piece.IsSliding() {
					break
				}
				to, ok = to.Offset(d.Rank, d.File)
			}
		}
	}
	return position.Invalid, false
}
