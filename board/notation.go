package board

import "github.com/daystram/arbiter/position"

// notation renders rec in algebraic notation. prev is the legal-move index the
// move was chosen from.
func (b *Board) notation(rec *MoveRecord, prev LegalMoves) string {
	var nt string
	if rec.Type.Has(MoveTypeCastling) {
		nt = "O-O-O"
		if rec.To.File() > rec.From.File() {
			nt = "O-O"
		}
	} else {
		nt = rec.Piece.SymbolAlgebra(SideWhite) // SideWhite because it returns capital symbols
		nt += b.disambiguation(rec, prev)
		if rec.Type.Has(MoveTypeCapture) {
			if rec.Piece == PiecePawn {
				nt += rec.From.X().NotationComponentX()
			}
			nt += "x"
		}
		nt += rec.To.Notation()
		if rec.Type.Has(MoveTypePromotion) {
			nt += "=" + rec.Promote.SymbolAlgebra(SideWhite)
		}
	}

	switch {
	case rec.Type.Has(MoveTypeCheckMate):
		nt += "#"
	case rec.Type.Has(MoveTypeCheck):
		nt += "+"
	}
	return nt
}

func (b *Board) disambiguation(rec *MoveRecord, prev LegalMoves) string {
	if rec.Piece == PiecePawn || rec.Piece == PieceKing {
		return ""
	}

	var rivals []position.Pos
	for _, from := range prev.Origins() {
		if from == rec.From || !prev.Has(from, rec.To) {
			continue
		}
		if u := b.cells[from]; u != nil && u.Side == rec.Side && u.Piece == rec.Piece {
			rivals = append(rivals, from)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, r := range rivals {
		sameFile = sameFile || r.File() == rec.From.File()
		sameRank = sameRank || r.Rank() == rec.From.Rank()
	}
	switch {
	case !sameFile:
		return rec.From.X().NotationComponentX()
	case !sameRank:
		return rec.From.Y().NotationComponentY()
	default:
		return rec.From.Notation()
	}
}
