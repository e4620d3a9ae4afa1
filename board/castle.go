package board

import "github.com/daystram/arbiter/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

var (
	maskCastleRights = [5]CastleRights{
		0,
		0b1000, // CastleDirectionWhiteOO
		0b0100, // CastleDirectionWhiteOOO
		0b0010, // CastleDirectionBlackOO
		0b0001, // CastleDirectionBlackOOO
	}
)

func castleDirection(s Side, kingside bool) CastleDirection {
	switch {
	case s == SideWhite && kingside:
		return CastleDirectionWhiteRight
	case s == SideWhite:
		return CastleDirectionWhiteLeft
	case s == SideBlack && kingside:
		return CastleDirectionBlackRight
	case s == SideBlack:
		return CastleDirectionBlackLeft
	default:
		return CastleDirectionUnknown
	}
}

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White O-O"
	case CastleDirectionWhiteLeft:
		return "White O-O-O"
	case CastleDirectionBlackRight:
		return "Black O-O"
	case CastleDirectionBlackLeft:
		return "Black O-O-O"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

// CastleRights is the castling availability as written in a FEN string.
type CastleRights uint8

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteLeft]|maskCastleRights[CastleDirectionWhiteRight]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackLeft]|maskCastleRights[CastleDirectionBlackRight]) != 0
}

// castleRights derives the rights from the live moved flags of kings and rooks.
func (b *Board) castleRights() CastleRights {
	var cr CastleRights
	for _, d := range []CastleDirection{
		CastleDirectionWhiteRight,
		CastleDirectionWhiteLeft,
		CastleDirectionBlackRight,
		CastleDirectionBlackLeft,
	} {
		cr.Set(d, b.castlePiecesUnmoved(d))
	}
	return cr
}

func (b *Board) castlePiecesUnmoved(d CastleDirection) bool {
	s := SideWhite
	if !d.IsWhite() {
		s = SideBlack
	}
	king := b.cells[posCastling[d][PieceKing][0]]
	if king == nil || king.Side != s || king.Piece != PieceKing || king.HasMoved() {
		return false
	}
	rook := b.cells[posCastling[d][PieceRook][0]]
	return rook != nil && rook.Side == s && rook.Piece == PieceRook && !rook.HasMoved()
}

// canCastle reports whether the king standing on from may castle towards the
// given side. Both squares the king lands on along the way must be safe.
func (b *Board) canCastle(king *Unit, from position.Pos, kingside bool) bool {
	d := castleDirection(king.Side, kingside)
	if d == CastleDirectionUnknown || from != posCastling[d][PieceKing][0] {
		return false
	}
	if b.check.InCheck || !b.castlePiecesUnmoved(d) {
		return false
	}
	for _, pos := range posCastlingEmpty[d] {
		if b.cells[pos] != nil {
			return false
		}
	}
	step := 1
	if !d.IsRight() {
		step = -1
	}
	first, _ := from.Offset(0, step)
	second, _ := from.Offset(0, 2*step)
	return b.isPositionSafeAfterMove(from, first) && b.isPositionSafeAfterMove(from, second)
}

// castleRookMove returns the rook's {from, to} for a king moving from -> to,
// or CastleDirectionUnknown when the move is not a castling move.
func castleRookMove(king *Unit, from, to position.Pos) (position.Pos, position.Pos, CastleDirection) {
	if king.Piece != PieceKing || position.Abs(to.File()-from.File()) != 2 || from.Rank() != to.Rank() {
		return 0, 0, CastleDirectionUnknown
	}
	d := castleDirection(king.Side, to.File() > from.File())
	return posCastling[d][PieceRook][0], posCastling[d][PieceRook][1], d
}
