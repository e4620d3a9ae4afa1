package board

// Direction is a displacement in rank and file units.
type Direction struct {
	Rank, File int
}

var (
	directionsDiagonal = []Direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	directionsLateral  = []Direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	directionsAll      = append(append([]Direction{}, directionsLateral...), directionsDiagonal...)
	directionsKnight   = []Direction{{1, 2}, {1, -2}, {-1, 2}, {-1, -2}, {2, 1}, {2, -1}, {-2, 1}, {-2, -1}}

	directionsPawn = map[Side][2][]Direction{
		// index 0 before the pawn has moved, 1 after
		SideWhite: {
			{{1, 0}, {2, 0}, {1, 1}, {1, -1}},
			{{1, 0}, {1, 1}, {1, -1}},
		},
		SideBlack: {
			{{-1, 0}, {-2, 0}, {-1, 1}, {-1, -1}},
			{{-1, 0}, {-1, 1}, {-1, -1}},
		},
	}
)

// Directions returns the base movement directions of a piece. Sliding pieces
// apply them repeatedly, the others once. The slice must not be modified.
func Directions(s Side, p Piece, moved bool) []Direction {
	switch p {
	case PiecePawn:
		if moved {
			return directionsPawn[s][1]
		}
		return directionsPawn[s][0]
	case PieceKnight:
		return directionsKnight
	case PieceBishop:
		return directionsDiagonal
	case PieceRook:
		return directionsLateral
	case PieceQueen, PieceKing:
		return directionsAll
	default:
		return nil
	}
}

// Unit is a piece standing on the board.
type Unit struct {
	Side  Side
	Piece Piece

	// moved is one-way; it is only meaningful for pawns, kings and rooks.
	moved bool
}

func NewUnit(s Side, p Piece) *Unit {
	return &Unit{Side: s, Piece: p}
}

func (u *Unit) HasMoved() bool {
	return u.moved
}

// MarkMoved sets the moved flag. A pawn loses its double advance for good.
func (u *Unit) MarkMoved() {
	u.moved = true
}

func (u *Unit) Directions() []Direction {
	return Directions(u.Side, u.Piece, u.moved)
}

func (u *Unit) SymbolFEN() string {
	return u.Piece.SymbolFEN(u.Side)
}

func (u *Unit) clone() *Unit {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
