package board

import "github.com/daystram/arbiter/position"

type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}

// SymbolFEN is the active colour field of a FEN string.
func (s Side) SymbolFEN() string {
	if s == SideBlack {
		return "b"
	}
	return "w"
}

// forward is the rank delta of a pawn advance.
func (s Side) forward() int {
	if s == SideBlack {
		return -1
	}
	return 1
}

func (s Side) homeRank() position.Pos {
	if s == SideBlack {
		return position.Rank8
	}
	return position.Rank1
}

func (s Side) pawnRank() position.Pos {
	if s == SideBlack {
		return position.Rank7
	}
	return position.Rank2
}

func (s Side) promotionRank() position.Pos {
	if s == SideBlack {
		return position.Rank1
	}
	return position.Rank8
}
