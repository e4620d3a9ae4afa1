package board

import (
	"fmt"
	"strings"

	"github.com/daystram/arbiter/position"
)

// Move is a request to move the piece on From to To. Promote is
// PieceUnknown unless a pawn reaches its last rank.
type Move struct {
	From, To position.Pos
	Promote  Piece
}

// ParseMove parses coordinate notation such as "e2e4" or "e7e8q".
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	mv := Move{From: from, To: to}
	if len(s) == 5 {
		_, p := ParseSymbolFEN(rune(s[4]))
		if !p.IsPromoteCandidate() {
			return Move{}, fmt.Errorf("%w: %q: bad promotion piece", ErrInvalidMove, s)
		}
		mv.Promote = p
	}
	return mv, nil
}

func (m Move) String() string {
	return m.UCI()
}

func (m Move) UCI() string {
	return m.From.Notation() + m.To.Notation() + m.Promote.SymbolAlgebra(SideBlack)
}

// MoveType is the tag set of an applied move.
type MoveType uint8

const (
	MoveTypeCapture MoveType = 1 << iota
	MoveTypePromotion
	MoveTypeCastling
	MoveTypeCheck
	MoveTypeCheckMate
	MoveTypeBasicMove
)

func (t MoveType) Has(o MoveType) bool {
	return t&o != 0
}

func (t MoveType) String() string {
	var tags []string
	for _, e := range []struct {
		t    MoveType
		name string
	}{
		{MoveTypeCapture, "capture"},
		{MoveTypePromotion, "promotion"},
		{MoveTypeCastling, "castling"},
		{MoveTypeCheck, "check"},
		{MoveTypeCheckMate, "checkmate"},
		{MoveTypeBasicMove, "basic"},
	} {
		if t.Has(e.t) {
			tags = append(tags, e.name)
		}
	}
	return strings.Join(tags, "|")
}

// MoveRecord describes the last applied move.
type MoveRecord struct {
	Move

	Side        Side
	Piece       Piece
	Type        MoveType
	IsEnPassant bool
	Notation    string
}

// isDoubleAdvance reports whether the record is a pawn advancing two ranks.
func (r *MoveRecord) isDoubleAdvance() bool {
	if r == nil || r.Piece != PiecePawn {
		return false
	}
	_, ranks := position.Distance(r.From, r.To)
	return ranks == 2
}

func (r *MoveRecord) clone() *MoveRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
