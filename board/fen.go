package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daystram/arbiter/position"
)

// parseFEN loads fen into an empty board. Moved flags are not part of FEN, so
// they are derived from the placement and the castling field.
func parseFEN(fen string, b *Board) error {
	if b == nil {
		return fmt.Errorf("invalid board")
	}
	segments := strings.Fields(fen)
	if len(segments) != 6 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for y := position.Pos(0); y < Height; y++ {
		row := rows[Height-y-1]
		x := position.Pos(0)
		for _, cell := range row {
			if cell >= '0' && cell <= '9' {
				skip := position.Pos(cell - '0')
				if skip == 0 || x+skip > Width {
					return fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				x += skip
				continue
			}
			s, p := ParseSymbolFEN(cell)
			if p == PieceUnknown {
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			if x >= Width {
				return fmt.Errorf("%w: too many cells on rank %d", ErrInvalidFEN, y+1)
			}
			if p == PiecePawn && (y == position.Rank1 || y == position.Rank8) {
				return fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
			}
			b.cells[y*Width+x] = NewUnit(s, p)
			x++
		}
		if x != Width {
			return fmt.Errorf("%w: missing cells on rank %d", ErrInvalidFEN, y+1)
		}
	}
	for _, s := range []Side{SideWhite, SideBlack} {
		if n := b.View().Count(s, PieceKing); n != 1 {
			return fmt.Errorf("%w: %s has %d kings", ErrInvalidFEN, s, n)
		}
	}

	switch segments[1] {
	case "w":
		b.turn = SideWhite
	case "b":
		b.turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}
	if b.isInCheck(b.turn.Opposite(), false) {
		return fmt.Errorf("%w: %s king can be captured", ErrInvalidFEN, b.turn.Opposite())
	}

	var cr CastleRights
	if len(segments[2]) > 4 {
		return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
crLoop:
	for i, e := range segments[2] {
		switch e {
		case 'K':
			cr.Set(CastleDirectionWhiteRight, true)
		case 'k':
			cr.Set(CastleDirectionBlackRight, true)
		case 'Q':
			cr.Set(CastleDirectionWhiteLeft, true)
		case 'q':
			cr.Set(CastleDirectionBlackLeft, true)
		default:
			if i == 0 && e == '-' && len(segments[2]) == 1 {
				break crLoop
			}
			return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
	}
	b.deriveMovedFlags(cr)

	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		last, ok := b.reconstructDoubleAdvance(pos)
		if !ok {
			return fmt.Errorf("%w: invalid enpassant position %s", ErrInvalidFEN, pos)
		}
		b.lastMove = last
	}

	halfMoveClock, err := strconv.ParseUint(segments[4], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
	}
	b.halfMoveClock = halfMoveClock

	fullMoveClock, err := strconv.ParseUint(segments[5], 10, 64)
	if err != nil || fullMoveClock == 0 {
		return fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
	}
	b.fullMoveClock = fullMoveClock

	return nil
}

func (b *Board) deriveMovedFlags(cr CastleRights) {
	for pos, u := range b.cells {
		if u == nil {
			continue
		}
		p := position.Pos(pos)
		switch u.Piece {
		case PiecePawn:
			u.moved = p.Y() != u.Side.pawnRank()
		case PieceKing:
			u.moved = p != posCastling[castleDirection(u.Side, true)][PieceKing][0] || !cr.IsSideAllowed(u.Side)
		case PieceRook:
			u.moved = true
			for _, kingside := range []bool{true, false} {
				d := castleDirection(u.Side, kingside)
				if p == posCastling[d][PieceRook][0] && cr.IsAllowed(d) {
					u.moved = false
				}
			}
		}
	}
}

// reconstructDoubleAdvance rebuilds the last move from the en passant square.
func (b *Board) reconstructDoubleAdvance(ep position.Pos) (*MoveRecord, bool) {
	mover := b.turn.Opposite()
	if ep.Y() != mover.pawnRank()+position.Pos(mover.forward()) {
		return nil, false
	}
	from, _ := ep.Offset(-mover.forward(), 0)
	to, _ := ep.Offset(mover.forward(), 0)
	pawn := b.cells[to]
	if pawn == nil || pawn.Side != mover || pawn.Piece != PiecePawn || b.cells[from] != nil || b.cells[ep] != nil {
		return nil, false
	}
	return &MoveRecord{
		Move:  Move{From: from, To: to},
		Side:  mover,
		Piece: PiecePawn,
		Type:  MoveTypeBasicMove,
	}, true
}

func MarshalFEN(b *Board) string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		var skip int
		for x := position.Pos(0); x < Width; x++ {
			u := b.cells[y*Width+x]
			if u == nil {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = builder.WriteString(u.SymbolFEN())
		}
		if skip != 0 {
			_, _ = builder.WriteString(strconv.Itoa(skip))
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}

	_, _ = builder.WriteString(" " + b.turn.SymbolFEN() + " ")

	cr := b.castleRights()
	if cr == 0 {
		_, _ = builder.WriteRune('-')
	} else {
		if cr.IsAllowed(CastleDirectionWhiteRight) {
			_, _ = builder.WriteRune('K')
		}
		if cr.IsAllowed(CastleDirectionWhiteLeft) {
			_, _ = builder.WriteRune('Q')
		}
		if cr.IsAllowed(CastleDirectionBlackRight) {
			_, _ = builder.WriteRune('k')
		}
		if cr.IsAllowed(CastleDirectionBlackLeft) {
			_, _ = builder.WriteRune('q')
		}
	}
	_, _ = builder.WriteRune(' ')

	if b.lastMove.isDoubleAdvance() {
		ep, _ := b.lastMove.From.Offset(b.lastMove.Side.forward(), 0)
		_, _ = builder.WriteString(ep.Notation())
	} else {
		_, _ = builder.WriteRune('-')
	}

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", b.halfMoveClock, b.fullMoveClock))

	return builder.String()
}
