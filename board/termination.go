package board

import (
	"strings"

	"github.com/daystram/arbiter/position"
)

// evaluateState checks the end-of-game conditions in order of precedence.
func (b *Board) evaluateState() State {
	switch {
	case b.isInsufficientMaterial():
		return StateInsufficientMaterial
	case len(b.legalMoves) == 0 && b.check.InCheck:
		return StateCheckmate
	case len(b.legalMoves) == 0:
		return StateStalemate
	case b.repetitionDraw:
		return StateThreefoldRepetition
	case b.halfMoveClock >= fiftyMoveLimit:
		return StateFiftyMoveViolated
	default:
		return StateRunning
	}
}

// isInsufficientMaterial covers K v K, K+minor v K, K+N+N v K, and any
// position where all remaining non-king pieces are bishops on one square colour.
func (b *Board) isInsufficientMaterial() bool {
	var material [SideBlack + 1][]position.Pos
	for pos, u := range b.cells {
		if u != nil && u.Piece != PieceKing {
			material[u.Side] = append(material[u.Side], position.Pos(pos))
		}
	}
	white, black := material[SideWhite], material[SideBlack]

	switch {
	case len(white) == 0 && len(black) == 0:
		return true
	case len(white)+len(black) == 1:
		return b.cells[append(white, black...)[0]].Piece.IsMinor()
	case len(white) == 0 && b.isKnightPair(black), len(black) == 0 && b.isKnightPair(white):
		return true
	}

	dark := 0
	all := append(white, black...)
	for _, pos := range all {
		if b.cells[pos].Piece != PieceBishop {
			return false
		}
		if pos.IsDark() {
			dark++
		}
	}
	return dark == 0 || dark == len(all)
}

func (b *Board) isKnightPair(squares []position.Pos) bool {
	return len(squares) == 2 &&
		b.cells[squares[0]].Piece == PieceKnight &&
		b.cells[squares[1]].Piece == PieceKnight
}

// repetitionKey keeps placement, side to move, castling rights and the en
// passant square.
func repetitionKey(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

func (b *Board) recordRepetition() {
	key := repetitionKey(b.fen)
	b.repetitions[key]++
	if b.repetitions[key] >= repetitionLimit {
		b.repetitionDraw = true
	}
}
