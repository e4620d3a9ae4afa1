package board

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/arbiter/position"
)

// Cell is the read-only content of a square.
type Cell struct {
	Side  Side
	Piece Piece
}

func (c Cell) IsEmpty() bool {
	return c.Piece == PieceUnknown
}

func (c Cell) SymbolFEN() string {
	return c.Piece.SymbolFEN(c.Side)
}

// View is a value copy of the grid, indexed by position.Pos.
type View [TotalCells]Cell

func (v View) At(p position.Pos) Cell {
	if !p.Valid() {
		return Cell{}
	}
	return v[p]
}

// Count returns the number of pieces of the given side and kind.
func (v View) Count(s Side, p Piece) int {
	var n int
	for _, c := range v {
		if c.Side == s && c.Piece == p {
			n++
		}
	}
	return n
}

func (v View) Dump() string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < Width; x++ {
			sym := v[y*Width+x].SymbolFEN()
			if sym == "" {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}

var (
	colorLight   = color.New(color.FgBlack, color.BgHiWhite)
	colorDark    = color.New(color.FgBlack, color.BgGreen)
	colorChecked = color.New(color.FgBlack, color.BgRed)
	colorLabel   = color.New(color.Bold)
)

// Draw renders the view with coloured squares, marking the checked king.
func (v View) Draw(check CheckState) string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < Width; x++ {
			pos := y*Width + x
			c := v[pos]
			sym := c.Piece.SymbolUnicode(c.Side, false)
			if c.IsEmpty() {
				sym = " "
			}
			paint := colorLight
			switch {
			case check.InCheck && check.King == pos:
				paint = colorChecked
			case pos.IsDark():
				paint = colorDark
			}
			_, _ = builder.WriteString(paint.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(colorLabel.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}

// Snapshot is an independent copy of the game after a ply.
type Snapshot struct {
	View     View
	Check    CheckState
	LastMove *MoveRecord
}

func (s Snapshot) clone() Snapshot {
	s.LastMove = s.LastMove.clone()
	return s
}

// MoveListEntry holds the notation of one full move. White is empty when the
// game started with Black to move.
type MoveListEntry struct {
	Number uint64
	White  string
	Black  string
}

func (e MoveListEntry) String() string {
	switch {
	case e.White == "":
		return fmt.Sprintf("%d... %s", e.Number, e.Black)
	case e.Black == "":
		return fmt.Sprintf("%d. %s", e.Number, e.White)
	default:
		return fmt.Sprintf("%d. %s %s", e.Number, e.White, e.Black)
	}
}

func (b *Board) snapshot() Snapshot {
	return Snapshot{
		View:     b.View(),
		Check:    b.check,
		LastMove: b.lastMove.clone(),
	}
}

func (b *Board) appendMoveList(s Side, notation string) {
	if s == SideWhite || len(b.moveList) == 0 || b.moveList[len(b.moveList)-1].Black != "" {
		b.moveList = append(b.moveList, MoveListEntry{Number: b.fullMoveClock})
	}
	entry := &b.moveList[len(b.moveList)-1]
	if s == SideWhite {
		entry.White = notation
	} else {
		entry.Black = notation
	}
}
