package position

import (
	"errors"

	"golang.org/x/exp/constraints"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8

	// Invalid is returned for coordinates that fall outside the board.
	Invalid Pos = -1
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")
)

// Pos is a square index in little-endian rank-file order: a1=0, h1=7, a8=56.
type Pos int8

// New returns the square at the given rank and file, or Invalid if either
// component is outside [0,7].
func New(rank, file int) Pos {
	if rank < 0 || file < 0 || rank >= int(MaxComponentScalar) || file >= int(MaxComponentScalar) {
		return Invalid
	}
	return Pos(rank)*MaxComponentScalar + Pos(file)
}

func NewPosFromNotation(n string) (Pos, error) {
	x, y, err := notationToXY(n)
	if err != nil {
		return 0, err
	}
	return MaxComponentScalar*y + x, nil
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Valid() bool {
	return p >= 0 && p < MaxComponentScalar*MaxComponentScalar
}

func (p Pos) Notation() string {
	if !p.Valid() {
		return ""
	}
	return string(rune('a'+p.X())) + string(rune('1'+p.Y()))
}

// X is the file component.
func (p Pos) X() Pos {
	return p % MaxComponentScalar
}

// Y is the rank component.
func (p Pos) Y() Pos {
	return p / MaxComponentScalar
}

func (p Pos) Rank() int {
	return int(p.Y())
}

func (p Pos) File() int {
	return int(p.X())
}

// Offset steps dRank ranks and dFile files away from p. The second return
// value is false when the step leaves the board.
func (p Pos) Offset(dRank, dFile int) (Pos, bool) {
	if !p.Valid() {
		return Invalid, false
	}
	q := New(p.Rank()+dRank, p.File()+dFile)
	return q, q != Invalid
}

// IsDark reports whether the square is a dark square (a1 is dark).
func (p Pos) IsDark() bool {
	return (p.Rank()+p.File())%2 == 0
}

// Distance returns the file and rank distance between two squares.
func Distance(a, b Pos) (files, ranks int) {
	return Abs(a.File() - b.File()), Abs(a.Rank() - b.Rank())
}

func Abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func notationToXY(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	pX, err := notationToX(n[0])
	if err != nil {
		return 0, 0, err
	}
	pY, err := notationToY(n[1])
	if err != nil {
		return 0, 0, err
	}
	return pX, pY, nil
}

func notationToX(x byte) (Pos, error) {
	pX := Pos(x) - 'a'
	if pX < 0 || MaxComponentScalar <= pX {
		return 0, ErrInvalidNotation
	}
	return pX, nil
}

func notationToY(y byte) (Pos, error) {
	pY := Pos(y) - '0' - 1
	if pY < 0 || MaxComponentScalar <= pY {
		return 0, ErrInvalidNotation
	}
	return pY, nil
}

func (p Pos) NotationComponentX() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentY() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('0' + p + 1))
}
