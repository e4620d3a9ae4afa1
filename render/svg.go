package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

const (
	DefaultSquareSize = 45

	colorLight     = "#f0d9b5"
	colorDark      = "#b58863"
	colorHighlight = "#cdd26a"
	colorCheck     = "#e05050"
	colorLabel     = "#333333"
)

type config struct {
	flip       bool
	squareSize int
	highlight  map[position.Pos]bool
	check      position.Pos
}

type Option func(*config)

// WithFlip draws the board from Black's side.
func WithFlip(flip bool) Option {
	return func(cfg *config) {
		cfg.flip = flip
	}
}

func WithSquareSize(size int) Option {
	return func(cfg *config) {
		if size > 0 {
			cfg.squareSize = size
		}
	}
}

// WithHighlight tints the given squares, typically the last move.
func WithHighlight(squares ...position.Pos) Option {
	return func(cfg *config) {
		for _, sq := range squares {
			if sq.Valid() {
				cfg.highlight[sq] = true
			}
		}
	}
}

// WithCheck marks the square of a king in check.
func WithCheck(check board.CheckState) Option {
	return func(cfg *config) {
		if check.InCheck {
			cfg.check = check.King
		}
	}
}

// SVG writes an 8x8 board with file and rank labels.
func SVG(w io.Writer, v board.View, opts ...Option) error {
	cfg := &config{
		squareSize: DefaultSquareSize,
		highlight:  make(map[position.Pos]bool),
		check:      position.Invalid,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ew := &errWriter{w: w}
	size := cfg.squareSize
	margin := size / 2
	canvas := svg.New(ew)
	canvas.Start(int(board.Width)*size+margin, int(board.Height)*size+margin)

	for rank := 0; rank < int(board.Height); rank++ {
		for file := 0; file < int(board.Width); file++ {
			pos := position.New(rank, file)
			col, row := file, int(board.Height)-1-rank
			if cfg.flip {
				col, row = int(board.Width)-1-file, rank
			}
			x, y := margin+col*size, row*size

			fill := colorLight
			switch {
			case pos == cfg.check:
				fill = colorCheck
			case cfg.highlight[pos]:
				fill = colorHighlight
			case board.IsSquareDark(pos):
				fill = colorDark
			}
			canvas.Rect(x, y, size, size, "fill:"+fill)

			if c := v.At(pos); !c.IsEmpty() {
				canvas.Text(x+size/2, y+size*4/5, c.Piece.SymbolUnicode(c.Side, false),
					fmt.Sprintf("text-anchor:middle;font-size:%dpx", size*4/5))
			}
		}
	}

	labelStyle := fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", size/3, colorLabel)
	for i := 0; i < int(board.Width); i++ {
		file, rank := i, int(board.Height)-1-i
		if cfg.flip {
			file, rank = int(board.Width)-1-i, i
		}
		canvas.Text(margin+i*size+size/2, int(board.Height)*size+margin*3/4,
			position.Pos(file).NotationComponentX(), labelStyle)
		canvas.Text(margin/2, i*size+size/2+size/8,
			position.Pos(rank).NotationComponentY(), labelStyle)
	}

	canvas.End()
	return ew.err
}

// errWriter keeps the first write error since svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// SVGSnapshot renders a history snapshot, highlighting its last move.
func SVGSnapshot(w io.Writer, s board.Snapshot, opts ...Option) error {
	base := []Option{WithCheck(s.Check)}
	if s.LastMove != nil {
		base = append(base, WithHighlight(s.LastMove.From, s.LastMove.To))
	}
	return SVG(w, s.View, append(base, opts...)...)
}
