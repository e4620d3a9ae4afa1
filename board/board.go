package board

import (
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"

	"github.com/daystram/arbiter/position"
)

// Board is a single game of chess. It owns the grid and every piece of game
// state derived from it; callers only change it through Apply.
type Board struct {
	cells [TotalCells]*Unit
	turn  Side

	legalMoves LegalMoves
	check      CheckState
	lastMove   *MoveRecord

	halfMoveClock uint64
	fullMoveClock uint64

	repetitions    map[string]int
	repetitionDraw bool

	moveList []MoveListEntry
	history  []Snapshot
	fen      string

	state  State
	logger zerolog.Logger
}

type boardConfig struct {
	fen    string
	logger zerolog.Logger
}

type BoardOption func(*boardConfig)

// WithFEN starts the game from the given position instead of the standard one.
func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

func WithLogger(logger zerolog.Logger) BoardOption {
	return func(cfg *boardConfig) {
		cfg.logger = logger
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen:    DefaultStartingPositionFEN,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	b := &Board{
		repetitions: make(map[string]int),
		logger:      cfg.logger,
	}
	if err := parseFEN(cfg.fen, b); err != nil {
		return nil, err
	}

	b.isInCheck(b.turn, true)
	b.legalMoves = b.findLegalMoves()
	b.fen = MarshalFEN(b)
	b.recordRepetition()
	b.history = append(b.history, b.snapshot())
	b.state = b.evaluateState()

	b.logger.Debug().Str("fen", b.fen).Stringer("state", b.state).Msg("board ready")
	return b, nil
}

func (b *Board) Turn() Side {
	return b.turn
}

// View returns a copy of the grid.
func (b *Board) View() View {
	var v View
	for pos, u := range b.cells {
		if u != nil {
			v[pos] = Cell{Side: u.Side, Piece: u.Piece}
		}
	}
	return v
}

// At returns the unit standing on pos, or nil. The unit must not be modified.
func (b *Board) At(pos position.Pos) *Unit {
	if !pos.Valid() {
		return nil
	}
	return b.cells[pos]
}

// LegalMoves returns a copy of the legal-move index for the side to move.
func (b *Board) LegalMoves() LegalMoves {
	return b.legalMoves.clone()
}

func (b *Board) CheckState() CheckState {
	return b.check
}

// LastMove returns the last applied move, or nil before the first move.
func (b *Board) LastMove() *MoveRecord {
	return b.lastMove.clone()
}

func (b *Board) MoveList() []MoveListEntry {
	return append([]MoveListEntry(nil), b.moveList...)
}

// History returns a snapshot per ply, starting with the initial position.
func (b *Board) History() []Snapshot {
	h := make([]Snapshot, len(b.history))
	for i, s := range b.history {
		h[i] = s.clone()
	}
	return h
}

func (b *Board) State() State {
	return b.state
}

func (b *Board) IsGameOver() bool {
	return !b.state.IsRunning()
}

// Winner returns the side that delivered checkmate, or SideUnknown.
func (b *Board) Winner() Side {
	if b.state != StateCheckmate {
		return SideUnknown
	}
	return b.turn.Opposite()
}

// GameOverMessage is empty while the game is running.
func (b *Board) GameOverMessage() string {
	return b.state.message(b.Winner())
}

func (b *Board) FEN() string {
	return b.fen
}

func (b *Board) HalfMoveClock() uint64 {
	return b.halfMoveClock
}

// FiftyMoveCounter counts full moves without a capture or a pawn move.
func (b *Board) FiftyMoveCounter() float64 {
	return float64(b.halfMoveClock) / 2
}

func (b *Board) FullMoveClock() uint64 {
	return b.fullMoveClock
}

// Clone returns an independent deep copy of the game.
func (b *Board) Clone() *Board {
	c := &Board{
		turn:           b.turn,
		legalMoves:     b.legalMoves.clone(),
		check:          b.check,
		lastMove:       b.lastMove.clone(),
		halfMoveClock:  b.halfMoveClock,
		fullMoveClock:  b.fullMoveClock,
		repetitions:    maps.Clone(b.repetitions),
		repetitionDraw: b.repetitionDraw,
		moveList:       append([]MoveListEntry(nil), b.moveList...),
		history:        append([]Snapshot(nil), b.history...),
		fen:            b.fen,
		state:          b.state,
		logger:         b.logger,
	}
	for pos, u := range b.cells {
		c.cells[pos] = u.clone()
	}
	return c
}

func (b *Board) Dump() string {
	return b.View().Dump()
}

func (b *Board) Draw() string {
	return b.View().Draw(b.check)
}

func IsSquareDark(pos position.Pos) bool {
	return pos.IsDark()
}
