package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/engine"
	"github.com/daystram/arbiter/render"
)

var errUsage = errors.New("usage")

// Interface drives a single game from line-based commands.
type Interface struct {
	in  io.Reader
	out io.Writer

	board     *board.Board
	session   uuid.UUID
	suggester engine.Suggester
	auto      board.Side
	color     bool

	base   zerolog.Logger
	logger zerolog.Logger
}

type Option func(*Interface)

func WithSuggester(s engine.Suggester) Option {
	return func(i *Interface) {
		i.suggester = s
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(i *Interface) {
		i.base = logger
	}
}

// WithColor makes "d" print the coloured board instead of the plain one.
func WithColor(color bool) Option {
	return func(i *Interface) {
		i.color = color
	}
}

// WithAuto lets the suggester play the given side.
func WithAuto(s board.Side) Option {
	return func(i *Interface) {
		i.auto = s
	}
}

func NewInterface(in io.Reader, out io.Writer, opts ...Option) *Interface {
	i := &Interface{
		in:   in,
		out:  out,
		base: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = i.base
	return i
}

// Run reads commands until "quit" or the end of input.
func (i *Interface) Run(ctx context.Context, fen string) error {
	if err := i.reset(fen); err != nil {
		return err
	}
	i.autoplay(ctx)

	scanner := bufio.NewScanner(i.in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" {
			return nil
		}
		if err := i.execute(ctx, args); err != nil {
			i.logger.Debug().Err(err).Str("command", args[0]).Msg("command failed")
			i.println("error:", err)
		}
	}
	return scanner.Err()
}

func (i *Interface) execute(ctx context.Context, args []string) error {
	switch args[0] {
	case "new":
		if err := i.reset(strings.Join(args[1:], " ")); err != nil {
			return err
		}
		i.autoplay(ctx)
		return nil
	case "fen":
		i.println(i.board.FEN())
	case "d":
		i.commandDraw()
	case "moves":
		i.commandMoves()
	case "list":
		i.commandList()
	case "status":
		i.commandStatus()
	case "history":
		return i.commandHistory(args[1:])
	case "move":
		if len(args) != 2 {
			return fmt.Errorf("%w: move <from><to>[promotion]", errUsage)
		}
		return i.commandMove(ctx, args[1])
	case "go":
		return i.commandGo(ctx)
	case "auto":
		return i.commandAuto(ctx, args[1:])
	case "svg":
		return i.commandSVG(args[1:])
	default:
		if _, err := board.ParseMove(args[0]); err == nil && len(args) == 1 {
			return i.commandMove(ctx, args[0])
		}
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func (i *Interface) reset(fen string) error {
	session := uuid.New()
	logger := i.base.With().Str("session", session.String()).Logger()
	opts := []board.BoardOption{board.WithLogger(logger)}
	if fen != "" {
		opts = append(opts, board.WithFEN(fen))
	}
	b, err := board.NewBoard(opts...)
	if err != nil {
		return err
	}
	i.board, i.session, i.logger = b, session, logger
	i.println("game", i.session.String())
	i.logger.Info().Str("fen", b.FEN()).Msg("new game")
	return nil
}

func (i *Interface) commandDraw() {
	if i.color {
		i.println(i.board.Draw())
		return
	}
	i.println(i.board.Dump())
}

func (i *Interface) commandMoves() {
	lm := i.board.LegalMoves()
	var mvs []string
	for _, from := range lm.Origins() {
		for _, to := range lm[from] {
			mvs = append(mvs, board.Move{From: from, To: to}.UCI())
		}
	}
	i.println(strings.Join(mvs, " "))
}

func (i *Interface) commandList() {
	for _, e := range i.board.MoveList() {
		i.println(e.String())
	}
}

func (i *Interface) commandStatus() {
	if i.board.IsGameOver() {
		i.println(i.board.GameOverMessage())
		return
	}
	status := i.board.Turn().String() + " to move"
	if i.board.CheckState().InCheck {
		status += ", in check"
	}
	i.println(status)
}

func (i *Interface) commandHistory(args []string) error {
	history := i.board.History()
	if len(args) != 1 {
		return fmt.Errorf("%w: history <ply 0..%d>", errUsage, len(history)-1)
	}
	ply, err := strconv.Atoi(args[0])
	if err != nil || ply < 0 || ply >= len(history) {
		return fmt.Errorf("%w: history <ply 0..%d>", errUsage, len(history)-1)
	}
	s := history[ply]
	if s.LastMove != nil {
		i.println(s.LastMove.Notation)
	}
	if i.color {
		i.println(s.View.Draw(s.Check))
	} else {
		i.println(s.View.Dump())
	}
	return nil
}

func (i *Interface) commandMove(ctx context.Context, arg string) error {
	mv, err := board.ParseMove(arg)
	if err != nil {
		return err
	}
	fen := i.board.FEN()
	if err := i.board.Apply(mv); err != nil {
		return err
	}
	if i.board.FEN() == fen {
		return fmt.Errorf("%w: no %s piece on %s", board.ErrIllegalMove, i.board.Turn(), mv.From)
	}
	i.reportMove()
	i.autoplay(ctx)
	return nil
}

func (i *Interface) commandGo(ctx context.Context) error {
	if i.suggester == nil {
		return fmt.Errorf("%w: no engine configured", engine.ErrEngineUnavailable)
	}
	if _, err := engine.Play(ctx, i.board, i.suggester); err != nil {
		return err
	}
	i.reportMove()
	return nil
}

func (i *Interface) commandAuto(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: auto <white|black|off>", errUsage)
	}
	switch args[0] {
	case "white":
		i.auto = board.SideWhite
	case "black":
		i.auto = board.SideBlack
	case "off":
		i.auto = board.SideUnknown
	default:
		return fmt.Errorf("%w: auto <white|black|off>", errUsage)
	}
	i.autoplay(ctx)
	return nil
}

func (i *Interface) commandSVG(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: svg <path>", errUsage)
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	history := i.board.History()
	if err := render.SVGSnapshot(f, history[len(history)-1], render.WithFlip(i.auto == board.SideWhite)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// autoplay lets the suggester move while it is the automated side's turn.
func (i *Interface) autoplay(ctx context.Context) {
	for i.suggester != nil && i.auto != board.SideUnknown && i.auto == i.board.Turn() && !i.board.IsGameOver() {
		if _, err := engine.Play(ctx, i.board, i.suggester); err != nil {
			i.logger.Warn().Err(err).Msg("engine move failed")
			i.println("error:", err)
			return
		}
		i.reportMove()
	}
}

func (i *Interface) reportMove() {
	last := i.board.LastMove()
	i.println(last.Side.String()+":", last.Notation)
	if i.board.IsGameOver() {
		i.println(i.board.GameOverMessage())
	}
}

func (i *Interface) println(a ...any) {
	fmt.Fprintln(i.out, a...)
}
