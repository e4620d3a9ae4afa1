package bench

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/arbiter/board"
)

var ErrInvalidDepth = errors.New("invalid perft depth")

// Counts tallies the moves found at the deepest ply of a perft run.
type Counts struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	Checkmates uint64
}

func (c *Counts) add(o Counts) {
	c.Nodes += o.Nodes
	c.Captures += o.Captures
	c.EnPassants += o.EnPassants
	c.Castles += o.Castles
	c.Promotions += o.Promotions
	c.Checks += o.Checks
	c.Checkmates += o.Checkmates
}

func (c *Counts) tally(rec *board.MoveRecord) {
	c.Nodes++
	if rec.Type.Has(board.MoveTypeCapture) {
		c.Captures++
	}
	if rec.IsEnPassant {
		c.EnPassants++
	}
	if rec.Type.Has(board.MoveTypeCastling) {
		c.Castles++
	}
	if rec.Type.Has(board.MoveTypePromotion) {
		c.Promotions++
	}
	if rec.Type.Has(board.MoveTypeCheck) || rec.Type.Has(board.MoveTypeCheckMate) {
		c.Checks++
	}
	if rec.Type.Has(board.MoveTypeCheckMate) {
		c.Checkmates++
	}
}

// Moves expands the legal-move index of b into move requests, one per
// promotion piece where a pawn reaches its last rank.
func Moves(b *board.Board) []board.Move {
	var mvs []board.Move
	lm := b.LegalMoves()
	for _, from := range lm.Origins() {
		u := b.At(from)
		for _, to := range lm[from] {
			if u.Piece == board.PiecePawn && (to.Rank() == 0 || to.Rank() == int(board.Height)-1) {
				for _, p := range board.PawnPromoteCandidates {
					mvs = append(mvs, board.Move{From: from, To: to, Promote: p})
				}
				continue
			}
			mvs = append(mvs, board.Move{From: from, To: to})
		}
	}
	return mvs
}

// Count walks the game tree of b to the given depth. Positions where the game
// is already over are not expanded further.
func Count(b *board.Board, depth int) Counts {
	var c Counts
	if depth <= 0 {
		c.Nodes = 1
		return c
	}
	for _, mv := range Moves(b) {
		c.add(countMove(b, mv, depth))
	}
	return c
}

// CountParallel is Count with one goroutine per root move.
func CountParallel(b *board.Board, depth int) Counts {
	if depth <= 0 {
		return Count(b, depth)
	}
	var (
		c  Counts
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, mv := range Moves(b) {
		mv := mv
		wg.Add(1)
		go func() {
			defer wg.Done()
			child := countMove(b, mv, depth)
			mu.Lock()
			c.add(child)
			mu.Unlock()
		}()
	}
	wg.Wait()
	return c
}

// Divide returns the node count below each root move, keyed by UCI string.
func Divide(b *board.Board, depth int) map[string]uint64 {
	div := make(map[string]uint64)
	if depth <= 0 {
		return div
	}
	for _, mv := range Moves(b) {
		div[mv.UCI()] = countMove(b, mv, depth).Nodes
	}
	return div
}

func countMove(b *board.Board, mv board.Move, depth int) Counts {
	var c Counts
	bb := b.Clone()
	if err := bb.Apply(mv); err != nil {
		return c
	}
	if depth <= 1 {
		c.tally(bb.LastMove())
		return c
	}
	if bb.IsGameOver() {
		return c
	}
	return Count(bb, depth-1)
}

// Perft runs a node count from fen and streams the report to out.
func Perft(depth int, fen string, parallel, verbose bool, out chan string) error {
	if depth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	b, err := board.NewBoard(
		board.WithFEN(fen),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	var c Counts
	switch {
	case depth == 0:
		c = Count(b, 0)
	case verbose:
		for _, mv := range Moves(b) {
			child := countMove(b, mv, depth)
			out <- fmt.Sprintf("%s: %d", mv.UCI(), child.Nodes)
			c.add(child)
		}
	case parallel:
		c = CountParallel(b, depth)
	default:
		c = Count(b, depth)
	}
	elapsed := time.Since(start)

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d mate=%d (%.3fs elapsed)",
			depth, c.Nodes, int(float64(c.Nodes)/(elapsed.Seconds()+1e-9)),
			c.Captures, c.EnPassants, c.Castles, c.Promotions, c.Checks, c.Checkmates, elapsed.Seconds())

	return nil
}
