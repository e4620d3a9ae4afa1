package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/engine"
)

// selfplay lets the suggester play both sides and reports timings.
func selfplay(ctx context.Context, logger zerolog.Logger, s engine.Suggester, fen string, games, maxPlies int, draw bool) error {
	var timesSuggest, timesApply []time.Duration
	results := make(map[string]int)

	for game := 1; game <= games; game++ {
		b, err := board.NewBoard(board.WithFEN(fen), board.WithLogger(logger))
		if err != nil {
			return err
		}
		for ply := 0; ply < maxPlies && !b.IsGameOver(); ply++ {
			if err := ctx.Err(); err != nil {
				return err
			}

			t1 := time.Now()
			mv, err := s.Suggest(ctx, b.FEN())
			timesSuggest = append(timesSuggest, time.Since(t1))
			if err != nil {
				return fmt.Errorf("game %d ply %d: %w", game, ply, err)
			}

			t1 = time.Now()
			err = b.Apply(mv)
			timesApply = append(timesApply, time.Since(t1))
			if err != nil {
				return fmt.Errorf("game %d ply %d: %w", game, ply, err)
			}

			if draw {
				fmt.Printf("\n===== [#%d] %s: %s\n", b.FullMoveClock(), b.LastMove().Side, b.LastMove().Notation)
				fmt.Println(b.Draw())
				fmt.Println(b.FEN())
			}
		}

		result := b.GameOverMessage()
		if result == "" {
			result = "Unfinished after " + strconv.Itoa(maxPlies) + " plies"
		}
		results[result]++
		logger.Info().Int("game", game).Str("result", result).Msg("game finished")
		for _, e := range b.MoveList() {
			fmt.Println(e)
		}
		fmt.Println(result)
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Println()
	for result, n := range results {
		fmt.Printf("%s: %d\n", result, n)
	}
	fmt.Println("suggest:", avg(timesSuggest))
	fmt.Println("apply:", avg(timesApply))
	return nil
}
