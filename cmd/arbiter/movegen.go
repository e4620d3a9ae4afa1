package main

import (
	"fmt"
	"strconv"

	"github.com/daystram/arbiter/bench"
	"github.com/daystram/arbiter/board"
)

func movegen(fen string, draw bool) error {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return err
	}
	fmt.Println("to move:", b.Turn())
	if draw {
		fmt.Println(b.Draw())
	} else {
		fmt.Println(b.Dump())
	}
	fmt.Println(b.State())
	dumpMoves(b)
	return nil
}

func dumpMoves(b *board.Board) {
	mvs := bench.Moves(b)
	for i, mv := range mvs {
		bb := b.Clone()
		if err := bb.Apply(mv); err != nil {
			fmt.Printf("option %*d: [%s] %v\n", len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), err)
			continue
		}
		last := bb.LastMove()
		fmt.Printf("option %*d: [%s] [%s] %s %s (%s) => %s\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), last.Notation, last.Side, last.Piece, last.Type, bb.FEN())
	}
}
