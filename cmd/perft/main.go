// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/herohde/chesspractice/pkg/board"
	"github.com/herohde/chesspractice/pkg/board/fen"
	"github.com/herohde/chesspractice/pkg/game"
	"github.com/herohde/chesspractice/pkg/movegen"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

var promotionKinds = []board.PieceKind{board.Queen, board.Rook, board.Bishop, board.Knight}

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	pos, err := fen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		state := game.NewGameState()
		e := game.NewExecutor(pos.Board.Clone(), state)
		loadPosition(e, pos)

		start := time.Now()
		nodes := perft(e, i, *divide && i == *depth)
		duration := time.Since(start)

		println(fmt.Sprintf("perft,%v,%v,%v,%v", *position, i, nodes, duration.Microseconds()))
	}
}

func loadPosition(e *game.Executor, pos fen.Position) {
	e.LoadPosition(pos.Board.Clone(), pos.Active, pos.Rights, pos.EnPassant, pos.Halfmove, pos.Fullmove)
}

// perft counts the leaf positions reachable from e's current position at the
// given depth, descending through every legal move and undoing each before
// trying the next. Promotions expand into all four promotion kinds.
func perft(e *game.Executor, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	moves, err := movegen.LegalMovesForColor(e.Board, e.State, e.State.ActiveColor())
	if err != nil {
		logw.Exitf(context.Background(), "Move generation failed: %v", err)
	}

	var nodes int64
	for from, dests := range moves {
		for _, to := range dests {
			isPromo, err := e.IsPromotionMove(from, to)
			if err != nil {
				logw.Exitf(context.Background(), "Promotion probe failed: %v", err)
			}

			promotions := []lang.Optional[board.PieceKind]{{}}
			if isPromo {
				promotions = nil
				for _, k := range promotionKinds {
					promotions = append(promotions, lang.Some(k))
				}
			}

			for _, promo := range promotions {
				m, err := e.Execute(from, to, promo)
				if err != nil {
					logw.Exitf(context.Background(), "Illegal move %v%v: %v", from, to, err)
				}

				count := perft(e, depth-1, false)
				if d {
					println(fmt.Sprintf("%v: %v", m, count))
				}
				nodes += count

				e.Undo()
			}
		}
	}
	return nodes
}
