// localmatch runs a headless self-play match: every snake on the board
// is driven by its own search, the board steps with real food spawning,
// and each turn is printed as an ASCII grid. Useful for eyeballing the
// engine's behavior without a game server.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/brensch/slitherbrain/internal/board"
	"github.com/brensch/slitherbrain/internal/game"
	"github.com/brensch/slitherbrain/internal/geo"
	"github.com/brensch/slitherbrain/internal/mcts"
	"github.com/brensch/slitherbrain/internal/render"
	"github.com/brensch/slitherbrain/internal/snake"
)

func main() {
	numSnakes := flag.Int("snakes", 2, "number of snakes")
	size := flag.Int("size", 11, "board width and height")
	maxTurns := flag.Int("turns", 200, "maximum turns before calling the match a draw")
	budget := flag.Duration("budget", 50*time.Millisecond, "search budget per snake per turn")
	seed := flag.Int64("seed", 1, "seed for food spawning and opponent sampling")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	b := startingBoard(*size, *numSnakes)

	fmt.Printf("turn 0\n%s\n", render.ASCII(&b))

	for turn := 1; turn <= *maxTurns && !b.IsTerminal(); turn++ {
		moves := make([]geo.Move, len(b.Snakes))
		for id := range b.Snakes {
			if b.Snakes[id].IsDead() {
				continue
			}
			moves[id] = decide(b, id, *budget, *seed+int64(turn))
		}

		b.Step(moves, false, rng)
		fmt.Printf("turn %d\n%s\n", turn, render.ASCII(&b))
	}

	if b.AliveCount() > 1 {
		fmt.Println("draw: turn limit reached")
		return
	}
	for id := range b.Snakes {
		if !b.Snakes[id].IsDead() {
			fmt.Printf("winner: %s\n", b.Snakes[id].ID)
			return
		}
	}
	fmt.Println("no survivors")
}

// decide runs a budget-bounded search for one snake on a clone of the
// board, falling back to the first legal move if the budget expired
// before any playout completed.
func decide(b board.Board, id int, budget time.Duration, seed int64) geo.Move {
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	snap := game.New(b.Clone(), id)
	root := mcts.Search(ctx, snap, mcts.Config{Seed: seed})
	if move, ok := mcts.BestMove(root); ok {
		return move
	}
	return snap.LegalMoves()[0]
}

// startingBoard places n snakes (at most four) one cell in from the
// board's corners and drops one food per snake near the middle.
func startingBoard(size, n int) board.Board {
	starts := []geo.Point{
		{X: 1, Y: 1},
		{X: size - 2, Y: size - 2},
		{X: 1, Y: size - 2},
		{X: size - 2, Y: 1},
	}
	if n > len(starts) {
		n = len(starts)
	}

	snakes := make([]snake.Snake, n)
	for i := 0; i < n; i++ {
		snakes[i] = snake.New(fmt.Sprintf("snake-%d", i), starts[i])
	}

	var food []geo.Point
	mid := size / 2
	for i := 0; i < n; i++ {
		food = append(food, geo.Point{X: mid + i - n/2, Y: mid})
	}

	return board.New(size, size, snakes, food)
}
