// MaxN is a fixed-depth search: the root player's legal moves are each
// tried once and the resulting line is played out for a fixed number of
// turns rather than building a visit-count tree. Only the root player's
// choice is maximized; every other move, at the root and below it, is a
// uniformly random legal move. Useful as a fast cross-check against the
// MCTS strategies on small boards; not the agent's default because it
// takes no context and runs to its depth regardless of any deadline.
package mcts

import (
	"math/rand"

	"github.com/brensch/slitherbrain/internal/board"
	"github.com/brensch/slitherbrain/internal/eval"
	"github.com/brensch/slitherbrain/internal/game"
	"github.com/brensch/slitherbrain/internal/geo"
)

// MaxNResult is one snake's chosen move and the score vector that move
// is expected to lead to.
type MaxNResult struct {
	Move   geo.Move
	Scores []float64
}

// MaxNSearch tries every legal move for player at the root, with the
// other alive snakes taking uniformly random legal moves, then plays
// depth-1 further turns of random legal moves for every snake and
// evaluates the board that results. It returns the root move whose line
// scored highest for player. Opponents' moves are sampled, not searched.
func MaxNSearch(snap game.Snapshot, player, depth int, rng *rand.Rand) MaxNResult {
	b := snap.Board
	moves := b.LegalMoves(player)
	if len(moves) == 0 {
		moves = []geo.Move{geo.Up}
	}

	best := MaxNResult{Move: moves[0]}
	bestSet := false

	for _, m := range moves {
		child := b.Clone()
		turn := make([]geo.Move, len(child.Snakes))
		turn[player] = m
		for id := range child.Snakes {
			if id == player || child.Snakes[id].IsDead() {
				continue
			}
			opts := child.LegalMoves(id)
			if len(opts) == 0 {
				turn[id] = geo.Up
				continue
			}
			turn[id] = opts[rng.Intn(len(opts))]
		}
		child.Step(turn, true, rng)

		scores := maxNRecurse(child, depth-1, rng)
		if !bestSet || scores[player] > best.Scores[player] {
			best = MaxNResult{Move: m, Scores: scores}
			bestSet = true
		}
	}

	return best
}

func maxNRecurse(b board.Board, depth int, rng *rand.Rand) []float64 {
	if depth <= 0 || b.IsTerminal() {
		return eval.Evaluate(&b)
	}

	turn := make([]geo.Move, len(b.Snakes))
	for id := range b.Snakes {
		if b.Snakes[id].IsDead() {
			continue
		}
		opts := b.LegalMoves(id)
		if len(opts) == 0 {
			turn[id] = geo.Up
			continue
		}
		turn[id] = opts[rng.Intn(len(opts))]
	}

	next := b.Clone()
	next.Step(turn, true, rng)
	return maxNRecurse(next, depth-1, rng)
}
