// Package game wraps a board.Board with the notion of "whose turn it is
// to be expanded" that the search tree needs, and knows how to advance a
// snapshot by one ply: the current player's move is supplied by the
// caller, every other alive snake's move is sampled uniformly at random.
package game

import (
	"math/rand"

	"github.com/brensch/slitherbrain/internal/board"
	"github.com/brensch/slitherbrain/internal/geo"
)

// Snapshot is one node's worth of search state: a board plus which
// snake id the next MakeMove call will decide for.
type Snapshot struct {
	Board         board.Board
	CurrentPlayer int
}

// New wraps a board as the root snapshot for a given player's search.
func New(b board.Board, currentPlayer int) Snapshot {
	return Snapshot{Board: b, CurrentPlayer: currentPlayer}
}

// LegalMoves returns the current player's legal moves. When no move is
// collision-free (or the player is already dead) a single doomed Up is
// returned instead of an empty set, so the search always has an edge to
// expand and the evaluator gets to attribute the death that follows.
func (s *Snapshot) LegalMoves() []geo.Move {
	if s.Board.Snakes[s.CurrentPlayer].IsDead() {
		return []geo.Move{geo.Up}
	}
	moves := s.Board.LegalMoves(s.CurrentPlayer)
	if len(moves) == 0 {
		return []geo.Move{geo.Up}
	}
	return moves
}

// MakeMove advances the snapshot by one full turn: the current player
// takes m, every other alive snake takes a uniformly random legal move
// (falling back to Up when none is collision-free), and CurrentPlayer
// stays fixed since a Snapshot always searches on behalf of the same
// player.
//
// The receiver is left untouched; MakeMove operates on and returns a
// clone, which is the allocation a tree expansion pays per node.
func (s Snapshot) MakeMove(m geo.Move, rng *rand.Rand) Snapshot {
	next := s
	next.Board = s.Board.Clone()

	moves := make([]geo.Move, len(next.Board.Snakes))
	for id := range next.Board.Snakes {
		if next.Board.Snakes[id].IsDead() {
			continue
		}
		if id == s.CurrentPlayer {
			moves[id] = m
			continue
		}
		moves[id] = sampleMove(&next.Board, id, rng)
	}

	next.Board.Step(moves, true, rng)
	return next
}

// sampleMove picks uniformly from a snake's legal moves, falling back
// to Up when every direction is lethal rather than refusing to move.
func sampleMove(b *board.Board, id int, rng *rand.Rand) geo.Move {
	moves := b.LegalMoves(id)
	if len(moves) == 0 {
		return geo.Up
	}
	return moves[rng.Intn(len(moves))]
}

// IsTerminal reports whether the snapshot's board has no further moves
// worth searching.
func (s *Snapshot) IsTerminal() bool {
	return s.Board.IsTerminal()
}

// Hash identifies the board position for transposition lookups. Two
// snapshots with the same board but different CurrentPlayer hash
// differently, since they represent different points in the search
// tree even though Board.Hash is player-agnostic.
func (s *Snapshot) Hash() uint64 {
	h := s.Board.Hash()
	return h*1099511628211 ^ uint64(s.CurrentPlayer+1)
}
