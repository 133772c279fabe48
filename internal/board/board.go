// Package board owns the authoritative game state for one turn: the
// snakes, the food, the occupancy matrix, and the Step transition that
// advances all three atomically.
package board

import (
	"math/rand"

	"github.com/brensch/slitherbrain/internal/collision"
	"github.com/brensch/slitherbrain/internal/geo"
	"github.com/brensch/slitherbrain/internal/matrix"
	"github.com/brensch/slitherbrain/internal/snake"
)

// FoodSpawnChance is the per-turn probability of a bonus food spawning
// once the board already has FoodMinAmount food on it, outside of
// simulation mode.
const FoodSpawnChance = 0.15

// Board is one turn's worth of authoritative state. Snakes is indexed by
// stable snake id; a dead snake stays in the slice with IsDead() true so
// ids never shift.
type Board struct {
	Width, Height int
	Food          []geo.Point
	Snakes        []snake.Snake
	Matrix        matrix.Matrix

	// FoodMinAmount is the food count the board tries to maintain. It
	// defaults to len(Snakes)-1, matching standard Battlesnake rules.
	FoodMinAmount int

	// LastCollisions is the classification result of the most recent
	// Step, kept for the evaluator and for diagnostics. Nil before the
	// first Step.
	LastCollisions []collision.Collision
}

// New builds a board from starting snake heads and food, populating the
// matrix to match.
func New(width, height int, snakes []snake.Snake, food []geo.Point) Board {
	b := Board{
		Width:         width,
		Height:        height,
		Food:          append([]geo.Point(nil), food...),
		Snakes:        snakes,
		Matrix:        matrix.New(width, height),
		FoodMinAmount: len(snakes) - 1,
	}
	for id := range b.Snakes {
		for _, p := range b.Snakes[id].Body {
			b.Matrix.Mark(p, id)
		}
	}
	return b
}

// Clone returns a deep copy, safe to mutate independently of b. This is
// the allocation MCTS playouts pay per expansion.
func (b Board) Clone() Board {
	snakes := make([]snake.Snake, len(b.Snakes))
	for i, s := range b.Snakes {
		snakes[i] = s.Clone()
	}
	cells := make([]uint8, len(b.Matrix.Cells))
	copy(cells, b.Matrix.Cells)

	var lastCollisions []collision.Collision
	if b.LastCollisions != nil {
		lastCollisions = append([]collision.Collision(nil), b.LastCollisions...)
	}

	return Board{
		Width:          b.Width,
		Height:         b.Height,
		Food:           append([]geo.Point(nil), b.Food...),
		Snakes:         snakes,
		Matrix:         matrix.Matrix{Width: b.Matrix.Width, Height: b.Matrix.Height, Cells: cells},
		FoodMinAmount:  b.FoodMinAmount,
		LastCollisions: lastCollisions,
	}
}

// LegalMoves returns the moves out of a snake's head that don't walk
// straight into a wall or a body cell as the matrix currently stands.
// Another snake's head sharing the destination is not excluded here:
// that risk belongs to the evaluator and to Step's collision handling,
// not to legality.
func (b *Board) LegalMoves(id int) []geo.Move {
	s := &b.Snakes[id]
	var out []geo.Move
	for _, m := range geo.AllMoves {
		dest := geo.Apply(s.Head, m)
		if !geo.InBounds(dest, b.Width, b.Height) {
			continue
		}
		if b.Matrix.Get(dest) >= 0 {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Step advances the board by one turn given one move per alive snake,
// indexed by snake id. Dead snakes are ignored. The sequence is fixed:
//
//  1. move each alive snake's head (ApplyMove)
//  2. classify collisions against the post-move state
//  3. kill snakes collision.CausesDeath marks for death
//  4. feed snakes whose new head lands on food
//  5. starve snakes whose health has reached zero
//  6. update the matrix from displacements and deaths
//  7. spawn food, skipped entirely when isSimulation is true
//
// rng drives food spawning only; it may be nil when isSimulation is true.
func (b *Board) Step(moves []geo.Move, isSimulation bool, rng *rand.Rand) {
	displacements := make([]matrix.Displacement, 0, len(b.Snakes))

	for id := range b.Snakes {
		s := &b.Snakes[id]
		if s.IsDead() {
			continue
		}
		d := s.ApplyMove(moves[id])
		displacements = append(displacements, matrix.NewDisplacement(id, d.Tail, d.NewHead))
	}

	collisions := collision.Classify(b.Snakes, b.Width, b.Height)
	b.LastCollisions = collisions
	deaths := matrix.DeathSetFromCollisions(collisions, len(b.Snakes))

	for id := range b.Snakes {
		if deaths[id] && !b.Snakes[id].IsDead() {
			b.Matrix.RemoveSnake(b.Snakes[id].Body, id)
			b.Snakes[id].Kill()
		}
	}

	b.Food = b.feed(deaths)
	b.starve(deaths)

	b.Matrix.Update(displacements, deaths)

	if !isSimulation {
		b.spawnFood(rng)
	}
}

// feed resolves food pickup for every snake that survived collision
// resolution, returning the food list with eaten items removed.
func (b *Board) feed(deaths map[int]bool) []geo.Point {
	eaten := make(map[geo.Point]bool)

	for id := range b.Snakes {
		s := &b.Snakes[id]
		if s.IsDead() || deaths[id] {
			continue
		}
		for _, f := range b.Food {
			if f == s.Head {
				s.Feed()
				eaten[f] = true
				break
			}
		}
	}

	remaining := make([]geo.Point, 0, len(b.Food))
	for _, f := range b.Food {
		if !eaten[f] {
			remaining = append(remaining, f)
		}
	}
	return remaining
}

// starve kills any surviving snake whose health has run out, adding it
// to deaths so the matrix update never marks its final head cell.
func (b *Board) starve(deaths map[int]bool) {
	for id := range b.Snakes {
		s := &b.Snakes[id]
		if s.IsDead() || deaths[id] {
			continue
		}
		if s.Health <= 0 {
			b.Matrix.RemoveSnake(s.Body, id)
			s.Kill()
			deaths[id] = true
		}
	}
}

// spawnFood adds one food item at a uniformly random empty cell with
// probability FoodSpawnChance once the board already meets
// FoodMinAmount, and deterministically tops up to FoodMinAmount
// otherwise. Never called during simulation playouts.
func (b *Board) spawnFood(rng *rand.Rand) {
	if len(b.Food) < b.FoodMinAmount {
		for len(b.Food) < b.FoodMinAmount {
			p, ok := b.randomEmptyCell(rng)
			if !ok {
				return
			}
			b.Food = append(b.Food, p)
		}
		return
	}

	if rng.Float64() < FoodSpawnChance {
		if p, ok := b.randomEmptyCell(rng); ok {
			b.Food = append(b.Food, p)
		}
	}
}

func (b *Board) randomEmptyCell(rng *rand.Rand) (geo.Point, bool) {
	occupied := make(map[geo.Point]bool, len(b.Food))
	for _, f := range b.Food {
		occupied[f] = true
	}
	for id := range b.Snakes {
		for _, p := range b.Snakes[id].Body {
			occupied[p] = true
		}
	}

	var free []geo.Point
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := geo.Point{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return geo.Point{}, false
	}
	return free[rng.Intn(len(free))], true
}

// AliveCount returns how many snakes have not died.
func (b *Board) AliveCount() int {
	n := 0
	for i := range b.Snakes {
		if !b.Snakes[i].IsDead() {
			n++
		}
	}
	return n
}

// IsTerminal reports whether the board has reached a game-over state: at
// most one snake alive (zero in a no-survivors wipeout, one in a win).
func (b *Board) IsTerminal() bool {
	return b.AliveCount() <= 1
}

// Hash folds the matrix contents into a single deterministic value,
// suitable as a transposition-table key. Food and health are
// deliberately excluded: two states with identical occupancy but
// different food/health are treated as the same node, trading exactness
// for a much higher transposition hit rate.
func (b *Board) Hash() uint64 {
	var h uint64 = 1469598103934665603 // FNV-1a offset basis
	const prime = 1099511628211
	for _, c := range b.Matrix.Cells {
		h ^= uint64(c)
		h *= prime
	}
	return h
}
