// Package eval scores a terminal or in-progress board from every alive
// snake's perspective, combining flood-fill territory control with
// health, length and collision-outcome shaping. Scalar folds a
// per-snake score vector down to one number for a given player, the
// value MCTS backpropagates.
package eval

import (
	"math"

	"github.com/brensch/slitherbrain/internal/board"
	"github.com/brensch/slitherbrain/internal/collision"
	"github.com/brensch/slitherbrain/internal/geo"
	"github.com/brensch/slitherbrain/internal/snake"
)

// Shaping weights: a death is worth -100, a self or wall collision
// -100, the killer in a body collision +10, its victim -100, the longer
// snake in a head-to-head +10, the shorter -100, and a tied head-to-head
// -100 for both.
const (
	deathPenalty         = -100.0
	wallOrSelfPenalty    = -100.0
	bodyCollisionWin     = 10.0
	bodyCollisionLoss    = -100.0
	headToHeadWin        = 10.0
	headToHeadLoss       = -100.0
	headToHeadTiePenalty = -100.0
)

// Evaluate scores every alive-or-just-died snake on b, indexed by snake
// id. Dead snakes (from a prior turn, not this one's collisions) score
// deathPenalty and nothing else.
func Evaluate(b *board.Board) []float64 {
	n := len(b.Snakes)
	scores := make([]float64, n)

	territory := floodFillTerritory(b)
	meanLength := meanAliveLength(b)

	for id := range b.Snakes {
		s := &b.Snakes[id]
		if s.IsDead() {
			scores[id] = deathPenalty
			continue
		}

		score := 0.0
		score += float64(territory[id])
		score += lengthBalance(float64(len(s.Body)), meanLength)
		score += healthComponent(s.Health)
		scores[id] += score
	}

	applyCollisionShaping(scores, b.LastCollisions)

	return scores
}

// Scalar folds a score vector to a single zero-sum-ish value for player:
// the player's own score minus half the sum of everyone else's, so
// hurting opponents matters but roughly half as much as helping itself.
func Scalar(scores []float64, player int) float64 {
	var others float64
	for i, s := range scores {
		if i != player {
			others += s
		}
	}
	return scores[player] - 0.5*others
}

// healthComponent is the snake's health offset from the halfway point:
// positive when well-fed, negative when a trip to food is overdue.
func healthComponent(health int) float64 {
	const half = snake.MaxHealth / 2
	return float64(health - half)
}

// lengthBalance penalizes deviating from the field's mean length, so a
// snake lagging behind the pack is pushed toward food even when its
// territory looks comfortable.
func lengthBalance(length, mean float64) float64 {
	return -math.Abs(length - mean)
}

func meanAliveLength(b *board.Board) float64 {
	var total float64
	var n int
	for i := range b.Snakes {
		if b.Snakes[i].IsDead() {
			continue
		}
		total += float64(len(b.Snakes[i].Body))
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// applyCollisionShaping folds the current turn's collision outcomes
// directly into the score vector, on top of the territory/health/length
// baseline, so a snake that just died a particularly embarrassing death
// (walking into a longer snake) scores worse than one that merely
// starved.
func applyCollisionShaping(scores []float64, collisions []collision.Collision) {
	for _, c := range collisions {
		switch c.Kind {
		case collision.Wall, collision.SelfBody:
			scores[c.ID] += wallOrSelfPenalty
		case collision.OtherBody:
			scores[c.VictimID] += bodyCollisionLoss
			scores[c.KillerID] += bodyCollisionWin
		case collision.HeadToHead:
			switch {
			case c.LengthA == c.LengthB:
				scores[c.SnakeA] += headToHeadTiePenalty
				scores[c.SnakeB] += headToHeadTiePenalty
			case c.LengthA > c.LengthB:
				scores[c.SnakeA] += headToHeadWin
				scores[c.SnakeB] += headToHeadLoss
			default:
				scores[c.SnakeB] += headToHeadWin
				scores[c.SnakeA] += headToHeadLoss
			}
		}
	}
}

// floodFillTerritory runs a multi-source breadth-first flood fill from
// every alive snake's head, one shared FIFO queue seeded in id order.
// Each pop claims its empty neighbours for the popping snake, so a cell
// equidistant from two heads goes to whichever wavefront the queue
// serves first. Each claimed cell is one point of territory.
func floodFillTerritory(b *board.Board) []int {
	width, height := b.Width, b.Height
	visited := make([]bool, width*height)
	idx := func(p geo.Point) int { return p.Y*width + p.X }

	type frontierEntry struct {
		p  geo.Point
		id int
	}
	var queue []frontierEntry

	for id := range b.Snakes {
		s := &b.Snakes[id]
		if s.IsDead() {
			continue
		}
		visited[idx(s.Head)] = true
		queue = append(queue, frontierEntry{p: s.Head, id: id})
	}

	counts := make([]int, len(b.Snakes))
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		for _, m := range geo.AllMoves {
			np := geo.Apply(f.p, m)
			if !geo.InBounds(np, width, height) {
				continue
			}
			i := idx(np)
			if visited[i] {
				continue
			}
			visited[i] = true
			if b.Matrix.Get(np) >= 0 {
				continue
			}
			counts[f.id]++
			queue = append(queue, frontierEntry{p: np, id: f.id})
		}
	}

	return counts
}
