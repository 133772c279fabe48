// Package collision is the pure function from board state to a per-snake
// collision verdict. A step never fails for "a snake died": the
// Collision slice this package produces is the side-channel consumed by
// the matrix updater and the evaluator.
package collision

import (
	"github.com/brensch/slitherbrain/internal/geo"
	"github.com/brensch/slitherbrain/internal/snake"
)

// Kind tags which collision variant a Collision value holds.
type Kind int

const (
	None Kind = iota
	Wall
	SelfBody
	OtherBody
	HeadToHead
)

// Collision is a tagged record produced per snake per step. Only the
// fields relevant to Kind are meaningful; see the doc comment per Kind.
type Collision struct {
	Kind Kind

	// Wall, SelfBody: the dying snake.
	ID int

	// OtherBody: the victim whose head landed on another body, and the
	// killer whose body it landed on.
	VictimID int
	KillerID int

	// HeadToHead: the two snakes that collided head-on, and their lengths
	// at the moment of collision.
	SnakeA, SnakeB   int
	LengthA, LengthB int

	Loc geo.Point
}

// CausesDeath reports whether c kills the snake identified by selfID.
// Wall and SelfBody always kill their subject. OtherBody kills only the
// victim. HeadToHead kills the snake whose length is <= the opponent's.
func CausesDeath(c Collision, selfID int) bool {
	switch c.Kind {
	case Wall, SelfBody:
		return selfID == c.ID
	case OtherBody:
		return selfID == c.VictimID
	case HeadToHead:
		if selfID == c.SnakeA {
			return c.LengthA <= c.LengthB
		}
		if selfID == c.SnakeB {
			return c.LengthB <= c.LengthA
		}
		return false
	default:
		return false
	}
}

// Classify computes the collision vector for a board's alive snakes, after
// all heads have moved for the turn. snakes is indexed by stable snake id.
//
// Checks run in a fixed order per snake, short-circuiting on the first
// match: Wall, SelfBody, OtherBody, HeadToHead. None is emitted (as an
// absence, not a value) when nothing matches.
func Classify(snakes []snake.Snake, width, height int) []Collision {
	var out []Collision

	for i := range snakes {
		s := &snakes[i]
		if s.IsDead() {
			continue
		}

		if !geo.InBounds(s.Head, width, height) {
			out = append(out, Collision{Kind: Wall, ID: i, Loc: s.Head})
			continue
		}

		if bodyContains(s.BodyWithoutHead(), s.Head) {
			out = append(out, Collision{Kind: SelfBody, ID: i, Loc: s.Head})
			continue
		}

		if killer, ok := otherBodyHit(snakes, i, s.Head); ok {
			out = append(out, Collision{Kind: OtherBody, VictimID: i, KillerID: killer, Loc: s.Head})
			continue
		}

		if j, ok := headToHead(snakes, i, s.Head); ok {
			a, b := i, j
			out = append(out, Collision{
				Kind:    HeadToHead,
				SnakeA:  a,
				SnakeB:  b,
				LengthA: len(snakes[a].Body),
				LengthB: len(snakes[b].Body),
				Loc:     s.Head,
			})
		}
	}

	return out
}

func bodyContains(body []geo.Point, p geo.Point) bool {
	for _, b := range body {
		if b == p {
			return true
		}
	}
	return false
}

// otherBodyHit checks whether head lands on a non-head cell of any other
// alive snake. Returns the killer's id.
func otherBodyHit(snakes []snake.Snake, self int, head geo.Point) (int, bool) {
	for j := range snakes {
		if j == self || snakes[j].IsDead() {
			continue
		}
		if bodyContains(snakes[j].BodyWithoutHead(), head) {
			return j, true
		}
	}
	return 0, false
}

func headToHead(snakes []snake.Snake, self int, head geo.Point) (int, bool) {
	for j := range snakes {
		if j == self || snakes[j].IsDead() {
			continue
		}
		if snakes[j].Head == head {
			return j, true
		}
	}
	return 0, false
}
