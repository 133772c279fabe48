// Package snake implements per-agent state and the move/feed/kill
// transitions a single snake goes through during a turn.
package snake

import (
	"fmt"

	"github.com/brensch/slitherbrain/internal/geo"
)

// MaxHealth is the health a snake is born with and resets to on feeding.
const MaxHealth = 100

// StartLength is the body length a freshly spawned snake starts at.
const StartLength = 3

// Snake is a single agent: a head, a growing body, a health reserve, and a
// desired length that drives tail retention.
//
// Invariants while alive: Length >= 1, len(Body) <= Length, Head ==
// Body[len(Body)-1]. IsDead() is the canonical death marker: Body is
// cleared and Length set to 0 on death.
type Snake struct {
	ID     string
	Health int
	Body   []geo.Point // oldest (tail) first, newest (head) last
	Head   geo.Point
	Length int
}

// New creates a snake at the given head with the standard starting stats.
func New(id string, head geo.Point) Snake {
	return Snake{
		ID:     id,
		Health: MaxHealth,
		Body:   []geo.Point{head},
		Head:   head,
		Length: StartLength,
	}
}

// IsDead reports whether the snake has died. Length == 0 is the only
// canonical marker; callers must not infer death from health or body length
// alone.
func (s *Snake) IsDead() bool {
	return s.Length == 0
}

// Displacement is the tail cell vacated (if any) and the new head cell
// produced by a single ApplyMove, consumed by matrix.Update.
type Displacement struct {
	Tail    *geo.Point
	NewHead geo.Point
}

// ApplyMove advances the snake by one move: pops the tail iff the body was
// already at Length, pushes the new head, and costs one health point.
//
// Precondition: the snake is not dead. This is a programmer error, not a
// recoverable one.
func (s *Snake) ApplyMove(m geo.Move) Displacement {
	if s.IsDead() {
		panic(fmt.Sprintf("snake %s: ApplyMove called on a dead snake", s.ID))
	}

	var tail *geo.Point
	if len(s.Body) >= s.Length {
		t := s.Body[0]
		s.Body = s.Body[1:]
		tail = &t
	}

	s.Head = geo.Apply(s.Head, m)
	s.Body = append(s.Body, s.Head)

	s.Health--

	return Displacement{Tail: tail, NewHead: s.Head}
}

// Feed resets health to MaxHealth and grows the desired length by one.
// The body itself doesn't grow until the next ApplyMove: the tail is
// retained one extra step, matching the standard arcade-style growth
// delay.
func (s *Snake) Feed() {
	if s.IsDead() {
		panic(fmt.Sprintf("snake %s: Feed called on a dead snake", s.ID))
	}
	s.Health = MaxHealth
	s.Length++
}

// Kill clears the body and marks the snake dead. Not idempotent: callers
// must check IsDead first.
func (s *Snake) Kill() {
	s.Body = nil
	s.Length = 0
}

// BodyWithoutHead returns the body minus its last element. Only defined
// while alive.
func (s *Snake) BodyWithoutHead() []geo.Point {
	if s.IsDead() {
		panic(fmt.Sprintf("snake %s: BodyWithoutHead called on a dead snake", s.ID))
	}
	if len(s.Body) == 0 {
		return nil
	}
	return s.Body[:len(s.Body)-1]
}

// Clone returns a deep copy, independent of s.
func (s Snake) Clone() Snake {
	body := make([]geo.Point, len(s.Body))
	copy(body, s.Body)
	s.Body = body
	return s
}
